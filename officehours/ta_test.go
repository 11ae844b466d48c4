// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/officehours/clock"
	"github.com/xmidt-org/officehours/clock/clocktest"
	"github.com/xmidt-org/officehours/semaphore"
	"github.com/xmidt-org/officehours/waitingroom"
	"go.uber.org/zap/zaptest"
)

const testPollInterval = 100 * time.Millisecond

type taFixture struct {
	clock    *clocktest.Mock
	recorder *recorder
	room     waitingroom.Interface
	arrivals semaphore.Interface
	ready    semaphore.Interface
	active   *ActiveCounter
	ta       *TA
}

func newTAFixture(t *testing.T, students, chairs int, extra ...Listener) *taFixture {
	f := &taFixture{
		clock:    new(clocktest.Mock),
		recorder: new(recorder),
		room:     waitingroom.New(chairs),
		arrivals: semaphore.New(max(chairs, 1)),
		ready:    semaphore.New(max(students, 1)),
		active:   NewActiveCounter(students),
	}

	f.ta = &TA{
		logger:       zaptest.NewLogger(t),
		clock:        f.clock,
		listener:     append(Listeners{f.recorder}, extra...),
		room:         f.room,
		arrivals:     f.arrivals,
		ready:        f.ready,
		active:       f.active,
		helpTime:     clock.Interval{},
		pollInterval: testPollInterval,
		random:       rand.New(rand.NewSource(1)),
	}

	return f
}

func testTAIdleClose(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = newTAFixture(t, 0, 1)
		timer  = clocktest.NewFiredTimer(time.Now())
	)

	f.clock.OnNewTimer(testPollInterval, timer).Once()

	assert.NoError(f.ta.Run(context.Background()))
	assert.Equal([]EventType{OfficeOpened, Polled, OfficeClosed}, f.recorder.Types())

	closed := f.recorder.OfType(OfficeClosed)[0]
	assert.NoError(closed.Err)
	assert.Zero(closed.Active)
	assert.Zero(closed.Occupancy)

	f.clock.AssertExpectations(t)
	timer.AssertExpectations(t)
}

func testTAWaitsForActiveStudents(t *testing.T) {
	var (
		assert = assert.New(t)
		f      *taFixture

		// the only student goes home after the first poll
		finishOnPoll = ListenerFunc(func(e Event) {
			if e.Type == Polled && e.Active > 0 {
				f.active.Finish()
			}
		})

		first  = clocktest.NewFiredTimer(time.Now())
		second = clocktest.NewFiredTimer(time.Now())
	)

	f = newTAFixture(t, 1, 1, finishOnPoll)
	f.clock.OnNewTimer(testPollInterval, first).Once()
	f.clock.OnNewTimer(testPollInterval, second).Once()

	assert.NoError(f.ta.Run(context.Background()))
	assert.Equal([]EventType{OfficeOpened, Polled, Polled, OfficeClosed}, f.recorder.Types())

	polls := f.recorder.OfType(Polled)
	assert.Equal(1, polls[0].Active)
	assert.Equal(0, polls[1].Active)

	f.clock.AssertExpectations(t)
}

func testTAServe(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		f       *taFixture

		finishOnSession = ListenerFunc(func(e Event) {
			if e.Type == SessionFinished {
				f.active.Finish()
			}
		})

		idle  = clocktest.NewIdleTimer()
		fired = clocktest.NewFiredTimer(time.Now())
	)

	f = newTAFixture(t, 1, 1, finishOnSession)
	require.True(f.room.TryReserve())
	require.NoError(f.arrivals.Raise())

	f.clock.OnNewTimer(testPollInterval, idle).Once()
	f.clock.OnNewTimer(testPollInterval, fired).Once()

	assert.NoError(f.ta.Run(context.Background()))
	assert.Equal(
		[]EventType{OfficeOpened, SessionStarted, SessionFinished, Polled, OfficeClosed},
		f.recorder.Types(),
	)

	started := f.recorder.OfType(SessionStarted)[0]
	finished := f.recorder.OfType(SessionFinished)[0]
	assert.NotEmpty(started.Session)
	assert.Equal(started.Session, finished.Session)
	assert.Zero(started.Occupancy)

	// exactly one student was called in
	assert.Equal(1, f.ready.Pending())
	assert.Zero(f.arrivals.Pending())
	assert.Zero(f.room.Occupancy())

	f.clock.AssertExpectations(t)
	idle.AssertExpectations(t)
}

func testTAClosedSignal(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = newTAFixture(t, 0, 2)
		timer  = clocktest.NewIdleTimer()
	)

	f.clock.OnNewTimer(testPollInterval, timer).Once()
	assert.NoError(f.arrivals.Close())

	assert.NoError(f.ta.Run(context.Background()))
	assert.Equal([]EventType{OfficeOpened, Polled, OfficeClosed}, f.recorder.Types())
	f.clock.AssertExpectations(t)
}

func testTACanceled(t *testing.T) {
	var (
		assert      = assert.New(t)
		f           = newTAFixture(t, 1, 1)
		ctx, cancel = context.WithCancel(context.Background())
	)

	cancel()
	assert.ErrorIs(f.ta.Run(ctx), context.Canceled)
	assert.Equal([]EventType{OfficeOpened, OfficeClosed}, f.recorder.Types())

	closed := f.recorder.OfType(OfficeClosed)[0]
	assert.ErrorIs(closed.Err, context.Canceled)
	assert.Equal(1, closed.Active)

	f.clock.AssertNotCalled(t, "NewTimer", testPollInterval)
}

// failingWait is an arrival signal whose timed waits always fail with err.
type failingWait struct {
	semaphore.Interface
	err error
}

func (fw failingWait) LowerWait(<-chan time.Time) error {
	return fw.err
}

func testTAUnexpectedError(t *testing.T) {
	var (
		assert = assert.New(t)
		f      = newTAFixture(t, 0, 1)
		timer  = clocktest.NewIdleTimer()
	)

	f.ta.arrivals = failingWait{Interface: f.arrivals, err: errors.New("wait interrupted")}
	f.clock.OnNewTimer(testPollInterval, timer).Once()

	// treated as a timeout: the idle check runs and, with nobody left, the office closes normally
	assert.NoError(f.ta.Run(context.Background()))
	assert.Equal([]EventType{OfficeOpened, Polled, OfficeClosed}, f.recorder.Types())
	assert.NoError(f.recorder.OfType(OfficeClosed)[0].Err)

	f.clock.AssertExpectations(t)
	timer.AssertExpectations(t)
}

func testTAReadyFailure(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		f       = newTAFixture(t, 1, 1)
		timer   = clocktest.NewIdleTimer()
	)

	// the ready signal is already at its bound, so calling the seated student in must fail
	require.NoError(f.ready.Raise())
	require.True(f.room.TryReserve())
	require.NoError(f.arrivals.Raise())
	f.clock.OnNewTimer(testPollInterval, timer).Once()

	err := f.ta.Run(context.Background())
	assert.ErrorIs(err, semaphore.ErrOverflow)
	assert.Equal([]EventType{OfficeOpened, SessionStarted, OfficeClosed}, f.recorder.Types())

	closed := f.recorder.OfType(OfficeClosed)[0]
	assert.ErrorIs(closed.Err, semaphore.ErrOverflow)
	assert.Equal(1, closed.Active)

	f.clock.AssertExpectations(t)
}

func TestTA(t *testing.T) {
	t.Run("IdleClose", testTAIdleClose)
	t.Run("WaitsForActiveStudents", testTAWaitsForActiveStudents)
	t.Run("Serve", testTAServe)
	t.Run("ClosedSignal", testTAClosedSignal)
	t.Run("Canceled", testTACanceled)
	t.Run("UnexpectedError", testTAUnexpectedError)
	t.Run("ReadyFailure", testTAReadyFailure)
}
