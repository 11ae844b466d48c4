// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"context"
	"math/rand"

	"github.com/xmidt-org/officehours/clock"
	"github.com/xmidt-org/officehours/semaphore"
	"github.com/xmidt-org/officehours/waitingroom"
	"go.uber.org/zap"
)

// Student is one producer.  It makes a fixed number of attempts, each preceded by a work interval.
// An attempt that finds no free chair is abandoned and never retried.
type Student struct {
	id       int
	attempts int

	logger   *zap.Logger
	clock    clock.Interface
	listener Listener

	room     waitingroom.Interface
	arrivals semaphore.Interface
	ready    semaphore.Interface
	active   *ActiveCounter

	workTime clock.Interval
	random   *rand.Rand

	// closeArrivals is set when the last student home should close the arrival signal.
	closeArrivals bool
}

// Run executes every attempt, then leaves the active count.  The only error is ctx.Err() when the
// run is interrupted; the student still leaves the active count in that case.
func (s *Student) Run(ctx context.Context) error {
	defer s.finish()

	for k := 1; k <= s.attempts; k++ {
		if err := s.attempt(ctx, k); err != nil {
			return err
		}
	}

	return nil
}

func (s *Student) attempt(ctx context.Context, k int) error {
	d := s.workTime.Draw(s.random)
	s.listener.OfficeEvent(Event{Type: Programming, Student: s.id, Attempt: k, Attempts: s.attempts, Duration: d})
	if err := clock.Pause(ctx, s.clock, d); err != nil {
		return err
	}

	occupancy, ok := s.room.Reserve()
	if !ok {
		s.listener.OfficeEvent(Event{Type: TurnedAway, Student: s.id, Attempt: k, Attempts: s.attempts})
		return nil
	}

	s.listener.OfficeEvent(Event{Type: Seated, Student: s.id, Attempt: k, Attempts: s.attempts, Occupancy: occupancy})
	if err := s.arrivals.Raise(); err != nil {
		// nobody would ever call this student in, so give the chair back
		s.logger.Error("unable to wake the TA", zap.Int("student", s.id), zap.Int("attempt", k), zap.Error(err))
		s.room.Release()
		return nil
	}

	if err := s.ready.LowerCtx(ctx); err != nil {
		return err
	}

	s.listener.OfficeEvent(Event{Type: Helped, Student: s.id, Attempt: k, Attempts: s.attempts})
	return nil
}

func (s *Student) finish() {
	remaining := s.active.Finish()
	s.listener.OfficeEvent(Event{Type: StudentDone, Student: s.id, Attempts: s.attempts, Active: remaining})
	s.logger.Debug("student done", zap.Int("student", s.id), zap.Int("active", remaining))

	if remaining == 0 && s.closeArrivals {
		s.arrivals.Close()
	}
}
