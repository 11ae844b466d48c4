// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/officehours/clock"
	"github.com/xmidt-org/officehours/semaphore"
	"github.com/xmidt-org/officehours/waitingroom"
	"go.uber.org/zap"
)

func init() {
	ksuid.SetRand(ksuid.FastRander)
}

// TA is the single consumer.  It naps on the arrival signal, calls in one student per arrival,
// and decides when the office may close.
type TA struct {
	logger   *zap.Logger
	clock    clock.Interface
	listener Listener

	room     waitingroom.Interface
	arrivals semaphore.Interface
	ready    semaphore.Interface
	active   *ActiveCounter

	helpTime     clock.Interval
	pollInterval time.Duration
	random       *rand.Rand
}

// Run executes the TA's loop until the office closes.  It returns nil on a normal close,
// ctx.Err() if the context was canceled first, or the error that prevented a waiting student from
// being called in.  The OfficeClosed event is always the last event sent by Run.
func (ta *TA) Run(ctx context.Context) error {
	ta.listener.OfficeEvent(Event{Type: OfficeOpened})
	ta.logger.Info("office open", zap.Duration("pollInterval", ta.pollInterval))

	for {
		if err := ctx.Err(); err != nil {
			ta.close(err)
			return err
		}

		closing, err := ta.nap(ctx)
		if err != nil {
			ta.close(err)
			return err
		}

		if closing {
			// the idle check also passes when students exited on cancellation, so report ctx.Err()
			err = ctx.Err()
			ta.close(err)
			return err
		}
	}
}

// nap performs exactly one bounded wait on the arrival signal and handles its outcome.  It
// returns true when the office may close.
func (ta *TA) nap(ctx context.Context) (bool, error) {
	timer := ta.clock.NewTimer(ta.pollInterval)
	defer timer.Stop()

	err := ta.arrivals.LowerWait(timer.C())
	switch {
	case err == nil:
		return false, ta.serve(ctx)

	case errors.Is(err, semaphore.ErrTimeout):
		return ta.idle(), nil

	case errors.Is(err, semaphore.ErrClosed):
		if ta.idle() {
			return true, nil
		}

		// a closed signal no longer blocks, so wait out the interval to avoid spinning
		ta.logger.Warn("arrival signal closed while the office is still busy")
		select {
		case <-timer.C():
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}

	default:
		ta.logger.Error("unexpected error while napping, treating as a timeout", zap.Error(err))
		return ta.idle(), nil
	}
}

// idle reports the TA waking without an arrival and tests whether the office may close.  Both
// counts must be zero: a student that is still programming may show up later.
func (ta *TA) idle() bool {
	var (
		active    = ta.active.Remaining()
		occupancy = ta.room.Occupancy()
	)

	ta.listener.OfficeEvent(Event{Type: Polled, Active: active, Occupancy: occupancy})
	ta.logger.Debug("TA woke without an arrival", zap.Int("active", active), zap.Int("occupancy", occupancy))
	return active == 0 && occupancy == 0
}

// serve runs one help session for the student whose arrival was just lowered.
func (ta *TA) serve(ctx context.Context) error {
	if !ta.room.Release() {
		ta.logger.Warn("arrival lowered with no occupied chair")
	}

	session := ksuid.New().String()
	ta.listener.OfficeEvent(Event{Type: SessionStarted, Session: session, Occupancy: ta.room.Occupancy()})

	if err := ta.ready.Raise(); err != nil {
		// the admitted student would wait forever, so the office cannot continue
		ta.logger.Error("unable to call in a waiting student", zap.String("session", session), zap.Error(err))
		return fmt.Errorf("unable to call in a waiting student: %w", err)
	}

	d := ta.helpTime.Draw(ta.random)
	if err := clock.Pause(ctx, ta.clock, d); err != nil {
		return err
	}

	ta.listener.OfficeEvent(Event{Type: SessionFinished, Session: session, Duration: d})
	ta.logger.Debug("help session finished", zap.String("session", session), zap.Duration("duration", d))
	return nil
}

func (ta *TA) close(err error) {
	var (
		active    = ta.active.Remaining()
		occupancy = ta.room.Occupancy()
	)

	if err != nil {
		ta.logger.Warn("office closing early", zap.Error(err), zap.Int("active", active), zap.Int("occupancy", occupancy))
	} else {
		ta.logger.Info("office closing", zap.Int("active", active), zap.Int("occupancy", occupancy))
	}

	ta.listener.OfficeEvent(Event{Type: OfficeClosed, Active: active, Occupancy: occupancy, Err: err})
}
