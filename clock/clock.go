// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"context"
	"time"
)

// Interface represents a clock with the same core functionality available as in the stdlib time package.
// The office uses it for every simulated duration and for the TA's poll timer, so tests can substitute
// a mock.
type Interface interface {
	Now() time.Time
	Sleep(time.Duration)
	NewTimer(time.Duration) Timer
}

type systemClock struct{}

func (sc systemClock) Now() time.Time {
	return time.Now()
}

func (sc systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (sc systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{time.NewTimer(d)}
}

// System returns a clock backed by the time package
func System() Interface {
	return systemClock{}
}

// Pause blocks for d as measured by the given clock, or until the context is canceled.  It returns
// ctx.Err() if the pause was cut short.  A nonpositive duration returns immediately.
func Pause(ctx context.Context, c Interface, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := c.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
