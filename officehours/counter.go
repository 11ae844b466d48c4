// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"sync/atomic"
)

// ActiveCounter counts the students that have not yet gone home.  It only ever decreases and
// reaches zero exactly once.
type ActiveCounter struct {
	remaining int64
	done      chan struct{}
}

// NewActiveCounter creates a counter starting at n.  A nonpositive n yields a counter that is
// already done.
func NewActiveCounter(n int) *ActiveCounter {
	ac := &ActiveCounter{
		done: make(chan struct{}),
	}

	if n > 0 {
		ac.remaining = int64(n)
	} else {
		close(ac.done)
	}

	return ac
}

// Finish records one student going home and returns the number still active.  The call that
// brings the count to zero closes the Done channel.  Calling Finish more times than the initial
// count is a programming error and panics.
func (ac *ActiveCounter) Finish() int {
	remaining := atomic.AddInt64(&ac.remaining, -1)
	switch {
	case remaining == 0:
		close(ac.done)
	case remaining < 0:
		panic("ActiveCounter finished more times than it was started")
	}

	return int(remaining)
}

// Remaining returns the number of students still active.
func (ac *ActiveCounter) Remaining() int {
	return int(atomic.LoadInt64(&ac.remaining))
}

// Done returns a channel that is closed once every student has gone home.
func (ac *ActiveCounter) Done() <-chan struct{} {
	return ac.done
}

// tally is an xmetrics.Adder backed by an atomic integer.  The office uses tallies to build its
// Report independently of whatever metrics backend is configured.
type tally struct {
	value int64
}

func (t *tally) Add(delta float64) {
	atomic.AddInt64(&t.value, int64(delta))
}

func (t *tally) Value() int {
	return int(atomic.LoadInt64(&t.value))
}
