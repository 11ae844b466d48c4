// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"
)

var (
	// ErrTimeout is returned when the timer channel passed to LowerWait fires before a raise is available.
	// This error does not apply when using a context.  ctx.Err() is returned in that case.
	ErrTimeout = errors.New("the signal was not raised within the timeout")

	// ErrClosed is returned when a signal has been closed and no outstanding raise remains.
	ErrClosed = errors.New("the signal has been closed")

	// ErrOverflow is returned by Raise when the number of outstanding raises already equals the bound.
	ErrOverflow = errors.New("the signal has too many outstanding raises")
)

const (
	stateOpen   int32 = 0
	stateClosed int32 = 1
)

// Interface represents a counting signal.  Every successful Raise is matched by exactly one
// successful lower, whichever goroutine performs it.
type Interface interface {
	io.Closer

	// Raise increments the signal.  It never blocks.  If the bound has been reached, ErrOverflow is
	// returned and the count is unchanged.  Raising a closed signal returns ErrClosed.
	Raise() error

	// Lower blocks until a raise is available and consumes it.  If the signal is closed and no raise
	// is outstanding, ErrClosed is returned.
	Lower() error

	// LowerWait attempts to consume a raise before the given time channel becomes signaled.
	// If the time channel gets signaled first, ErrTimeout is returned.  An outstanding raise always
	// wins over an expired timer.
	LowerWait(<-chan time.Time) error

	// LowerCtx attempts to consume a raise before the given context is canceled.  If the context
	// is canceled first, this method returns ctx.Err().
	LowerCtx(context.Context) error

	// TryLower consumes a raise if one is outstanding, returning false immediately otherwise.
	TryLower() bool

	// Pending returns the number of raises that have not yet been lowered.
	Pending() int

	// Closed returns a channel that is closed when this signal has been closed.
	// This channel has similar use cases to context.Done().
	Closed() <-chan struct{}
}

// New constructs a signal that allows at most bound outstanding raises.  A nonpositive bound
// will result in a panic.
func New(bound int) Interface {
	if bound < 1 {
		panic("The bound must be positive")
	}

	return &signal{
		c:      make(chan struct{}, bound),
		closed: make(chan struct{}),
	}
}

// signal is the internal Interface implementation.  The buffered channel holds one token per
// outstanding raise.
type signal struct {
	c chan struct{}

	state  int32
	closed chan struct{}
}

func (s *signal) checkClosed() bool {
	return atomic.LoadInt32(&s.state) == stateClosed
}

func (s *signal) Close() error {
	if atomic.CompareAndSwapInt32(&s.state, stateOpen, stateClosed) {
		close(s.closed)
		return nil
	}

	return ErrClosed
}

func (s *signal) Closed() <-chan struct{} {
	return s.closed
}

func (s *signal) Raise() error {
	if s.checkClosed() {
		return ErrClosed
	}

	select {
	case s.c <- struct{}{}:
		return nil
	default:
		return ErrOverflow
	}
}

func (s *signal) Lower() error {
	select {
	case <-s.c:
		return nil
	case <-s.closed:
		return s.drain()
	}
}

func (s *signal) LowerWait(t <-chan time.Time) error {
	select {
	case <-s.c:
		return nil

	case <-t:
		if s.TryLower() {
			return nil
		}

		return ErrTimeout

	case <-s.closed:
		return s.drain()
	}
}

func (s *signal) LowerCtx(ctx context.Context) error {
	select {
	case <-s.c:
		return nil

	case <-ctx.Done():
		return ctx.Err()

	case <-s.closed:
		return s.drain()
	}
}

func (s *signal) TryLower() bool {
	select {
	case <-s.c:
		return true
	default:
		return false
	}
}

func (s *signal) Pending() int {
	return len(s.c)
}

// drain is used once the signal is closed: a raise that happened before Close must still
// be delivered.
func (s *signal) drain() error {
	if s.TryLower() {
		return nil
	}

	return ErrClosed
}
