// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package waitingroom implements the bounded row of chairs outside the TA's office.
package waitingroom

import (
	"sync"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/officehours/xmetrics"
)

// Interface represents a bounded waiting room.  Admission is a single non-blocking test: a
// caller that cannot be seated immediately is turned away rather than queued.
type Interface interface {
	// TryReserve takes a chair if one is free, returning true.  If every chair is taken this method
	// returns false immediately and the room is unchanged.
	TryReserve() bool

	// Reserve is TryReserve that also returns the occupancy immediately after this caller was
	// seated, read under the same lock.  The occupancy is meaningless when ok is false.
	Reserve() (occupancy int, ok bool)

	// Release frees one chair.  Releasing an empty room is a no-op that returns false.
	Release() bool

	// Occupancy returns a snapshot of the number of taken chairs.
	Occupancy() int

	// Capacity returns the fixed number of chairs.
	Capacity() int

	// Peak returns the highest occupancy ever observed.
	Peak() int
}

// Option is a configuration option for a waiting room
type Option func(*room)

// WithOccupancyGauge establishes a gauge that tracks the number of taken chairs.
// If a nil gauge is supplied, occupancy updates are discarded.
func WithOccupancyGauge(gauge xmetrics.Setter) Option {
	return func(r *room) {
		if gauge != nil {
			r.occupancyGauge = gauge
		} else {
			r.occupancyGauge = discard.NewGauge()
		}
	}
}

// WithRejections establishes a counter incremented each time TryReserve turns a caller away.
// If a nil counter is supplied, rejections are discarded.
func WithRejections(a xmetrics.Adder) Option {
	return func(r *room) {
		if a != nil {
			r.rejections = a
		} else {
			r.rejections = discard.NewCounter()
		}
	}
}

// New constructs a waiting room with the given number of chairs.  A negative capacity is
// treated as zero, which produces a room that turns everyone away.
func New(capacity int, options ...Option) Interface {
	if capacity < 0 {
		capacity = 0
	}

	r := &room{
		capacity:       capacity,
		occupancyGauge: discard.NewGauge(),
		rejections:     discard.NewCounter(),
	}

	for _, o := range options {
		o(r)
	}

	r.occupancyGauge.Set(0.0)
	return r
}

// room is the internal Interface implementation.  occupied and peak are only touched under lock.
type room struct {
	lock     sync.Mutex
	capacity int
	occupied int
	peak     int

	occupancyGauge xmetrics.Setter
	rejections     xmetrics.Adder
}

func (r *room) TryReserve() bool {
	_, ok := r.Reserve()
	return ok
}

func (r *room) Reserve() (int, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.occupied >= r.capacity {
		r.rejections.Add(1.0)
		return r.occupied, false
	}

	r.occupied++
	if r.occupied > r.peak {
		r.peak = r.occupied
	}

	r.occupancyGauge.Set(float64(r.occupied))
	return r.occupied, true
}

func (r *room) Release() bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.occupied == 0 {
		return false
	}

	r.occupied--
	r.occupancyGauge.Set(float64(r.occupied))
	return true
}

func (r *room) Occupancy() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.occupied
}

func (r *room) Capacity() int {
	return r.capacity
}

func (r *room) Peak() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.peak
}
