// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/officehours/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a signal
type InstrumentOption func(*instrumentedSignal)

// WithRaises establishes a metric that counts successful raises.
// If a nil counter is supplied, raises are discarded.
func WithRaises(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSignal) {
		if a != nil {
			i.raises = a
		} else {
			i.raises = discard.NewCounter()
		}
	}
}

// WithLowers establishes a metric that counts successful lowers.
// If a nil counter is supplied, lowers are discarded.
func WithLowers(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSignal) {
		if a != nil {
			i.lowers = a
		} else {
			i.lowers = discard.NewCounter()
		}
	}
}

// WithFailures establishes a metric that tracks how many raises or lowers returned an error,
// timeouts included.  If a nil counter is supplied, failures are discarded.
func WithFailures(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSignal) {
		if a != nil {
			i.failures = a
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing signal with a set of options.  A nil signal results in a panic.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("A signal is required")
	}

	is := &instrumentedSignal{
		Interface: s,
		raises:    discard.NewCounter(),
		lowers:    discard.NewCounter(),
		failures:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSignal struct {
	Interface
	raises   xmetrics.Adder
	lowers   xmetrics.Adder
	failures xmetrics.Adder
}

func (is *instrumentedSignal) record(success xmetrics.Adder, err error) error {
	if err != nil {
		is.failures.Add(1.0)
	} else {
		success.Add(1.0)
	}

	return err
}

func (is *instrumentedSignal) Raise() error {
	return is.record(is.raises, is.Interface.Raise())
}

func (is *instrumentedSignal) Lower() error {
	return is.record(is.lowers, is.Interface.Lower())
}

func (is *instrumentedSignal) LowerWait(t <-chan time.Time) error {
	return is.record(is.lowers, is.Interface.LowerWait(t))
}

func (is *instrumentedSignal) LowerCtx(ctx context.Context) error {
	return is.record(is.lowers, is.Interface.LowerCtx(ctx))
}

func (is *instrumentedSignal) TryLower() bool {
	if is.Interface.TryLower() {
		is.lowers.Add(1.0)
		return true
	}

	return false
}
