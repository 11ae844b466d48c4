// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// IntervalSeparator separates the bounds in the string form of an Interval, e.g. "200ms..800ms".
const IntervalSeparator = ".."

var ErrInvalidInterval = errors.New("an interval must be written as min..max")

// Interval is a closed range of simulated durations, e.g. how long a student programs before
// seeking help.
type Interval struct {
	Min time.Duration `mapstructure:"min"`
	Max time.Duration `mapstructure:"max"`
}

// Clamp returns a copy of this interval with a nonnegative Min and a Max no smaller than Min.
func (i Interval) Clamp() Interval {
	if i.Min < 0 {
		i.Min = 0
	}

	if i.Max < i.Min {
		i.Max = i.Min
	}

	return i
}

// Draw picks a duration uniformly from the interval using the supplied random source.
// Each worker owns its own *rand.Rand, so no locking is needed.
func (i Interval) Draw(r *rand.Rand) time.Duration {
	i = i.Clamp()
	if i.Max == i.Min {
		return i.Min
	}

	return i.Min + time.Duration(r.Int63n(int64(i.Max-i.Min)+1))
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Min, i.Max)
}

// ParseInterval parses the "min..max" form of an Interval.  Each bound may be anything cast can
// turn into a duration, e.g. "250ms" or a bare integer count of nanoseconds.  A single value with
// no separator yields a fixed interval.  The result is not clamped.
func ParseInterval(v string) (Interval, error) {
	minText, maxText, found := strings.Cut(strings.TrimSpace(v), IntervalSeparator)
	if !found {
		maxText = minText
	}

	minValue, err := cast.ToDurationE(strings.TrimSpace(minText))
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %s", ErrInvalidInterval, err)
	}

	maxValue, err := cast.ToDurationE(strings.TrimSpace(maxText))
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %s", ErrInvalidInterval, err)
	}

	return Interval{Min: minValue, Max: maxValue}, nil
}
