// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"time"

	"github.com/spf13/viper"
	"github.com/xmidt-org/officehours/clock"
	"github.com/xmidt-org/officehours/xviper"
)

const (
	DefaultStudents     = 5
	DefaultChairs       = 3
	DefaultRequests     = 3
	DefaultPollInterval = 300 * time.Millisecond

	MinPollInterval = time.Millisecond
)

var (
	DefaultWorkTime = clock.Interval{Min: 200 * time.Millisecond, Max: 800 * time.Millisecond}
	DefaultHelpTime = clock.Interval{Min: 200 * time.Millisecond, Max: 600 * time.Millisecond}
)

// Config is the immutable configuration of a run.
type Config struct {
	// Students is the number of student goroutines.  Values below 1 are clamped to 1.
	Students int `mapstructure:"students"`

	// Chairs is the waiting room capacity.  Negative values are clamped to 0.
	Chairs int `mapstructure:"chairs"`

	// Requests is the number of times each student seeks help.  Values below 1 are clamped to 1.
	Requests int `mapstructure:"requests"`

	// WorkTime bounds how long a student programs before each request.
	WorkTime clock.Interval `mapstructure:"workTime"`

	// HelpTime bounds how long a single help session lasts.
	HelpTime clock.Interval `mapstructure:"helpTime"`

	// PollInterval is how long the TA naps before checking whether the office can close.
	PollInterval time.Duration `mapstructure:"pollInterval"`

	// Seed seeds every random stream in the run.  Zero means a time-based seed.
	Seed int64 `mapstructure:"seed"`

	// ShutdownNotice enables closing the arrival signal when the last student goes home.
	ShutdownNotice bool `mapstructure:"shutdownNotice"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Students:       DefaultStudents,
		Chairs:         DefaultChairs,
		Requests:       DefaultRequests,
		WorkTime:       DefaultWorkTime,
		HelpTime:       DefaultHelpTime,
		PollInterval:   DefaultPollInterval,
		ShutdownNotice: true,
	}
}

// Defaults returns the viper defaults matching DefaultConfig.
func Defaults() xviper.Defaults {
	c := DefaultConfig()
	return xviper.Defaults{
		"students":       c.Students,
		"chairs":         c.Chairs,
		"requests":       c.Requests,
		"workTime.min":   c.WorkTime.Min,
		"workTime.max":   c.WorkTime.Max,
		"helpTime.min":   c.HelpTime.Min,
		"helpTime.max":   c.HelpTime.Max,
		"pollInterval":   c.PollInterval,
		"seed":           c.Seed,
		"shutdownNotice": c.ShutdownNotice,
	}
}

// Clamp returns a copy of this configuration with every field moved to the nearest valid value.
// Invalid values are never rejected.
func (c Config) Clamp() Config {
	if c.Students < 1 {
		c.Students = 1
	}

	if c.Chairs < 0 {
		c.Chairs = 0
	}

	if c.Requests < 1 {
		c.Requests = 1
	}

	c.WorkTime = c.WorkTime.Clamp()
	c.HelpTime = c.HelpTime.Clamp()

	if c.PollInterval < MinPollInterval {
		c.PollInterval = MinPollInterval
	}

	return c
}

// FromViper unmarshals and clamps the run configuration.  Keys missing from v take the zero value
// before clamping, so callers normally apply Defaults to v first.
func FromViper(v *viper.Viper) (Config, error) {
	var c Config
	if v != nil {
		if err := xviper.Unmarshal(v, &c); err != nil {
			return Config{}, err
		}
	}

	return c.Clamp(), nil
}
