// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"time"

	"github.com/spf13/viper"
	"github.com/xmidt-org/officehours/xviper"
)

const (
	// MetricsKey is the viper key under which the metrics server options live.
	MetricsKey = "metrics"

	DefaultName              = "metrics"
	DefaultPath              = "/metrics"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

// Options describes the metrics endpoint.  An empty Address disables it.
type Options struct {
	Name              string        `mapstructure:"name"`
	Address           string        `mapstructure:"address"`
	Path              string        `mapstructure:"path"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`

	// MaxConnections limits the number of concurrent connections.  Nonpositive values mean no limit.
	MaxConnections int `mapstructure:"maxConnections"`
}

func (o *Options) name() string {
	if o != nil && len(o.Name) > 0 {
		return o.Name
	}

	return DefaultName
}

func (o *Options) path() string {
	if o != nil && len(o.Path) > 0 {
		return o.Path
	}

	return DefaultPath
}

func (o *Options) readHeaderTimeout() time.Duration {
	if o != nil && o.ReadHeaderTimeout > 0 {
		return o.ReadHeaderTimeout
	}

	return DefaultReadHeaderTimeout
}

func (o *Options) shutdownTimeout() time.Duration {
	if o != nil && o.ShutdownTimeout > 0 {
		return o.ShutdownTimeout
	}

	return DefaultShutdownTimeout
}

// Enabled tests whether an address has been configured.
func (o *Options) Enabled() bool {
	return o != nil && len(o.Address) > 0
}

// FromViper unmarshals the metrics server options.  Like logging.FromViper, the whole configuration
// is decoded so that flags bound to nested keys are honored.
func FromViper(v *viper.Viper) (*Options, error) {
	var wrapper struct {
		Metrics Options `mapstructure:"metrics"`
	}

	if v != nil {
		if err := xviper.Unmarshal(v, &wrapper); err != nil {
			return nil, err
		}
	}

	return &wrapper.Metrics, nil
}
