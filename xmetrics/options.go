// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	DefaultNamespace = "xmidt"
	DefaultSubsystem = "officehours"
)

// Options is the configurable options for creating a Prometheus registry
type Options struct {
	// Namespace is the global default namespace for metrics.  If not supplied, DefaultNamespace is used.
	Namespace string `mapstructure:"namespace"`

	// Subsystem is the global default subsystem for metrics.  If not supplied, DefaultSubsystem is used.
	Subsystem string `mapstructure:"subsystem"`

	// Pedantic indicates whether the registry is created via NewPedanticRegistry().  By default, this is false.  Set
	// to true for testing or development.
	Pedantic bool `mapstructure:"pedantic"`

	// DisableGoCollector controls whether the Go Collector is registered with the Registry.  By default this is false,
	// meaning that a GoCollector is registered.
	DisableGoCollector bool `mapstructure:"disableGoCollector"`

	// Metrics defines the set of predefined metrics.  These metrics will be defined immediately by a Registry
	// created using this Options instance.  Any duplicate names will cause an error.
	Metrics []Metric `mapstructure:"-"`
}

func (o *Options) namespace() string {
	if o != nil && len(o.Namespace) > 0 {
		return o.Namespace
	}

	return DefaultNamespace
}

func (o *Options) subsystem() string {
	if o != nil && len(o.Subsystem) > 0 {
		return o.Subsystem
	}

	return DefaultSubsystem
}

func (o *Options) metrics() []Metric {
	if o != nil {
		return o.Metrics
	}

	return nil
}

func (o *Options) registry() *prometheus.Registry {
	var pr *prometheus.Registry

	if o != nil && o.Pedantic {
		pr = prometheus.NewPedanticRegistry()
	} else {
		pr = prometheus.NewRegistry()
	}

	if o == nil || !o.DisableGoCollector {
		pr.MustRegister(collectors.NewGoCollector())
	}

	return pr
}
