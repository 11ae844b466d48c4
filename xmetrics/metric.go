// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

var errMissingName = errors.New("A name is required for a metric")

// Metric describes a single metric that will be preregistered.  This type loosely
// corresponds with Prometheus' Opts struct.
type Metric struct {
	// Name is the required name of this metric.
	Name string

	// Type is the required type of metric.  This value must be one of the constants defined in this package.
	Type string

	// Help is the help string for this metric.  If not supplied, the metric's name is used
	Help string

	// Buckets describes the observation buckets for a histogram.  This field is only valid for histogram metrics
	// and is ignored for other metric types.  If unset, prometheus.DefBuckets is used.
	Buckets []float64
}

// NewCollector creates a Prometheus metric vector with no variable labels from a Metric descriptor.
// The name must not be empty.
func NewCollector(namespace, subsystem string, m Metric) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errMissingName
	}

	help := m.Help
	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      help,
		}, []string{}), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      help,
		}, []string{}), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      help,
			Buckets:   m.Buckets,
		}, []string{}), nil

	default:
		return nil, fmt.Errorf("Unsupported metric type: %s", m.Type)
	}
}
