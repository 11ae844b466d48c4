// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/officehours/xmetrics"
)

// Names for our metrics
const (
	ActiveConnectionsGauge   = "metrics_active_connections"
	RejectedConnectionsCount = "metrics_rejected_connections"
)

// Metrics returns the metrics relevant to this package.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: ActiveConnectionsGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of open connections to the metrics endpoint",
		},
		{
			Name: RejectedConnectionsCount,
			Type: xmetrics.CounterType,
			Help: "Connections to the metrics endpoint closed because the connection limit was reached",
		},
	}
}

// Measures holds the metrics recorded by a Server.  Nil fields are discarded.
type Measures struct {
	ActiveConnections   xmetrics.Adder
	RejectedConnections xmetrics.Adder
}

// NewMeasures realizes the server metrics from a go-kit provider.
func NewMeasures(p provider.Provider) Measures {
	return Measures{
		ActiveConnections:   p.NewGauge(ActiveConnectionsGauge),
		RejectedConnections: p.NewCounter(RejectedConnectionsCount),
	}
}
