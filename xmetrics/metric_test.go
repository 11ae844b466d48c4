// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	t.Run("MissingName", func(t *testing.T) {
		c, err := NewCollector("ns", "ss", Metric{Type: CounterType})
		assert.Nil(t, c)
		assert.Error(t, err)
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		c, err := NewCollector("ns", "ss", Metric{Name: "bad", Type: "summary"})
		assert.Nil(t, c)
		assert.Error(t, err)
	})

	testData := []struct {
		metric   Metric
		expected interface{}
	}{
		{Metric{Name: "counter", Type: CounterType}, (*prometheus.CounterVec)(nil)},
		{Metric{Name: "gauge", Type: GaugeType, Help: "a gauge"}, (*prometheus.GaugeVec)(nil)},
		{Metric{Name: "histogram", Type: HistogramType, Buckets: []float64{0.1, 0.5}}, (*prometheus.HistogramVec)(nil)},
	}

	for _, record := range testData {
		t.Run(record.metric.Name, func(t *testing.T) {
			c, err := NewCollector("ns", "ss", record.metric)
			require.NoError(t, err)
			assert.IsType(t, record.expected, c)
		})
	}
}
