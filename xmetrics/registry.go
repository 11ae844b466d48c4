// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// For any metric that is already defined the provider returns a new go-kit wrapper for that metric.  Ad hoc metrics are
// created on first use, cached, and returned by subsequent calls to the Provider methods.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

// registry is the internal Registry implementation
type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// collector returns the cached collector with the given name, creating and registering an ad hoc
// metric of type t if necessary.
func (r *registry) collector(name, t string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(r.namespace, r.subsystem, Metric{Name: name, Type: t})
	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	counterVec, ok := r.collector(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("The metric %s is not a counter", name))
	}

	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	gaugeVec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("The metric %s is not a gauge", name))
	}

	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	histogramVec, ok := r.collector(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("The metric %s is not a histogram", name))
	}

	return histogramVec
}

// NewHistogram ignores the bucket count.  Buckets come from the predefined Metric, if any.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry and preregisters every metric in the options.  A nil Options
// produces a registry with default settings and no predefined metrics.
func NewRegistry(o *Options) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, m := range o.metrics() {
		if _, ok := r.cache[m.Name]; ok {
			return nil, fmt.Errorf("Duplicate metric %s", m.Name)
		}

		c, err := NewCollector(r.namespace, r.subsystem, m)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("Error while preregistering metric %s: %w", m.Name, err)
		}

		r.cache[m.Name] = c
	}

	return r, nil
}
