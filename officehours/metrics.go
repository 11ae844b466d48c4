// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/officehours/xmetrics"
)

// Names for our metrics
const (
	AttemptCount          = "attempts"
	SeatedCount           = "seated"
	TurnedAwayCount       = "turned_away"
	SessionCount          = "sessions"
	PollCount             = "polls"
	ArrivalRaiseCount     = "arrival_raises"
	ArrivalLowerCount     = "arrival_lowers"
	ReadyRaiseCount       = "ready_raises"
	ReadyLowerCount       = "ready_lowers"
	SignalFailureCount    = "signal_failures"
	OccupancyGauge        = "occupancy"
	ActiveStudentsGauge   = "active_students"
	SessionDurationMetric = "session_duration_seconds"
	WorkDurationMetric    = "work_duration_seconds"
)

var durationBuckets = []float64{0.05, 0.1, 0.2, 0.4, 0.6, 0.8, 1, 2}

// Metrics returns the metrics relevant to this package, for preregistration in an xmetrics.Options.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{Name: AttemptCount, Type: xmetrics.CounterType, Help: "Help requests made by students, successful or not"},
		{Name: SeatedCount, Type: xmetrics.CounterType, Help: "Requests for which a student found a free chair"},
		{Name: TurnedAwayCount, Type: xmetrics.CounterType, Help: "Requests abandoned because every chair was taken"},
		{Name: SessionCount, Type: xmetrics.CounterType, Help: "Completed TA help sessions"},
		{Name: PollCount, Type: xmetrics.CounterType, Help: "Times the TA woke without an arrival"},
		{Name: ArrivalRaiseCount, Type: xmetrics.CounterType, Help: "Raises of the arrival signal"},
		{Name: ArrivalLowerCount, Type: xmetrics.CounterType, Help: "Lowers of the arrival signal"},
		{Name: ReadyRaiseCount, Type: xmetrics.CounterType, Help: "Raises of the ready signal"},
		{Name: ReadyLowerCount, Type: xmetrics.CounterType, Help: "Lowers of the ready signal"},
		{Name: SignalFailureCount, Type: xmetrics.CounterType, Help: "Signal operations that returned an error, poll timeouts included"},
		{Name: OccupancyGauge, Type: xmetrics.GaugeType, Help: "Chairs currently taken"},
		{Name: ActiveStudentsGauge, Type: xmetrics.GaugeType, Help: "Students that have not yet gone home"},
		{Name: SessionDurationMetric, Type: xmetrics.HistogramType, Help: "Simulated help session length", Buckets: durationBuckets},
		{Name: WorkDurationMetric, Type: xmetrics.HistogramType, Help: "Simulated programming interval length", Buckets: durationBuckets},
	}
}

// Measures describes the defined metrics that will be used by the office.
type Measures struct {
	Attempts        metrics.Counter
	Seated          metrics.Counter
	TurnedAway      metrics.Counter
	Sessions        metrics.Counter
	Polls           metrics.Counter
	ArrivalRaises   metrics.Counter
	ArrivalLowers   metrics.Counter
	ReadyRaises     metrics.Counter
	ReadyLowers     metrics.Counter
	SignalFailures  metrics.Counter
	Occupancy       metrics.Gauge
	ActiveStudents  metrics.Gauge
	SessionDuration metrics.Histogram
	WorkDuration    metrics.Histogram
}

// NewMeasures realizes the desired metrics from a go-kit provider, typically an xmetrics.Registry.
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Attempts:        p.NewCounter(AttemptCount),
		Seated:          p.NewCounter(SeatedCount),
		TurnedAway:      p.NewCounter(TurnedAwayCount),
		Sessions:        p.NewCounter(SessionCount),
		Polls:           p.NewCounter(PollCount),
		ArrivalRaises:   p.NewCounter(ArrivalRaiseCount),
		ArrivalLowers:   p.NewCounter(ArrivalLowerCount),
		ReadyRaises:     p.NewCounter(ReadyRaiseCount),
		ReadyLowers:     p.NewCounter(ReadyLowerCount),
		SignalFailures:  p.NewCounter(SignalFailureCount),
		Occupancy:       p.NewGauge(OccupancyGauge),
		ActiveStudents:  p.NewGauge(ActiveStudentsGauge),
		SessionDuration: p.NewHistogram(SessionDurationMetric, len(durationBuckets)),
		WorkDuration:    p.NewHistogram(WorkDurationMetric, len(durationBuckets)),
	}
}

// NewMetricsListener produces a Listener that records the event-driven metrics.  Signal and
// occupancy metrics are recorded directly by the instrumented primitives instead.
func NewMetricsListener(m *Measures) Listener {
	if m == nil {
		panic("Measures are required")
	}

	return ListenerFunc(func(e Event) {
		switch e.Type {
		case Configured:
			if e.Config != nil {
				m.ActiveStudents.Set(float64(e.Config.Students))
			}

		case Programming:
			m.WorkDuration.Observe(e.Duration.Seconds())

		case Seated:
			m.Attempts.Add(1.0)
			m.Seated.Add(1.0)

		case TurnedAway:
			m.Attempts.Add(1.0)
			m.TurnedAway.Add(1.0)

		case StudentDone:
			m.ActiveStudents.Set(float64(e.Active))

		case SessionFinished:
			m.Sessions.Add(1.0)
			m.SessionDuration.Observe(e.Duration.Seconds())

		case Polled:
			m.Polls.Add(1.0)
		}
	})
}

// fanout is an xmetrics.Adder that forwards each delta to several adders.
type fanout []xmetrics.Adder

func (f fanout) Add(delta float64) {
	for _, a := range f {
		a.Add(delta)
	}
}
