// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"testing"
	"time"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/officehours/xmetrics"
)

type genericMeasures struct {
	*Measures

	attempts, seated, turnedAway, sessions, polls *generic.Counter
	active                                        *generic.Gauge
	sessionDuration, workDuration                 *generic.Histogram
}

func newGenericMeasures() genericMeasures {
	gm := genericMeasures{
		attempts:        generic.NewCounter(AttemptCount),
		seated:          generic.NewCounter(SeatedCount),
		turnedAway:      generic.NewCounter(TurnedAwayCount),
		sessions:        generic.NewCounter(SessionCount),
		polls:           generic.NewCounter(PollCount),
		active:          generic.NewGauge(ActiveStudentsGauge),
		sessionDuration: generic.NewHistogram(SessionDurationMetric, 10),
		workDuration:    generic.NewHistogram(WorkDurationMetric, 10),
	}

	gm.Measures = &Measures{
		Attempts:        gm.attempts,
		Seated:          gm.seated,
		TurnedAway:      gm.turnedAway,
		Sessions:        gm.sessions,
		Polls:           gm.polls,
		ArrivalRaises:   generic.NewCounter(ArrivalRaiseCount),
		ArrivalLowers:   generic.NewCounter(ArrivalLowerCount),
		ReadyRaises:     generic.NewCounter(ReadyRaiseCount),
		ReadyLowers:     generic.NewCounter(ReadyLowerCount),
		SignalFailures:  generic.NewCounter(SignalFailureCount),
		Occupancy:       generic.NewGauge(OccupancyGauge),
		ActiveStudents:  gm.active,
		SessionDuration: gm.sessionDuration,
		WorkDuration:    gm.workDuration,
	}

	return gm
}

func TestNewMetricsListener(t *testing.T) {
	assert.Panics(t, func() { NewMetricsListener(nil) })

	var (
		assert   = assert.New(t)
		gm       = newGenericMeasures()
		listener = NewMetricsListener(gm.Measures)
	)

	listener.OfficeEvent(Event{Type: Configured, Config: &Config{Students: 4}})
	assert.Equal(4.0, gm.active.Value())

	listener.OfficeEvent(Event{Type: Programming, Duration: 300 * time.Millisecond})
	listener.OfficeEvent(Event{Type: Seated})
	listener.OfficeEvent(Event{Type: TurnedAway})
	listener.OfficeEvent(Event{Type: Seated})
	listener.OfficeEvent(Event{Type: SessionFinished, Duration: 500 * time.Millisecond})
	listener.OfficeEvent(Event{Type: Polled})
	listener.OfficeEvent(Event{Type: StudentDone, Active: 3})

	assert.Equal(3.0, gm.attempts.Value())
	assert.Equal(2.0, gm.seated.Value())
	assert.Equal(1.0, gm.turnedAway.Value())
	assert.Equal(1.0, gm.sessions.Value())
	assert.Equal(1.0, gm.polls.Value())
	assert.Equal(3.0, gm.active.Value())
	assert.InDelta(0.3, gm.workDuration.Quantile(0.5), 0.001)
	assert.InDelta(0.5, gm.sessionDuration.Quantile(0.5), 0.001)
}

func TestMetricsRegistration(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	r, err := xmetrics.NewRegistry(&xmetrics.Options{Metrics: Metrics()})
	require.NoError(err)

	m := NewMeasures(r)
	m.Attempts.Add(2.0)
	m.Occupancy.Set(3.0)
	m.SessionDuration.Observe(0.25)

	assert.Equal(2.0, testutil.ToFloat64(r.NewCounterVec(AttemptCount)))
	assert.Equal(3.0, testutil.ToFloat64(r.NewGaugeVec(OccupancyGauge)))
	assert.Equal(1, testutil.CollectAndCount(r.NewHistogramVec(SessionDurationMetric)))
}
