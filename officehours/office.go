// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/officehours/clock"
	"github.com/xmidt-org/officehours/semaphore"
	"github.com/xmidt-org/officehours/waitingroom"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// seedStride spreads the per-student random streams apart.
const seedStride int64 = 2654435761

// Report holds the aggregate counts of one run.
type Report struct {
	Attempts      int
	Seated        int
	TurnedAway    int
	Sessions      int
	ArrivalRaises int
	ReadyRaises   int
	Polls         int
	PeakOccupancy int
}

// Option configures an Office.
type Option func(*Office)

// WithLogger sets the diagnostics logger.  If unset, or set to nil, the logger carried by the
// context passed to Run is used.
func WithLogger(l *zap.Logger) Option {
	return func(o *Office) {
		o.logger = l
	}
}

// WithClock sets the clock used for every simulated interval.  A nil clock means clock.System().
func WithClock(c clock.Interface) Option {
	return func(o *Office) {
		if c != nil {
			o.clock = c
		} else {
			o.clock = clock.System()
		}
	}
}

// WithListeners appends listeners that receive every office event.
func WithListeners(l ...Listener) Option {
	return func(o *Office) {
		o.listeners = append(o.listeners, l...)
	}
}

// WithMeasures sets the metrics the office records.  A nil value discards metrics.
func WithMeasures(m *Measures) Option {
	return func(o *Office) {
		if m != nil {
			o.measures = m
		} else {
			o.measures = NewMeasures(provider.NewDiscardProvider())
		}
	}
}

// Office owns one run of the simulation: the waiting room, both signals, the TA and the students.
type Office struct {
	config    Config
	logger    *zap.Logger
	clock     clock.Interface
	listeners Listeners
	measures  *Measures
}

// New creates an Office from a configuration, which is clamped.  A zero seed is replaced with a
// time-based one, so Config() always reports the seed actually used.
func New(c Config, options ...Option) *Office {
	o := &Office{
		config:   c.Clamp(),
		clock:    clock.System(),
		measures: NewMeasures(provider.NewDiscardProvider()),
	}

	if o.config.Seed == 0 {
		o.config.Seed = time.Now().UnixNano()
	}

	for _, f := range options {
		f(o)
	}

	return o
}

// Config returns the effective configuration of this office.
func (o *Office) Config() Config {
	return o.config
}

// Run executes the simulation once and blocks until the TA has closed the office and every student
// has gone home.  If ctx is canceled, every worker stops promptly and ctx.Err() is returned along
// with the counts gathered so far.
func (o *Office) Run(ctx context.Context) (Report, error) {
	logger := o.logger
	if logger == nil {
		logger = sallust.Get(ctx)
	}

	var (
		c = o.config
		m = o.measures
		t = new(tallies)

		listener = Listeners{t, NewMetricsListener(m)}
		room     = waitingroom.New(
			c.Chairs,
			waitingroom.WithOccupancyGauge(m.Occupancy),
			waitingroom.WithRejections(&t.rejections),
		)

		// at most one arrival per chair can be outstanding, and at most one ready per student
		arrivals = semaphore.Instrument(
			semaphore.New(max(c.Chairs, 1)),
			semaphore.WithRaises(fanout{&t.arrivalRaises, m.ArrivalRaises}),
			semaphore.WithLowers(m.ArrivalLowers),
			semaphore.WithFailures(m.SignalFailures),
		)

		ready = semaphore.Instrument(
			semaphore.New(c.Students),
			semaphore.WithRaises(fanout{&t.readyRaises, m.ReadyRaises}),
			semaphore.WithLowers(m.ReadyLowers),
			semaphore.WithFailures(m.SignalFailures),
		)

		active = NewActiveCounter(c.Students)
	)

	listener = append(listener, o.listeners...)
	listener.OfficeEvent(Event{Type: Configured, Config: &c})
	logger.Info(
		"office starting",
		zap.Int("students", c.Students),
		zap.Int("chairs", c.Chairs),
		zap.Int("requests", c.Requests),
		zap.Stringer("workTime", c.WorkTime),
		zap.Stringer("helpTime", c.HelpTime),
		zap.Duration("pollInterval", c.PollInterval),
		zap.Int64("seed", c.Seed),
		zap.Bool("shutdownNotice", c.ShutdownNotice),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ta := &TA{
			logger:       logger.With(zap.String("worker", "ta")),
			clock:        o.clock,
			listener:     listener,
			room:         room,
			arrivals:     arrivals,
			ready:        ready,
			active:       active,
			helpTime:     c.HelpTime,
			pollInterval: c.PollInterval,
			random:       rand.New(rand.NewSource(c.Seed)), // #nosec G404
		}

		return ta.Run(gctx)
	})

	for i := 0; i < c.Students; i++ {
		s := &Student{
			id:            i + 1,
			attempts:      c.Requests,
			logger:        logger.With(zap.Int("student", i+1)),
			clock:         o.clock,
			listener:      listener,
			room:          room,
			arrivals:      arrivals,
			ready:         ready,
			active:        active,
			workTime:      c.WorkTime,
			random:        rand.New(rand.NewSource(c.Seed ^ int64(i+1)*seedStride)), // #nosec G404
			closeArrivals: c.ShutdownNotice,
		}

		g.Go(func() error {
			return s.Run(gctx)
		})
	}

	err := g.Wait()
	report := t.report(room.Peak())
	listener.OfficeEvent(Event{Type: Summary, Report: &report})
	if err != nil {
		logger.Warn("office run interrupted", zap.Error(err))
	} else {
		logger.Info("office run complete", zap.Int("sessions", report.Sessions), zap.Int("turnedAway", report.TurnedAway))
	}

	return report, err
}

// tallies is both a Listener and a set of adders, and gathers the counts for a Report.
type tallies struct {
	seated        tally
	sessions      tally
	polls         tally
	rejections    tally
	arrivalRaises tally
	readyRaises   tally
}

func (t *tallies) OfficeEvent(e Event) {
	switch e.Type {
	case Seated:
		t.seated.Add(1.0)
	case SessionFinished:
		t.sessions.Add(1.0)
	case Polled:
		t.polls.Add(1.0)
	}
}

func (t *tallies) report(peak int) Report {
	return Report{
		Attempts:      t.seated.Value() + t.rejections.Value(),
		Seated:        t.seated.Value(),
		TurnedAway:    t.rejections.Value(),
		Sessions:      t.sessions.Value(),
		ArrivalRaises: t.arrivalRaises.Value(),
		ReadyRaises:   t.readyRaises.Value(),
		Polls:         t.polls.Value(),
		PeakOccupancy: peak,
	}
}
