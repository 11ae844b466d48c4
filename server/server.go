// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/officehours/waitingroom"
	"github.com/xmidt-org/officehours/xmetrics"
	"go.uber.org/zap"
)

var (
	ErrDisabled       = errors.New("the metrics server has no address")
	ErrAlreadyStarted = errors.New("the metrics server has already been started")
)

// NewMetricsHandler produces the router for the metrics endpoint.  Only GET is routed.
func NewMetricsHandler(path string, g prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Handle(
		path,
		promhttp.HandlerFor(g, promhttp.HandlerOpts{
			ErrorLog:      zap.NewStdLog(logger),
			ErrorHandling: promhttp.ContinueOnError,
		}),
	).Methods(http.MethodGet)

	return r
}

// Server is the metrics HTTP server.  It may be started at most once.
type Server struct {
	options *Options
	logger  *zap.Logger
	handler http.Handler
	active  xmetrics.Adder
	limit   waitingroom.Interface

	lock     sync.Mutex
	listener net.Listener
	server   *http.Server
	done     chan struct{}
}

// New creates the metrics server.  If the options set MaxConnections, connections beyond that number
// are closed as soon as they are accepted.
func New(o *Options, logger *zap.Logger, g prometheus.Gatherer, m Measures) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	if m.ActiveConnections == nil {
		m.ActiveConnections = discard.NewGauge()
	}

	logger = logger.With(zap.String("server", o.name()))
	s := &Server{
		options: o,
		logger:  logger,
		handler: NewMetricsHandler(o.path(), g, logger),
		active:  m.ActiveConnections,
	}

	if o != nil && o.MaxConnections > 0 {
		s.limit = waitingroom.New(o.MaxConnections, waitingroom.WithRejections(m.RejectedConnections))
	}

	return s
}

// Start binds the configured address and serves in a separate goroutine.  It returns ErrDisabled
// if no address is configured.
func (s *Server) Start(context.Context) error {
	if !s.options.Enabled() {
		return ErrDisabled
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.server != nil {
		return ErrAlreadyStarted
	}

	l, err := net.Listen("tcp", s.options.Address)
	if err != nil {
		return err
	}

	s.listener = InstrumentListener(s.logger, s.active, s.limit, l)
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.options.readHeaderTimeout(),
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	s.done = make(chan struct{})
	s.logger.Info("starting metrics server", zap.Stringer("address", l.Addr()))
	go func(server *http.Server, l net.Listener, done chan struct{}) {
		defer close(done)
		if err := server.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server exited", zap.Error(err))
		}
	}(s.server, s.listener, s.done)

	return nil
}

// Address returns the bound address, or nil if the server is not running.
func (s *Server) Address() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Stop gracefully shuts down the server.  Stopping a server that was never started is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.lock.Lock()
	server, done := s.server, s.done
	s.lock.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.shutdownTimeout())
	defer cancel()

	err := server.Shutdown(ctx)
	<-done
	s.logger.Info("metrics server stopped", zap.Error(err))
	return err
}
