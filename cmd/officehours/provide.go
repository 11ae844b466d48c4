// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/go-kit/kit/metrics/provider"
	"github.com/spf13/viper"
	"github.com/xmidt-org/officehours/logging"
	"github.com/xmidt-org/officehours/officehours"
	"github.com/xmidt-org/officehours/server"
	"github.com/xmidt-org/officehours/xmetrics"
	"github.com/xmidt-org/officehours/xviper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// PrometheusKey is the viper key for the xmetrics.Options.
const PrometheusKey = "prometheus"

func provideLogger(v *viper.Viper) (*zap.Logger, error) {
	o, err := logging.FromViper(v)
	if err != nil {
		return nil, err
	}

	return logging.New(o)
}

func provideRegistry(v *viper.Viper) (xmetrics.Registry, error) {
	var root struct {
		Prometheus xmetrics.Options `mapstructure:"prometheus"`
	}

	if err := xviper.Unmarshal(v, &root); err != nil {
		return nil, err
	}

	root.Prometheus.Metrics = append(officehours.Metrics(), server.Metrics()...)
	return xmetrics.NewRegistry(&root.Prometheus)
}

// metricsServerIn is the set of dependencies for the metrics endpoint.
type metricsServerIn struct {
	fx.In

	Viper     *viper.Viper
	Logger    *zap.Logger
	Registry  xmetrics.Registry
	Lifecycle fx.Lifecycle
}

// provideMetricsServer creates the metrics endpoint and binds it to the application lifecycle.  An
// endpoint without an address is never started.
func provideMetricsServer(in metricsServerIn) (*server.Server, error) {
	o, err := server.FromViper(in.Viper)
	if err != nil {
		return nil, err
	}

	s := server.New(o, in.Logger, in.Registry, server.NewMeasures(in.Registry))
	if o.Enabled() {
		in.Lifecycle.Append(fx.Hook{
			OnStart: s.Start,
			OnStop:  s.Stop,
		})
	}

	return s, nil
}

// provide assembles the application's components.  The journal is written to stdout.
func provide(stdout io.Writer) fx.Option {
	return fx.Options(
		fx.Provide(
			provideLogger,
			provideRegistry,
			func(r xmetrics.Registry) provider.Provider {
				return r
			},
			provideMetricsServer,
		),
		officehours.Provide(),
		officehours.ProvideListener(func() officehours.Listener {
			return officehours.NewJournalListener(logging.NewJournal(stdout))
		}),
		fx.Invoke(func(*server.Server) {}),
	)
}
