// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/officehours/logging"
	"github.com/xmidt-org/officehours/officehours"
	"github.com/xmidt-org/officehours/xviper"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	applicationName = "officehours"

	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(xviper.DefaultFileFlag, "f", "", "the configuration file to use instead of searching for "+applicationName+".yaml")
	fs.IntP("students", "s", officehours.DefaultStudents, "the number of students")
	fs.IntP("chairs", "c", officehours.DefaultChairs, "the number of chairs in the waiting room")
	fs.IntP("requests", "r", officehours.DefaultRequests, "the number of times each student asks for help")
	fs.Duration("work-min", officehours.DefaultWorkTime.Min, "the shortest time a student programs before asking for help")
	fs.Duration("work-max", officehours.DefaultWorkTime.Max, "the longest time a student programs before asking for help")
	fs.Duration("help-min", officehours.DefaultHelpTime.Min, "the shortest help session")
	fs.Duration("help-max", officehours.DefaultHelpTime.Max, "the longest help session")
	fs.Duration("poll", officehours.DefaultPollInterval, "how long the TA naps before checking whether the office can close")
	fs.Int64("seed", 0, "the random seed, or 0 for a time-based seed")
	fs.Bool("shutdown-notice", true, "wake the TA as soon as the last student goes home")
	fs.String("log-level", logging.DefaultLevel, "the diagnostics log level")
	fs.String("log-file", logging.StderrFile, "the diagnostics log file, stdout, or stderr")
	fs.String("metrics-address", "", "the address on which to serve Prometheus metrics; empty disables the endpoint")
	return fs
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	return xviper.New(
		xviper.SetDefaults(officehours.Defaults()),
		xviper.StdOptions(applicationName, fs),
		xviper.BindPFlag("pollInterval", fs, "poll"),
		xviper.BindPFlag("shutdownNotice", fs, "shutdown-notice"),
		xviper.BindPFlag("log.level", fs, "log-level"),
		xviper.BindPFlag("log.file", fs, "log-file"),
		xviper.BindPFlag("metrics.address", fs, "metrics-address"),
		xviper.SetChangedPFlag("workTime.min", fs, "work-min"),
		xviper.SetChangedPFlag("workTime.max", fs, "work-max"),
		xviper.SetChangedPFlag("helpTime.min", fs, "help-min"),
		xviper.SetChangedPFlag("helpTime.max", fs, "help-max"),
	)
}

// run executes one office hours session and returns the process exit code.  The journal is written
// to stdout, and problems that occur before the diagnostics logger exists are written to stderr.
func run(ctx context.Context, arguments []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	if err := fs.Parse(arguments); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		return exitError
	}

	v, err := newViper(fs)
	if err == nil {
		err = xviper.ReadInConfig(v)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Unable to read configuration: %s\n", err)
		return exitError
	}

	var (
		office *officehours.Office
		logger *zap.Logger
	)

	app := fx.New(
		fx.Supply(v),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		provide(stdout),
		fx.Populate(&office, &logger),
	)

	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "Unable to start %s: %s\n", applicationName, err)
		return exitError
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		if ctx.Err() != nil {
			return exitInterrupted
		}

		logger.Error("unable to start", zap.Error(err))
		return exitError
	}

	_, runErr := office.Run(sallust.With(ctx, logger))

	// the run context may already be canceled, so shutdown gets its own
	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("unable to stop cleanly", zap.Error(err))
	}

	switch {
	case errors.Is(runErr, context.Canceled):
		return exitInterrupted
	case runErr != nil:
		logger.Error("office hours failed", zap.Error(runErr))
		return exitError
	default:
		return exitOK
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
