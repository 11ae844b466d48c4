// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	StdoutFile = "stdout"
	StderrFile = "stderr"

	DefaultLevel = "error"
)

// Options stores the configuration of a diagnostics Logger.  Lumberjack is used for rolling files.
type Options struct {
	// File is the system file path for the log file.  If set to "stdout" or "stderr", this will log to
	// the corresponding stream.  The empty string is equivalent to "stderr".  Otherwise, a lumberjack.Logger is created
	File string `mapstructure:"file"`

	// MaxSize is the lumberjack MaxSize
	MaxSize int `mapstructure:"maxsize"`

	// MaxAge is the lumberjack MaxAge
	MaxAge int `mapstructure:"maxage"`

	// MaxBackups is the lumberjack MaxBackups
	MaxBackups int `mapstructure:"maxbackups"`

	// JSON is a flag indicating whether JSON logging output is used.  The default is false,
	// meaning that console output is used.
	JSON bool `mapstructure:"json"`

	// Level is the level to output: ERROR, WARN, INFO, or DEBUG.  The empty string is equivalent to
	// DefaultLevel.  Any other unrecognized string is an error.
	Level string `mapstructure:"level"`
}

func (o *Options) output() zapcore.WriteSyncer {
	file := ""
	if o != nil {
		file = o.File
	}

	switch file {
	case StdoutFile:
		return zapcore.Lock(os.Stdout)

	case StderrFile, "":
		return zapcore.Lock(os.Stderr)

	default:
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSize,
			MaxAge:     o.MaxAge,
			MaxBackups: o.MaxBackups,
		})
	}
}

func (o *Options) encoder() zapcore.Encoder {
	config := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if o != nil && o.JSON {
		config.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(config)
	}

	config.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(config)
}

func (o *Options) level() (zapcore.Level, error) {
	text := DefaultLevel
	if o != nil && len(o.Level) > 0 {
		text = o.Level
	}

	return zapcore.ParseLevel(strings.ToLower(text))
}
