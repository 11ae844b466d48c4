// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the diagnostics logger from a set of options.  The options object can be nil,
// in which case a console logger at DefaultLevel that writes to os.Stderr is returned.
func New(o *Options) (*zap.Logger, error) {
	level, err := o.level()
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	core := zapcore.NewCore(o.encoder(), o.output(), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel)), nil
}

// NewJournal creates the event journal: an info-level logger that writes only the message of each
// entry, one per line, to the given writer.  Writes are serialized, so lines from concurrent
// goroutines never interleave.
func NewJournal(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})

	return zap.New(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zapcore.InfoLevel),
	)
}
