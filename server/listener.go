// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"net"
	"sync"
	"syscall"

	"github.com/xmidt-org/officehours/waitingroom"
	"github.com/xmidt-org/officehours/xmetrics"
	"go.uber.org/zap"
)

// InstrumentListener returns a net.Listener which tracks the number of current connections.  If limit
// is not nil, each connection must also reserve a place in it, and a connection accepted while the limit
// is full is closed immediately.  Any errors during Accept or Close are logged via the supplied logger.
func InstrumentListener(logger *zap.Logger, active xmetrics.Adder, limit waitingroom.Interface, l net.Listener) net.Listener {
	return &instrumentedListener{
		Listener: l,
		logger:   logger,
		active:   active,
		limit:    limit,
	}
}

type instrumentedListener struct {
	net.Listener
	logger *zap.Logger
	active xmetrics.Adder
	limit  waitingroom.Interface
}

func (l *instrumentedListener) acquire() bool {
	if l.limit != nil && !l.limit.TryReserve() {
		return false
	}

	l.active.Add(1.0)
	return true
}

func (l *instrumentedListener) release() {
	l.active.Add(-1.0)
	if l.limit != nil {
		l.limit.Release()
	}
}

func (l *instrumentedListener) Accept() (net.Conn, error) {
	for {
		c, err := l.Listener.Accept()
		if err != nil {
			l.logger.Debug("unable to accept connection", zap.Error(err))
			if errors.Is(err, syscall.ENFILE) {
				return nil, syscall.EMFILE
			}

			return nil, err
		}

		if !l.acquire() {
			l.logger.Warn("rejected connection", zap.Stringer("remoteAddress", c.RemoteAddr()))
			c.Close()
			continue
		}

		return &instrumentedConn{Conn: c, release: l.release}, nil
	}
}

func (l *instrumentedListener) Close() error {
	err := l.Listener.Close()
	if err != nil {
		l.logger.Error("error while closing net.Listener", zap.Error(err))
	}

	return err
}

// instrumentedConn gives its place back to the listener exactly once, however often it is closed.
type instrumentedConn struct {
	net.Conn
	releaseOnce sync.Once
	release     func()
}

func (ic *instrumentedConn) Close() error {
	err := ic.Conn.Close()
	ic.releaseOnce.Do(ic.release)
	return err
}
