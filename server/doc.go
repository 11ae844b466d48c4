// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package server runs the optional HTTP endpoint that exposes the office's Prometheus metrics.

The endpoint is disabled unless an address is configured.  Connections are counted through an
instrumented net.Listener, and server errors are routed into the zap diagnostics logger.
*/
package server
