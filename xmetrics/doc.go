// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides configurability for Prometheus-based metrics.  The more general go-kit interfaces
are used where possible, so that instrumented code depends only on go-kit's metrics and provider packages
and can be handed discard or generic metrics in tests.
*/
package xmetrics
