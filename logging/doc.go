// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package logging builds the zap loggers used by officehours.

Two loggers exist.  The diagnostics logger is configured through Options and carries leveled, structured
output for operators, by default to stderr.  The journal is the human-readable event log written one line
per event to stdout.
*/
package logging
