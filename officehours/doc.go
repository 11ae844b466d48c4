// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package officehours simulates a teaching assistant's office hours.

A fixed number of students alternate between programming and seeking help.  A student who finds a free
chair in the waiting room sits down, wakes the TA and waits to be called in.  A student who finds every
chair taken leaves and goes back to programming; that request is simply lost.  The single TA naps until a
student arrives, calls in exactly one waiting student per session, and closes the office once every
student has gone home and nobody is left waiting.

The TA notices that the office can close in one of two ways.  It wakes up on a fixed poll interval and
checks the number of students still active along with the waiting room occupancy.  When the shutdown
notice is enabled, which is the default, the last student to go home also closes the arrival signal, so
the TA wakes immediately instead of waiting out the poll interval.

Every state change is reported as an Event to the configured Listeners.  The journal listener renders
events as the human-readable log on stdout; the metrics listener feeds Prometheus.
*/
package officehours
