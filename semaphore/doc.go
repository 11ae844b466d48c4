// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a channel-based counting signal that optionally honors context semantics.

A signal starts at zero.  Raise adds one to the count without blocking, and each raise is observed by
exactly one lower.  Lower blocks until the count is positive, optionally bounded by a timer channel or a
context.  The office uses two signals: one that students raise when they sit down, which wakes the TA,
and one the TA raises to admit exactly one waiting student.

A signal may be closed.  Closing announces that no further raises will happen, so goroutines blocked in
a lower are released with ErrClosed once every outstanding raise has been consumed.
*/
package semaphore
