// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"time"
)

// EventType identifies what happened in the office.
type EventType int

const (
	// Configured is sent once, before any worker starts, and carries the Config.
	Configured EventType = iota

	// OfficeOpened is the first event the TA sends.
	OfficeOpened

	// Programming is sent when a student starts the work interval preceding an attempt.
	Programming

	// Seated is sent after a student's reservation of a chair has succeeded.
	Seated

	// TurnedAway is sent when a student finds every chair taken.  That attempt is over.
	TurnedAway

	// Helped is sent when a seated student has been called in by the TA.
	Helped

	// StudentDone is sent after a student has made every attempt and left the active count.
	StudentDone

	// SessionStarted is sent when the TA calls in a waiting student.
	SessionStarted

	// SessionFinished is sent when the TA is done helping a student.
	SessionFinished

	// Polled is sent each time the TA wakes without an arrival and checks whether it may close.
	Polled

	// OfficeClosed is the last event the TA ever sends.
	OfficeClosed

	// Summary is sent once, after every worker has exited, and carries the Report.
	Summary
)

var eventTypeNames = [...]string{
	Configured:      "configured",
	OfficeOpened:    "office_opened",
	Programming:     "programming",
	Seated:          "seated",
	TurnedAway:      "turned_away",
	Helped:          "helped",
	StudentDone:     "student_done",
	SessionStarted:  "session_started",
	SessionFinished: "session_finished",
	Polled:          "polled",
	OfficeClosed:    "office_closed",
	Summary:         "summary",
}

func (et EventType) String() string {
	if et >= 0 && int(et) < len(eventTypeNames) {
		return eventTypeNames[et]
	}

	return "unknown"
}

// Event describes a single state change.  Fields that do not apply to the Type are left zero.
type Event struct {
	Type EventType

	// Student is the 1-based student id.  It is zero for TA and office events.
	Student int

	// Attempt is the 1-based attempt index, and Attempts the student's total.
	Attempt  int
	Attempts int

	// Occupancy is a snapshot of the waiting room, for Seated, SessionStarted, Polled and OfficeClosed.
	Occupancy int

	// Active is the number of students still active, for StudentDone, Polled and OfficeClosed.
	Active int

	// Duration is the simulated work interval for Programming and the help interval for SessionFinished.
	Duration time.Duration

	// Session identifies a TA help session.
	Session string

	// Err is set on OfficeClosed when the run was interrupted.
	Err error

	Config *Config
	Report *Report
}

// Listener receives office events.  Listeners are invoked synchronously from the worker that
// produced the event, so implementations must be safe for concurrent use and should not block.
type Listener interface {
	OfficeEvent(Event)
}

type ListenerFunc func(Event)

func (lf ListenerFunc) OfficeEvent(e Event) {
	lf(e)
}

type Listeners []Listener

func (ls Listeners) OfficeEvent(e Event) {
	for _, v := range ls {
		v.OfficeEvent(e)
	}
}
