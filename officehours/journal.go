// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"fmt"

	"go.uber.org/zap"
)

const taTag = "[TA   ]"

func studentTag(id int) string {
	return fmt.Sprintf("[Stu%02d]", id)
}

// NewJournalListener renders events as the human-readable event log, one line per event.  Polled
// events are not rendered.  The journal logger is normally built with logging.NewJournal.
func NewJournalListener(journal *zap.Logger) Listener {
	if journal == nil {
		panic("A journal logger is required")
	}

	return ListenerFunc(func(e Event) {
		if line, ok := FormatEvent(e); ok {
			journal.Info(line)
		}
	})
}

// FormatEvent returns the journal line for an event, or false if the event is not journaled.
func FormatEvent(e Event) (string, bool) {
	switch e.Type {
	case Configured:
		if e.Config == nil {
			return "", false
		}

		return fmt.Sprintf("Config: students=%d, chairs=%d, requests_per_student=%d",
			e.Config.Students, e.Config.Chairs, e.Config.Requests), true

	case OfficeOpened:
		return taTag + " Office open. Napping until a student shows up.", true

	case Programming:
		return fmt.Sprintf("%s Programming for %d ms before asking for help (%d/%d).",
			studentTag(e.Student), e.Duration.Milliseconds(), e.Attempt, e.Attempts), true

	case Seated:
		return fmt.Sprintf("%s Took a chair (waiting=%d). Waking the TA if asleep.",
			studentTag(e.Student), e.Occupancy), true

	case TurnedAway:
		return fmt.Sprintf("%s Every chair is taken. Back to programming.", studentTag(e.Student)), true

	case Helped:
		return fmt.Sprintf("%s Getting help from the TA.", studentTag(e.Student)), true

	case StudentDone:
		return fmt.Sprintf("%s Done for the day.", studentTag(e.Student)), true

	case SessionStarted:
		return taTag + " Helping a student.", true

	case SessionFinished:
		return fmt.Sprintf("%s Finished helping after %d ms.", taTag, e.Duration.Milliseconds()), true

	case OfficeClosed:
		if e.Err != nil {
			return fmt.Sprintf("%s Interrupted (%s). Closing the office.", taTag, e.Err), true
		}

		return taTag + " Nobody is left and nobody is waiting. Closing the office.", true

	case Summary:
		if e.Report == nil {
			return "", false
		}

		r := e.Report
		return fmt.Sprintf("Summary: attempts=%d, seated=%d, turned_away=%d, sessions=%d, polls=%d, peak_waiting=%d",
			r.Attempts, r.Seated, r.TurnedAway, r.Sessions, r.Polls, r.PeakOccupancy), true

	default:
		return "", false
	}
}
