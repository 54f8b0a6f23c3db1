package model

import (
	"time"

	"buddyremind/internal/apperr"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	FreqDaily   = "daily"
	FreqWeekly  = "weekly"
	FreqMonthly = "monthly"
	FreqCustom  = "custom"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCompleted = "completed"
	ActionSnoozed   = "snoozed"
	ActionReopened  = "reopened"
)

const (
	ResponseCompleted = "completed"
	ResponseSnoozed   = "snoozed"
	ResponseDismissed = "dismissed"
)

// Snooze duration tokens accepted by the snooze endpoint.
const (
	Snooze15Min    = "15min"
	Snooze1Hour    = "1hour"
	Snooze3Hours   = "3hours"
	SnoozeTomorrow = "tomorrow"
	SnoozeNextWeek = "nextweek"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Validate checks the field constraints enforced on create and update.
// Custom recurrence patterns are not supported and are rejected here rather
// than silently repeating never.
func (r *Reminder) Validate() error {
	if r.Title == "" {
		return apperr.Validation("please add a title")
	}
	if len(r.Title) > 100 {
		return apperr.Validation("title cannot be more than 100 characters")
	}
	if len(r.Description) > 500 {
		return apperr.Validation("description cannot be more than 500 characters")
	}
	if r.DueDate.IsZero() {
		return apperr.Validation("please add a due date")
	}
	if r.Priority != "" && !ValidPriority(r.Priority) {
		return apperr.Validation("invalid priority %q", r.Priority)
	}
	rec := r.Recurring.Data()
	if rec.Enabled {
		switch rec.Frequency {
		case FreqDaily, FreqWeekly, FreqMonthly:
		case FreqCustom:
			return apperr.Validation("custom recurrence patterns are not supported")
		default:
			return apperr.Validation("invalid recurrence frequency %q", rec.Frequency)
		}
	}
	return nil
}

// IsOverdue reports whether the reminder is past due and still open.
func (r *Reminder) IsOverdue(now time.Time) bool {
	return !r.Completed && r.DueDate.Before(now)
}

// NextOccurrence projects the next due date of a recurring reminder.
// Returns ok=false when recurrence is disabled or the projection lands
// past the recurrence end date. Day-of-month overflow clamps to the last
// day of the target month, so a monthly reminder due Jan 31 lands on
// Feb 29 in a leap year.
func (r *Reminder) NextOccurrence() (time.Time, bool, error) {
	rec := r.Recurring.Data()
	if !rec.Enabled {
		return time.Time{}, false, nil
	}

	var next time.Time
	switch rec.Frequency {
	case FreqDaily:
		next = r.DueDate.AddDate(0, 0, 1)
	case FreqWeekly:
		next = r.DueDate.AddDate(0, 0, 7)
	case FreqMonthly:
		next = addMonthClamped(r.DueDate)
	case FreqCustom:
		return time.Time{}, false, apperr.Validation("custom recurrence patterns are not supported")
	default:
		return time.Time{}, false, apperr.Validation("invalid recurrence frequency %q", rec.Frequency)
	}

	if rec.EndDate != nil && next.After(*rec.EndDate) {
		return time.Time{}, false, nil
	}
	return next, true, nil
}

// SnoozeUntil resolves a snooze duration token against now. The fixed-hour
// tokens (tomorrow, nextweek) always land at exactly 09:00:00.000.
func SnoozeUntil(duration string, now time.Time) (time.Time, error) {
	switch duration {
	case Snooze15Min:
		return now.Add(15 * time.Minute), nil
	case Snooze1Hour:
		return now.Add(1 * time.Hour), nil
	case Snooze3Hours:
		return now.Add(3 * time.Hour), nil
	case SnoozeTomorrow:
		return atNine(now.AddDate(0, 0, 1)), nil
	case SnoozeNextWeek:
		return atNine(now.AddDate(0, 0, 7)), nil
	case "":
		return time.Time{}, apperr.Validation("please provide a snooze duration")
	default:
		return time.Time{}, apperr.Validation("invalid snooze duration %q", duration)
	}
}

func (r *Reminder) AppendHistory(action, detail string, at time.Time) {
	r.History = append(r.History, HistoryEntry{Action: action, At: at, Detail: detail})
}

func (r *Reminder) AppendResponse(kind, note string, at time.Time) {
	r.Responses = append(r.Responses, UserResponse{Kind: kind, At: at, Note: note})
}

func atNine(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 9, 0, 0, 0, t.Location())
}

func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
