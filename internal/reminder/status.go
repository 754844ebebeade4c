package reminder

import (
	"time"

	"household-hub/internal/model"
)

// Status is the display bucket of a reminder.
type Status string

const (
	StatusOverdue   Status = "overdue"
	StatusDueToday  Status = "due_today"
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusDismissed Status = "dismissed"
)

// Statuses lists every status; the five buckets partition any reminder set.
var Statuses = []Status{StatusOverdue, StatusDueToday, StatusUpcoming, StatusCompleted, StatusDismissed}

// Active reports whether s is one of the unresolved buckets.
func (s Status) Active() bool {
	return s == StatusOverdue || s == StatusDueToday || s == StatusUpcoming
}

// Rank orders the active buckets overdue < due_today < upcoming. Resolved
// statuses rank after all active ones.
func (s Status) Rank() int {
	switch s {
	case StatusOverdue:
		return 0
	case StatusDueToday:
		return 1
	case StatusUpcoming:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 4
	}
}

// ParseStatus returns the status named by v.
func ParseStatus(v string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

// DaysUntil returns the number of calendar days from now to the reminder
// date. Negative values mean the date has passed.
func DaysUntil(r model.Reminder, now time.Time) (int, error) {
	due, err := ParseDate(r.ReminderDate, now.Location())
	if err != nil {
		return 0, &InvalidDateError{ReminderID: r.ID, Value: r.ReminderDate, Err: err}
	}
	return daysBetween(DateOnly(now), due), nil
}

// Classify buckets a reminder relative to now. Completion wins over
// dismissal when both flags are set; neither consults the date.
func Classify(r model.Reminder, now time.Time) (Status, error) {
	status, _, err := classify(r, now)
	return status, err
}

func classify(r model.Reminder, now time.Time) (Status, int, error) {
	if r.IsCompleted {
		return StatusCompleted, 0, nil
	}
	if r.IsDismissed {
		return StatusDismissed, 0, nil
	}
	days, err := DaysUntil(r, now)
	if err != nil {
		return "", 0, err
	}
	switch {
	case days < 0:
		return StatusOverdue, days, nil
	case days == 0:
		return StatusDueToday, days, nil
	default:
		return StatusUpcoming, days, nil
	}
}

// Classified is a reminder together with its derived fields.
type Classified struct {
	model.Reminder
	Status    Status `json:"status"`
	DaysUntil int    `json:"days_until"`
	IsOverdue bool   `json:"is_overdue"`
	Style     Style  `json:"style"`
}

// Annotate classifies r and attaches the display style of its domain.
// DaysUntil is still reported for resolved reminders when the date parses.
func Annotate(r model.Reminder, now time.Time) (Classified, error) {
	status, days, err := classify(r, now)
	if err != nil {
		return Classified{}, err
	}
	if !status.Active() {
		if d, derr := DaysUntil(r, now); derr == nil {
			days = d
		}
	}
	return Classified{
		Reminder:  r,
		Status:    status,
		DaysUntil: days,
		IsOverdue: status == StatusOverdue,
		Style:     StyleFor(r.Domain),
	}, nil
}
