package reminder

import (
	"time"

	"household-hub/internal/model"
)

// maxOccurrenceSteps bounds the catch-up loop for long-overdue weekly reminders.
const maxOccurrenceSteps = 5000

// NextOccurrence returns the first occurrence of a recurring reminder that
// comes after its current date and is not before today. Monthly and yearly
// rules keep the anchor day, clamped to the length of the month.
func NextOccurrence(r model.Reminder, now time.Time) (time.Time, bool, error) {
	if !r.Recurrence.IsRecurring() {
		return time.Time{}, false, nil
	}
	start, err := ParseDate(r.ReminderDate, now.Location())
	if err != nil {
		return time.Time{}, false, &InvalidDateError{ReminderID: r.ID, Value: r.ReminderDate, Err: err}
	}
	today := DateOnly(now)
	anchor := r.RecurDay
	if anchor <= 0 {
		anchor = start.Day()
	}

	for k := 1; k <= maxOccurrenceSteps; k++ {
		var next time.Time
		switch r.Recurrence {
		case model.RecurWeekly:
			next = start.AddDate(0, 0, 7*k)
		case model.RecurMonthly:
			next = addMonthsClamped(start, k, anchor)
		case model.RecurYearly:
			next = addMonthsClamped(start, 12*k, anchor)
		}
		if !next.Before(today) {
			return next, true, nil
		}
	}
	return time.Time{}, false, nil
}

// Successor builds the active reminder that follows a completed recurring one.
func Successor(r model.Reminder, now time.Time) (model.Reminder, bool, error) {
	next, ok, err := NextOccurrence(r, now)
	if err != nil || !ok {
		return model.Reminder{}, false, err
	}
	anchor := r.RecurDay
	if anchor <= 0 {
		if start, perr := ParseDate(r.ReminderDate, now.Location()); perr == nil {
			anchor = start.Day()
		}
	}
	return model.Reminder{
		Title:        r.Title,
		Description:  r.Description,
		Domain:       r.Domain,
		ReminderDate: FormatDate(next),
		EntityType:   r.EntityType,
		EntityID:     r.EntityID,
		EntityName:   r.EntityName,
		SourceField:  r.SourceField,
		Priority:     r.Priority,
		Recurrence:   r.Recurrence,
		RecurDay:     anchor,
	}, true, nil
}

func addMonthsClamped(start time.Time, months, anchor int) time.Time {
	total := int(start.Month()) - 1 + months
	year := start.Year() + total/12
	month := time.Month(total%12 + 1)
	day := anchor
	if last := daysInMonth(month, year); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
