package reminder

import "fmt"

// InvalidDateError reports a reminder whose date could not be parsed.
type InvalidDateError struct {
	ReminderID string
	Value      string
	Err        error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("reminder %s: invalid reminder_date %q: %v", e.ReminderID, e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// DuplicateGenerationError is raised inside Generate when two sources map to
// the same reminder key. It is resolved by keeping the first occurrence.
type DuplicateGenerationError struct {
	Key Key
}

func (e *DuplicateGenerationError) Error() string {
	return fmt.Sprintf("duplicate generation for %s", e.Key)
}
