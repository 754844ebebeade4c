package reminder

import (
	"fmt"
	"time"

	"household-hub/internal/model"
)

// DefaultLookaheadDays is how far ahead an expiry starts producing a reminder.
const DefaultLookaheadDays = 30

// DateField is one expiry-like date of a source entity.
type DateField struct {
	Field string
	Label string
	Date  *time.Time
}

// Source is a household record that can produce reminders.
type Source struct {
	EntityType string
	EntityID   string
	EntityName string
	Domain     model.Domain
	Fields     []DateField
}

// Key identifies the reminder generated for one date field of one entity.
type Key struct {
	EntityType string
	EntityID   string
	Field      string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s#%s", k.EntityType, k.EntityID, k.Field)
}

// KeyOf returns the generation key of r; it is zero for user-created reminders.
func KeyOf(r model.Reminder) Key {
	if !r.IsGenerated() {
		return Key{}
	}
	return Key{EntityType: r.EntityType, EntityID: r.EntityID, Field: r.SourceField}
}

// Plan is the set of writes that brings stored reminders in line with the sources.
type Plan struct {
	Create     []model.Reminder
	Update     []model.Reminder
	Unchanged  int
	Skipped    int
	Duplicates []error
}

// Empty reports whether applying the plan would write nothing.
func (p Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0
}

type keyState struct {
	active   *model.Reminder
	resolved map[string]bool
}

// Generate plans one reminder per (entity, date field) whose date is already
// past or falls within lookaheadDays of now. Missing dates are skipped.
//
// Running Generate again over its own output plans no creations: an existing
// unresolved reminder for the same key is updated in place, and a resolved
// reminder for the same key and date suppresses a new one.
func Generate(sources []Source, existing []model.Reminder, now time.Time, lookaheadDays int) Plan {
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}
	today := DateOnly(now)

	index := make(map[Key]*keyState)
	for i := range existing {
		r := existing[i]
		key := KeyOf(r)
		if key == (Key{}) {
			continue
		}
		st := index[key]
		if st == nil {
			st = &keyState{resolved: make(map[string]bool)}
			index[key] = st
		}
		if r.IsResolved() {
			st.resolved[r.ReminderDate] = true
			continue
		}
		if st.active == nil {
			st.active = &r
		}
	}

	var plan Plan
	seen := make(map[Key]bool)

	for _, src := range sources {
		for _, field := range src.Fields {
			if field.Date == nil || field.Date.IsZero() {
				plan.Skipped++
				continue
			}
			key := Key{EntityType: src.EntityType, EntityID: src.EntityID, Field: field.Field}
			if seen[key] {
				plan.Duplicates = append(plan.Duplicates, &DuplicateGenerationError{Key: key})
				continue
			}
			seen[key] = true

			due := DateOnly(field.Date.In(now.Location()))
			days := daysBetween(today, due)
			desired := model.Reminder{
				Title:        fmt.Sprintf("%s due: %s", field.Label, src.EntityName),
				Domain:       src.Domain,
				ReminderDate: FormatDate(due),
				EntityType:   src.EntityType,
				EntityID:     src.EntityID,
				EntityName:   src.EntityName,
				SourceField:  field.Field,
				Priority:     generatedPriority(days),
				Recurrence:   model.RecurNone,
			}

			st := index[key]
			if st != nil && st.active != nil {
				if updated, changed := merge(*st.active, desired); changed {
					plan.Update = append(plan.Update, updated)
				} else {
					plan.Unchanged++
				}
				continue
			}
			if days > lookaheadDays {
				plan.Skipped++
				continue
			}
			if st != nil && st.resolved[desired.ReminderDate] {
				plan.Skipped++
				continue
			}
			plan.Create = append(plan.Create, desired)
		}
	}

	return plan
}

// Apply returns existing with the plan's updates and creations applied. It
// does not modify existing.
func (p Plan) Apply(existing []model.Reminder) []model.Reminder {
	updates := make(map[Key]model.Reminder, len(p.Update))
	for _, u := range p.Update {
		updates[KeyOf(u)] = u
	}
	out := make([]model.Reminder, 0, len(existing)+len(p.Create))
	for _, r := range existing {
		if u, ok := updates[KeyOf(r)]; ok && !r.IsResolved() && r.ID == u.ID {
			r = u
		}
		out = append(out, r)
	}
	return append(out, p.Create...)
}

func merge(current, desired model.Reminder) (model.Reminder, bool) {
	changed := current.ReminderDate != desired.ReminderDate ||
		current.Title != desired.Title ||
		current.EntityName != desired.EntityName ||
		current.Priority != desired.Priority ||
		current.Domain != desired.Domain
	if !changed {
		return current, false
	}
	current.ReminderDate = desired.ReminderDate
	current.Title = desired.Title
	current.EntityName = desired.EntityName
	current.Priority = desired.Priority
	current.Domain = desired.Domain
	return current, true
}

func generatedPriority(days int) model.Priority {
	switch {
	case days < 0:
		return model.PriorityUrgent
	case days <= DefaultWindowDays:
		return model.PriorityHigh
	default:
		return model.PriorityMedium
	}
}
