package reminder

import (
	"errors"
	"testing"
	"time"

	"household-hub/internal/model"
)

func dayOffset(days int) *time.Time {
	t := refNow.AddDate(0, 0, days)
	return &t
}

func vehicleSource(mot, tax *time.Time) Source {
	return Source{
		EntityType: model.EntityVehicle,
		EntityID:   "1",
		EntityName: "Ford Focus (AB12 CDE)",
		Domain:     model.DomainHousehold,
		Fields: []DateField{
			{Field: "mot_expiry", Label: "MOT", Date: mot},
			{Field: "tax_expiry", Label: "Road tax", Date: tax},
		},
	}
}

func TestGenerateTwiceYieldsOneReminder(t *testing.T) {
	sources := []Source{vehicleSource(dayOffset(10), nil)}

	first := Generate(sources, nil, refNow, 30)
	if len(first.Create) != 1 {
		t.Fatalf("first run creates %d, want 1", len(first.Create))
	}
	stored := first.Apply(nil)

	second := Generate(sources, stored, refNow, 30)
	if !second.Empty() {
		t.Fatalf("second run should write nothing: %+v", second)
	}
	stored = second.Apply(stored)
	if len(stored) != 1 {
		t.Fatalf("stored %d reminders, want 1", len(stored))
	}

	r := stored[0]
	if r.ReminderDate != "2024-03-20" || r.Title != "MOT due: Ford Focus (AB12 CDE)" {
		t.Fatalf("unexpected reminder: %+v", r)
	}
	if r.EntityType != model.EntityVehicle || r.EntityID != "1" || r.SourceField != "mot_expiry" {
		t.Fatalf("unexpected source reference: %+v", r)
	}
	if r.Priority != model.PriorityMedium {
		t.Fatalf("priority = %s", r.Priority)
	}
}

func TestGenerateWindowAndMissingDates(t *testing.T) {
	sources := []Source{
		vehicleSource(dayOffset(45), nil),
		{
			EntityType: model.EntityDocument, EntityID: "7", EntityName: "Passport", Domain: model.DomainHousehold,
			Fields: []DateField{{Field: "expiry_date", Label: "Expiry", Date: dayOffset(-3)}},
		},
		{
			EntityType: model.EntitySubscription, EntityID: "2", EntityName: "Netflix", Domain: model.DomainFinance,
			Fields: []DateField{{Field: "renewal_date", Label: "Renewal", Date: dayOffset(30)}},
		},
	}
	plan := Generate(sources, nil, refNow, 30)
	if len(plan.Create) != 2 {
		t.Fatalf("creates %d, want 2: %+v", len(plan.Create), plan.Create)
	}
	if plan.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2 (one out of window, one missing)", plan.Skipped)
	}
	if plan.Create[0].Priority != model.PriorityUrgent {
		t.Fatalf("overdue expiry priority = %s", plan.Create[0].Priority)
	}
	if plan.Create[1].Domain != model.DomainFinance {
		t.Fatalf("domain = %s", plan.Create[1].Domain)
	}
}

func TestGenerateUpdatesActiveReminder(t *testing.T) {
	stored := Generate([]Source{vehicleSource(dayOffset(5), nil)}, nil, refNow, 30).Apply(nil)
	stored[0].ID = "r1"

	// MOT renewed: the expiry moved out by a year.
	plan := Generate([]Source{vehicleSource(dayOffset(370), nil)}, stored, refNow, 30)
	if len(plan.Create) != 0 || len(plan.Update) != 1 {
		t.Fatalf("plan = %+v", plan)
	}
	if plan.Update[0].ID != "r1" || plan.Update[0].ReminderDate != "2025-03-15" {
		t.Fatalf("update = %+v", plan.Update[0])
	}
	after := plan.Apply(stored)
	if len(after) != 1 || after[0].ReminderDate != "2025-03-15" {
		t.Fatalf("after = %+v", after)
	}
	if stored[0].ReminderDate != "2024-03-15" {
		t.Fatal("Apply modified its input")
	}
}

func TestGenerateRespectsResolvedReminders(t *testing.T) {
	stored := Generate([]Source{vehicleSource(dayOffset(5), nil)}, nil, refNow, 30).Apply(nil)
	stored[0].IsCompleted = true

	plan := Generate([]Source{vehicleSource(dayOffset(5), nil)}, stored, refNow, 30)
	if !plan.Empty() {
		t.Fatalf("resolved reminder for the same date must not be recreated: %+v", plan)
	}

	plan = Generate([]Source{vehicleSource(dayOffset(20), nil)}, stored, refNow, 30)
	if len(plan.Create) != 1 {
		t.Fatalf("new expiry date should produce a reminder: %+v", plan)
	}
}

func TestGenerateDuplicateSources(t *testing.T) {
	src := vehicleSource(dayOffset(3), nil)
	plan := Generate([]Source{src, src}, nil, refNow, 30)
	if len(plan.Create) != 1 {
		t.Fatalf("creates %d, want 1", len(plan.Create))
	}
	if len(plan.Duplicates) != 1 {
		t.Fatalf("duplicates = %v", plan.Duplicates)
	}
	var dup *DuplicateGenerationError
	if !errors.As(plan.Duplicates[0], &dup) || dup.Key.Field != "mot_expiry" {
		t.Fatalf("duplicate error = %v", plan.Duplicates[0])
	}
}

func TestGenerateIgnoresUserReminders(t *testing.T) {
	existing := []model.Reminder{active("manual", "2024-03-20")}
	plan := Generate([]Source{vehicleSource(dayOffset(10), nil)}, existing, refNow, 30)
	if len(plan.Create) != 1 || len(plan.Update) != 0 {
		t.Fatalf("plan = %+v", plan)
	}
	if got := len(plan.Apply(existing)); got != 2 {
		t.Fatalf("applied set has %d reminders, want 2", got)
	}
}

func TestGenerateReadsDatesInNowLocation(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, london)
	// London midnight on the 20th is 23:00 UTC on the 19th.
	expiry := time.Date(2024, 6, 20, 0, 0, 0, 0, london).UTC()

	src := Source{
		EntityType: model.EntityDocument,
		EntityID:   "7",
		EntityName: "Passport",
		Domain:     model.DomainHousehold,
		Fields:     []DateField{{Field: "expiry_date", Label: "Expiry", Date: &expiry}},
	}
	plan := Generate([]Source{src}, nil, now, DefaultLookaheadDays)
	if len(plan.Create) != 1 {
		t.Fatalf("plan = %+v", plan)
	}
	if got := plan.Create[0].ReminderDate; got != "2024-06-20" {
		t.Fatalf("reminder_date = %s, want 2024-06-20", got)
	}

	days, err := DaysUntil(model.Reminder{ReminderDate: expiry.Format(time.RFC3339)}, now)
	if err != nil {
		t.Fatal(err)
	}
	if stored, _ := DaysUntil(plan.Create[0], now); stored != days {
		t.Fatalf("generated date is %d days out, the same instant classifies as %d", stored, days)
	}
}
