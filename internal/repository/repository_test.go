package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"household-hub/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "hub.db"), Options{LogLevel: "silent"})
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { sqlDB.Close() })
	}
	return db
}

func TestReminderTerminalTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(newTestDB(t))

	r := &model.Reminder{Title: "Descale kettle", Domain: model.DomainHousehold, ReminderDate: "2024-03-10"}
	if err := repo.Create(ctx, r); err != nil {
		t.Fatal(err)
	}
	if r.ID == "" {
		t.Fatal("expected an assigned ID")
	}

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	done, err := repo.MarkCompleted(ctx, r.ID, at)
	if err != nil {
		t.Fatal(err)
	}
	if !done.IsCompleted || done.CompletedAt == nil {
		t.Fatalf("not completed: %+v", done)
	}

	if _, err := repo.MarkCompleted(ctx, r.ID, at); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("second completion error = %v", err)
	}
	if _, err := repo.MarkDismissed(ctx, r.ID, at); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("dismiss after completion error = %v", err)
	}
	if _, err := repo.MarkDismissed(ctx, "missing", at); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing reminder error = %v", err)
	}

	stored, err := repo.FindByID(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.IsDismissed {
		t.Fatal("completed reminder must not become dismissed")
	}
}

func TestReminderListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(newTestDB(t))

	for _, r := range []model.Reminder{
		{Title: "b", Domain: model.DomainFinance, ReminderDate: "2024-03-12"},
		{Title: "a", Domain: model.DomainPlants, ReminderDate: "2024-03-11"},
		{Title: "c", Domain: model.DomainFinance, ReminderDate: "2024-03-13", IsDismissed: true},
	} {
		r := r
		if err := repo.Create(ctx, &r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List(ctx, ReminderFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Title != "a" || all[1].Title != "b" {
		t.Fatalf("active list = %+v", all)
	}

	finance, err := repo.List(ctx, ReminderFilter{Domain: model.DomainFinance, IncludeResolved: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(finance) != 2 {
		t.Fatalf("finance list has %d reminders, want 2", len(finance))
	}
}

func TestApplyGeneratedSkipsResolved(t *testing.T) {
	ctx := context.Background()
	repo := NewReminderRepository(newTestDB(t))

	creates := []model.Reminder{{
		Title: "MOT due: Van", Domain: model.DomainHousehold, ReminderDate: "2024-03-20",
		EntityType: model.EntityVehicle, EntityID: "1", SourceField: "mot_expiry",
	}}
	if err := repo.ApplyGenerated(ctx, creates, nil); err != nil {
		t.Fatal(err)
	}
	generated, err := repo.ListGenerated(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(generated) != 1 || generated[0].ID == "" {
		t.Fatalf("generated = %+v", generated)
	}

	id := generated[0].ID
	if _, err := repo.MarkDismissed(ctx, id, time.Now()); err != nil {
		t.Fatal(err)
	}
	update := generated[0]
	update.ReminderDate = "2025-03-20"
	if err := repo.ApplyGenerated(ctx, nil, []model.Reminder{update}); err != nil {
		t.Fatal(err)
	}
	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ReminderDate != "2024-03-20" {
		t.Fatalf("dismissed reminder was rewritten: %+v", stored)
	}
}

func TestAssetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository[model.Vehicle](newTestDB(t), "vehicle")

	mot := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	v := &model.Vehicle{Registration: "AB12CDE", Make: "Ford", Model: "Focus", MOTExpiry: &mot}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatal(err)
	}
	got, err := repo.FindByID(ctx, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.MOTExpiry == nil || !got.MOTExpiry.Equal(mot) {
		t.Fatalf("mot expiry = %v", got.MOTExpiry)
	}

	update := &model.Vehicle{ID: v.ID, Registration: "AB12CDE", Make: "Ford", Model: "Fiesta"}
	if err := repo.Update(ctx, v.ID, update); err != nil {
		t.Fatal(err)
	}
	got, err = repo.FindByID(ctx, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Model != "Fiesta" || got.MOTExpiry != nil {
		t.Fatalf("after update = %+v", got)
	}
	if !got.CreatedAt.Equal(v.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", v.CreatedAt, got.CreatedAt)
	}
	if err := repo.Update(ctx, 999, &model.Vehicle{ID: 999, Registration: "ZZ"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("update missing error = %v", err)
	}

	if err := repo.Delete(ctx, v.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, v.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete error = %v", err)
	}
}

func TestPreferencesUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferencesRepository(newTestDB(t))

	if _, err := repo.Load(ctx, "default"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("load before save error = %v", err)
	}

	prefs := &model.UserPreferences{Profile: "default", ModuleOrder: []string{"finance", "calendar"}, EnabledModules: []string{"finance"}}
	if err := repo.Save(ctx, prefs); err != nil {
		t.Fatal(err)
	}
	prefs.ModuleOrder = []string{"calendar", "finance"}
	if err := repo.Save(ctx, prefs); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(ctx, "default")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ModuleOrder) != 2 || got.ModuleOrder[0] != "calendar" {
		t.Fatalf("module order = %v", got.ModuleOrder)
	}
}

func TestFilteringLoggerIgnoresPatterns(t *testing.T) {
	l := NewFilteringLogger(nil, "FROM `reminders` WHERE", "")
	if !l.shouldIgnore("SELECT * FROM `reminders` WHERE is_completed = false") {
		t.Fatal("expected the polling query to be ignored")
	}
	if l.shouldIgnore("INSERT INTO `reminders`") {
		t.Fatal("unexpected ignore")
	}
}
