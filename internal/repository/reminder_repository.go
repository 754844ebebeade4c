package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"household-hub/internal/model"
)

// ErrAlreadyResolved is returned when a completed or dismissed reminder is
// asked to transition again.
var ErrAlreadyResolved = errors.New("reminder already resolved")

// ReminderFilter narrows List. Zero values match everything.
type ReminderFilter struct {
	Domain          model.Domain
	EntityType      string
	IncludeResolved bool
}

// ReminderRepository handles persistence of reminders.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Transaction runs fn against a repository bound to a single transaction.
func (r *ReminderRepository) Transaction(ctx context.Context, fn func(tx *ReminderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReminderRepository{db: tx})
	})
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id string) (*model.Reminder, error) {
	var reminder model.Reminder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error; err != nil {
		return nil, fmt.Errorf("find reminder %s: %w", id, err)
	}
	return &reminder, nil
}

// List returns reminders ordered by date, active ones only unless asked otherwise.
func (r *ReminderRepository) List(ctx context.Context, filter ReminderFilter) ([]model.Reminder, error) {
	query := r.db.WithContext(ctx).Model(&model.Reminder{})
	if !filter.IncludeResolved {
		query = query.Where("is_completed = ? AND is_dismissed = ?", false, false)
	}
	if filter.Domain != "" {
		query = query.Where("domain = ?", filter.Domain)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var reminders []model.Reminder
	if err := query.Order("reminder_date ASC, created_at ASC").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// ListGenerated returns every reminder that was synthesised from a source
// entity, resolved or not.
func (r *ReminderRepository) ListGenerated(ctx context.Context) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("entity_type <> '' AND entity_id <> '' AND source_field <> ''").
		Order("created_at ASC").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list generated reminders: %w", err)
	}
	return reminders, nil
}

func (r *ReminderRepository) MarkCompleted(ctx context.Context, id string, at time.Time) (*model.Reminder, error) {
	return r.resolve(ctx, id, "is_completed", "completed_at", at)
}

func (r *ReminderRepository) MarkDismissed(ctx context.Context, id string, at time.Time) (*model.Reminder, error) {
	return r.resolve(ctx, id, "is_dismissed", "dismissed_at", at)
}

// resolve flips one terminal flag, but only while both are still unset.
func (r *ReminderRepository) resolve(ctx context.Context, id, flag, stamp string, at time.Time) (*model.Reminder, error) {
	res := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ? AND is_completed = ? AND is_dismissed = ?", id, false, false).
		Updates(map[string]interface{}{flag: true, stamp: at})
	if res.Error != nil {
		return nil, fmt.Errorf("resolve reminder %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("reminder %s: %w", id, ErrAlreadyResolved)
	}
	return r.FindByID(ctx, id)
}

// ApplyGenerated inserts new generated reminders and rewrites updated ones
// in one transaction. Updates only touch reminders that are still active.
func (r *ReminderRepository) ApplyGenerated(ctx context.Context, creates, updates []model.Reminder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range creates {
			if err := tx.Create(&creates[i]).Error; err != nil {
				return fmt.Errorf("create generated reminder: %w", err)
			}
		}
		for _, u := range updates {
			if err := tx.Model(&model.Reminder{}).
				Where("id = ? AND is_completed = ? AND is_dismissed = ?", u.ID, false, false).
				Updates(map[string]interface{}{
					"title":         u.Title,
					"domain":        u.Domain,
					"reminder_date": u.ReminderDate,
					"entity_name":   u.EntityName,
					"priority":      u.Priority,
				}).Error; err != nil {
				return fmt.Errorf("update generated reminder %s: %w", u.ID, err)
			}
		}
		return nil
	})
}
