package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is a single calendar item shown in the Hub.
//
// ReminderDate is kept as the ISO-8601 string it was submitted or imported
// with; it is parsed when the reminder is classified so that one malformed
// record never blocks reading the others.
type Reminder struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description,omitempty"`
	Domain       Domain     `gorm:"size:20;index" json:"domain"`
	ReminderDate string     `gorm:"size:40;index" json:"reminder_date"`
	EntityType   string     `gorm:"size:40;index:idx_reminder_source" json:"entity_type,omitempty"`
	EntityID     string     `gorm:"size:40;index:idx_reminder_source" json:"entity_id,omitempty"`
	EntityName   string     `json:"entity_name,omitempty"`
	SourceField  string     `gorm:"size:40;index:idx_reminder_source" json:"source_field,omitempty"`
	Priority     Priority   `gorm:"size:10;default:MEDIUM" json:"priority"`
	Recurrence   Recurrence `gorm:"size:10;default:none" json:"recurrence"`
	RecurDay     int        `json:"recur_day,omitempty"`
	IsCompleted  bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	IsDismissed  bool       `gorm:"default:false" json:"is_dismissed"`
	DismissedAt  *time.Time `json:"dismissed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (r *Reminder) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IsResolved reports whether the reminder reached a terminal state.
func (r Reminder) IsResolved() bool {
	return r.IsCompleted || r.IsDismissed
}

// IsGenerated reports whether the reminder was synthesised from a source entity.
func (r Reminder) IsGenerated() bool {
	return r.EntityType != "" && r.EntityID != "" && r.SourceField != ""
}
