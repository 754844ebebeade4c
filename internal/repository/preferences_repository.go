package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"household-hub/internal/model"
)

// PreferencesRepository stores dashboard layouts.
type PreferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

func (r *PreferencesRepository) Load(ctx context.Context, profile string) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := r.db.WithContext(ctx).Where("profile = ?", profile).First(&prefs).Error; err != nil {
		return nil, fmt.Errorf("load preferences %q: %w", profile, err)
	}
	return &prefs, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, prefs *model.UserPreferences) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(prefs).Error; err != nil {
		return fmt.Errorf("save preferences %q: %w", prefs.Profile, err)
	}
	return nil
}
