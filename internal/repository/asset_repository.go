package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"household-hub/internal/model"
)

// Asset is any household record that feeds reminder generation.
type Asset interface {
	model.Vehicle | model.Subscription | model.InsurancePolicy | model.Document
}

// AssetRepository handles CRUD for one kind of household record.
type AssetRepository[T Asset] struct {
	db   *gorm.DB
	name string
}

func NewAssetRepository[T Asset](db *gorm.DB, name string) *AssetRepository[T] {
	return &AssetRepository[T]{db: db, name: name}
}

func (r *AssetRepository[T]) Create(ctx context.Context, item *T) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.name, err)
	}
	return nil
}

func (r *AssetRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return items, nil
}

func (r *AssetRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("find %s %d: %w", r.name, id, err)
	}
	return &item, nil
}

// Update overwrites every column of record id except id and created_at.
func (r *AssetRepository[T]) Update(ctx context.Context, id uint, item *T) error {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("update %s %d: %w", r.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update %s %d: %w", r.name, id, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes the record. Reminders generated from it are left alone.
func (r *AssetRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", r.name, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s %d: %w", r.name, id, gorm.ErrRecordNotFound)
	}
	return nil
}
