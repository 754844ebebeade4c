package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"household-hub/internal/model"
)

// UserRepository handles CRUD for Telegram digest recipients.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromTelegram finds or creates a user based on TelegramID and updates basic profile info.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID int64, firstName, lastName, username string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"username":   username,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		user = model.User{
			TelegramID:    telegramID,
			FirstName:     firstName,
			LastName:      lastName,
			Username:      username,
			DigestEnabled: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// SetDigest toggles daily digests for a Telegram user.
func (r *UserRepository) SetDigest(ctx context.Context, telegramID int64, enabled bool) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("telegram_id = ?", telegramID).
		Update("digest_enabled", enabled)
	if res.Error != nil {
		return fmt.Errorf("set digest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("set digest for %d: %w", telegramID, gorm.ErrRecordNotFound)
	}
	return nil
}

// ListDigestRecipients returns users that still want the daily digest.
func (r *UserRepository) ListDigestRecipients(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("digest_enabled = ?", true).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
