package repositories

import (
	"context"
	"fmt"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"gorm.io/gorm"
)

type TokenRepositoryImpl interface {
	GetOrCreate(ctx context.Context, userID string) (*models.AuthToken, error)
	FindByKey(ctx context.Context, key string) (*models.AuthToken, error)
	DeleteForUser(ctx context.Context, userID string) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepositoryImpl {
	return &tokenRepository{db}
}

// GetOrCreate returns the user's existing token, minting one if absent.
// Repeated logins hand back the same key until logout deletes it.
func (r *tokenRepository) GetOrCreate(ctx context.Context, userID string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	key, err := helpers.GenerateTokenKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token for user %s: %w", userID, err)
	}

	token = models.AuthToken{Key: key, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.WithContext(ctx).Preload("User").Where("`key` = ?", key).First(&token).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
