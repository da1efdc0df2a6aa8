package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/techzone-py/techzone/internal/models"
)

var ErrTokenExpiredOrRevoked = errors.New("token expired or revoked")

func (r *GormRepo) AddRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) FindRefreshByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) RevokeRefreshByHash(ctx context.Context, tokenHash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// RotateRefreshToken revokes the old token row and inserts the replacement in
// one transaction, so a crash cannot leave both usable.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldHash string, replacement *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.RefreshToken
		if err := tx.Where("token_hash = ?", oldHash).First(&old).Error; err != nil {
			return err
		}
		if old.Revoked || old.ExpiresAt.Before(time.Now()) {
			return ErrTokenExpiredOrRevoked
		}
		if err := tx.Model(&models.RefreshToken{}).
			Where("token_hash = ?", oldHash).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
}

func (r *GormRepo) PurgeExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at < ? OR revoked = ?", now, true).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
