package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/techzone-py/techzone/internal/models"
)

// ReplaceVerificationCode drops every outstanding code for the user and
// inserts the new one in a single transaction, so two valid codes can never
// coexist even under concurrent requests.
func (r *GormRepo) ReplaceVerificationCode(ctx context.Context, code *models.VerificationCode) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ?", code.UserID, code.Purpose).
			Delete(&models.VerificationCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

// ConsumeVerificationCode deletes the matching unexpired code and applies
// onConsume inside the same transaction: both effects become visible together
// or neither does.
func (r *GormRepo) ConsumeVerificationCode(ctx context.Context, userID uint, codeHash, purpose string, onConsume func(tx *gorm.DB) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var code models.VerificationCode
		if err := tx.Where("user_id = ? AND code_hash = ? AND purpose = ? AND expires_at > ?",
			userID, codeHash, purpose, time.Now()).
			First(&code).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.VerificationCode{}, code.ID).Error; err != nil {
			return err
		}
		return onConsume(tx)
	})
}

func (r *GormRepo) PurgeExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}
