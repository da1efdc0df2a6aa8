package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/techzone-py/techzone/internal/models"
)

var ErrAlreadyExists = errors.New("already exists")

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) MarkUserVerified(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("email_verified_at", at).Error
}

func (r *GormRepo) UpdateUserPassword(ctx context.Context, tx *gorm.DB, userID uint, passwordHash string) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}
