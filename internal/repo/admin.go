package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/techzone-py/techzone/internal/models"
)

func (r *GormRepo) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) GetAdminByID(ctx context.Context, id uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.DB.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	if err := r.DB.WithContext(ctx).Order("username ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, a *models.AdminUser) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", a.Username).FirstOrCreate(a)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) SaveAdmin(ctx context.Context, a *models.AdminUser) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) DeleteAdmin(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.AdminUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
