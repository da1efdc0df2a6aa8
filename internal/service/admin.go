package service

import (
	"context"
	"fmt"

	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/pkg/hash"
)

type AdminService struct {
	Repo *repo.GormRepo
}

type AdminUserInput struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	return s.Repo.ListAdmins(ctx)
}

func (s *AdminService) CreateAdmin(ctx context.Context, in AdminUserInput) (*models.AdminUser, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: username, password and role required", ErrValidation)
	}
	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminUser{
		Username:     in.Username,
		PasswordHash: pwHash,
		Role:         in.Role,
		Permissions:  in.Permissions,
		Active:       true,
	}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		if err == repo.ErrAlreadyExists {
			return nil, fmt.Errorf("%w: username taken", ErrConflict)
		}
		return nil, err
	}
	return admin, nil
}

// UpdateAdmin rotates the password only when one is supplied.
func (s *AdminService) UpdateAdmin(ctx context.Context, id uint, in AdminUserInput) (*models.AdminUser, error) {
	admin, err := s.Repo.GetAdminByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Username != "" {
		admin.Username = in.Username
	}
	if in.Role != "" {
		admin.Role = in.Role
	}
	if in.Permissions != nil {
		admin.Permissions = in.Permissions
	}
	if in.Active != nil {
		admin.Active = *in.Active
	}
	if in.Password != "" {
		pwHash, err := hash.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = pwHash
	}

	if err := s.Repo.SaveAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin is a hard delete.
func (s *AdminService) DeleteAdmin(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteAdmin(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
