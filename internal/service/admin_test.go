package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/pkg/hash"
)

func TestCreateAdminHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc := &AdminService{Repo: newTestRepo(t)}

	admin, err := svc.CreateAdmin(ctx, AdminUserInput{
		Username:    "moderator",
		Password:    "plaintext",
		Role:        "editor",
		Permissions: []string{"products:write"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext", admin.PasswordHash)
	assert.True(t, hash.CheckPassword(admin.PasswordHash, "plaintext"))
	assert.True(t, admin.Active)

	_, err = svc.CreateAdmin(ctx, AdminUserInput{Username: "moderator", Password: "x", Role: "editor"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateAdmin(ctx, AdminUserInput{Username: "no-role", Password: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateAdminPartial(t *testing.T) {
	ctx := context.Background()
	svc := &AdminService{Repo: newTestRepo(t)}

	admin, err := svc.CreateAdmin(ctx, AdminUserInput{
		Username: "ops", Password: "first-pass", Role: "editor",
	})
	require.NoError(t, err)
	oldHash := admin.PasswordHash

	inactive := false
	updated, err := svc.UpdateAdmin(ctx, admin.ID, AdminUserInput{
		Role:   "superadmin",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "superadmin", updated.Role)
	assert.False(t, updated.Active)
	// no password supplied, the hash is untouched
	assert.Equal(t, oldHash, updated.PasswordHash)

	updated, err = svc.UpdateAdmin(ctx, admin.ID, AdminUserInput{Password: "second-pass"})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
	assert.True(t, hash.CheckPassword(updated.PasswordHash, "second-pass"))

	_, err = svc.UpdateAdmin(ctx, 9999, AdminUserInput{Role: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAdmin(t *testing.T) {
	ctx := context.Background()
	svc := &AdminService{Repo: newTestRepo(t)}

	admin, err := svc.CreateAdmin(ctx, AdminUserInput{Username: "temp", Password: "x", Role: "editor"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAdmin(ctx, admin.ID))

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Empty(t, admins)

	assert.ErrorIs(t, svc.DeleteAdmin(ctx, admin.ID), ErrNotFound)
}
