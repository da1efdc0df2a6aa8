package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
)

func seedOrder(t *testing.T, r *repo.GormRepo, userID uint, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:          userID,
		Status:          status,
		Subtotal:        100000,
		ShippingCost:    25000,
		Total:           125000,
		City:            "Asunción",
		Department:      "Central",
		ShippingService: "standard",
		WeightKg:        1,
		IdempotencyKey:  uuid.NewString(),
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Mouse", Quantity: 1, UnitPrice: 100000, LineTotal: 100000},
		},
	}
	require.NoError(t, r.CreateOrder(context.Background(), order))
	return order
}

func TestGetUserOrderOwnership(t *testing.T) {
	ctx := context.Background()
	svc := &OrderService{Repo: newTestRepo(t)}

	order := seedOrder(t, svc.Repo, 7, models.OrderStatusProcessing)

	got, err := svc.GetUserOrder(ctx, 7, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	require.Len(t, got.Items, 1)

	// someone else's order reads as not found
	_, err = svc.GetUserOrder(ctx, 8, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetUserOrder(ctx, 7, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()
	svc := &OrderService{Repo: newTestRepo(t)}

	order := seedOrder(t, svc.Repo, 1, models.OrderStatusProcessing)

	// processing cannot jump straight to delivered
	_, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrValidation)

	got, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	// delivered is terminal
	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusCancellation(t *testing.T) {
	ctx := context.Background()
	svc := &OrderService{Repo: newTestRepo(t)}

	order := seedOrder(t, svc.Repo, 2, models.OrderStatusProcessing)

	got, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListOrdersStatusFilter(t *testing.T) {
	ctx := context.Background()
	svc := &OrderService{Repo: newTestRepo(t)}

	seedOrder(t, svc.Repo, 1, models.OrderStatusProcessing)
	seedOrder(t, svc.Repo, 2, models.OrderStatusShipped)

	total, orders, err := svc.ListOrders(ctx, models.OrderStatusShipped, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, uint(2), orders[0].UserID)

	_, _, err = svc.ListOrders(ctx, "lost-in-transit", 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateLabelRequiresCarrier(t *testing.T) {
	ctx := context.Background()
	svc := &OrderService{Repo: newTestRepo(t)}

	order := seedOrder(t, svc.Repo, 1, models.OrderStatusProcessing)
	_, err := svc.CreateLabel(ctx, order.ID)
	assert.ErrorIs(t, err, ErrValidation)
}
