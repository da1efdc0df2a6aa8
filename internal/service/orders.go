package service

import (
	"context"
	"fmt"

	"github.com/techzone-py/techzone/internal/clients/carrier"
	"github.com/techzone-py/techzone/internal/clients/geocoder"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/pkg/logging"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Carrier  *carrier.Client
	Geocoder *geocoder.Client
}

// statusTransitions is the full admin-driven order lifecycle; anything else
// is rejected.
var statusTransitions = map[string][]string{
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListUserOrders(ctx, userID, offset, limit)
}

// GetUserOrder refuses to leak other users' orders: a foreign id comes back
// as not found.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	if status != "" {
		if _, ok := statusTransitions[status]; !ok {
			return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
	}
	return s.Repo.ListOrders(ctx, status, offset, limit)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, newStatus string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	allowed, ok := statusTransitions[order.Status]
	if !ok {
		return nil, fmt.Errorf("%w: order in unknown status %q", ErrValidation, order.Status)
	}
	permitted := false
	for _, s := range allowed {
		if s == newStatus {
			permitted = true
			break
		}
	}
	if !permitted {
		return nil, fmt.Errorf("%w: cannot move %q to %q", ErrValidation, order.Status, newStatus)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	return order, nil
}

// CreateLabel asks the carrier for a shipping label and stores the tracking
// code. Only shippable orders qualify.
func (s *OrderService) CreateLabel(ctx context.Context, orderID uint) (*carrier.Label, error) {
	l := logging.FromContext(ctx).With("svc", "orders.create_label", "order_id", orderID)

	if s.Carrier == nil {
		return nil, fmt.Errorf("%w: carrier not configured", ErrValidation)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.Status != models.OrderStatusProcessing && order.Status != models.OrderStatusShipped {
		return nil, fmt.Errorf("%w: order not shippable in status %q", ErrValidation, order.Status)
	}

	weightKg := order.WeightKg
	if weightKg <= 0 {
		weightKg = 1
	}

	req := carrier.LabelRequest{
		OrderRef:   fmt.Sprint(order.ID),
		City:       order.City,
		Department: order.Department,
		WeightKg:   weightKg,
		Service:    order.ShippingService,
	}
	// Coordinates help the carrier route interior deliveries; a geocoder
	// outage must not block label creation.
	if s.Geocoder != nil {
		if loc, gErr := s.Geocoder.Locate(ctx, order.City, order.Department); gErr != nil {
			l.Warn("geocode failed", "error", gErr)
		} else {
			req.Lat = loc.Lat
			req.Lon = loc.Lon
		}
	}

	label, err := s.Carrier.CreateLabel(ctx, req)
	if err != nil {
		l.Error("carrier label failed", "error", err)
		return nil, err
	}

	if err := s.Repo.SetOrderTracking(ctx, order.ID, label.TrackingCode); err != nil {
		return nil, err
	}
	return label, nil
}
