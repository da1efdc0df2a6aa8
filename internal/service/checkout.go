package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/techzone-py/techzone/internal/clients/payments"
	"github.com/techzone-py/techzone/internal/events"
	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
	"github.com/techzone-py/techzone/internal/shipping"
	"github.com/techzone-py/techzone/pkg/logging"
	"github.com/techzone-py/techzone/pkg/tokens"
)

type CheckoutService struct {
	Repo     *repo.GormRepo
	Rates    *shipping.Resolver
	Gateway  payments.Gateway
	Producer *events.Producer

	SuccessURL string
	CancelURL  string
}

type CheckoutItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CheckoutRequest struct {
	Items      []CheckoutItem `json:"items"`
	City       string         `json:"city"`
	Department string         `json:"department"`
	ServiceID  string         `json:"service_id"`
}

type CheckoutResult struct {
	OrderID    uint   `json:"order_id"`
	PaymentURL string `json:"payment_url"`
	Total      int64  `json:"total"`
}

// idempotencyKey derives a stable key from the checkout snapshot: same user,
// cart and destination always hash to the same key, so a manual retry replays
// the existing gateway session instead of minting a second charge. Item order
// in the request does not matter.
func idempotencyKey(userID uint, req CheckoutRequest) string {
	lines := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, fmt.Sprintf("%d:%d", item.ProductID, item.Quantity))
	}
	sort.Strings(lines)
	seed := fmt.Sprintf("checkout|%d|%s|%s|%s|%s",
		userID, shipping.Normalize(req.City), shipping.Normalize(req.Department),
		req.ServiceID, strings.Join(lines, ","))
	return tokens.Sha256Hex(seed)
}

// Checkout runs the pipeline: cart validation, shipping quote, payment
// session, order persistence. The gateway is called at most once per checkout
// snapshot, keyed by a deterministic idempotency key, and no order row exists
// unless the session was minted.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, req CheckoutRequest) (*CheckoutResult, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if req.City == "" || req.Department == "" {
		return nil, fmt.Errorf("%w: city and department required", ErrValidation)
	}

	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		l.Error("checkout_failed", "stage", "load_products", "error", err)
		return nil, ErrCheckoutFailed
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal int64
	var weightKg float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	lineItems := make([]payments.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %d", ErrValidation, item.ProductID)
		}
		lineTotal := product.Price * int64(item.Quantity)
		subtotal += lineTotal
		weightKg += product.WeightKg * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
		})
		lineItems = append(lineItems, payments.LineItem{
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  int64(item.Quantity),
		})
	}

	zoneID := s.Rates.ResolveZone(req.City, req.Department)
	quote, err := s.Rates.Quote(req.ServiceID, zoneID, weightKg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: no shipping offer for service %q", ErrValidation, req.ServiceID)
	}

	total := subtotal + quote.Cost
	key := idempotencyKey(userID, req)

	// A persisted order with this key means the checkout already completed;
	// retrying must not reach the gateway again.
	if count, err := s.Repo.CountOrdersByIdempotencyKey(ctx, key); err != nil {
		l.Error("checkout_failed", "stage", "idempotency_check", "error", err)
		return nil, ErrCheckoutFailed
	} else if count > 0 {
		return nil, fmt.Errorf("%w: order already placed for this cart", ErrConflict)
	}

	if s.Gateway == nil {
		l.Error("checkout_failed", "stage", "payment_session", "error", "gateway not configured")
		return nil, ErrPaymentSession
	}
	session, err := s.Gateway.CreateSession(ctx, payments.SessionParams{
		Reference:  key,
		Currency:   "pyg",
		Items:      lineItems,
		Shipping:   quote.Cost,
		SuccessURL: s.SuccessURL,
		CancelURL:  s.CancelURL,
	})
	if err != nil {
		// No order may exist without a payment session.
		l.Error("checkout_failed", "stage", "payment_session", "error", err)
		return nil, ErrPaymentSession
	}

	order := &models.Order{
		UserID:           userID,
		Status:           models.OrderStatusProcessing,
		Subtotal:         subtotal,
		ShippingCost:     quote.Cost,
		Total:            total,
		City:             req.City,
		Department:       req.Department,
		ShippingService:  quote.ServiceID,
		WeightKg:         weightKg,
		IdempotencyKey:   key,
		PaymentSessionID: session.ID,
		Items:            orderItems,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		l.Error("checkout_failed", "stage", "persist_order", "payment_session_id", session.ID, "error", err)
		return nil, ErrCheckoutFailed
	}

	if err := s.Producer.Publish(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    total,
	}); err != nil {
		l.Error("kafka publish failed", "error", err)
	}

	l.Info("checkout_success", "order_id", order.ID, "total", total)
	return &CheckoutResult{
		OrderID:    order.ID,
		PaymentURL: session.URL,
		Total:      total,
	}, nil
}
