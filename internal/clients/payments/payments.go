package payments

import "context"

type LineItem struct {
	Name      string
	UnitPrice int64
	Quantity  int64
}

type SessionParams struct {
	// Reference doubles as the gateway idempotency key, so a manual retry
	// after a network failure cannot double-charge.
	Reference  string
	Currency   string
	Items      []LineItem
	Shipping   int64
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string
	URL string
}

// Gateway mints a payment session scoped to an exact amount. Implementations
// must treat timeouts as failures, never as silent success.
type Gateway interface {
	CreateSession(ctx context.Context, p SessionParams) (*Session, error)
}
