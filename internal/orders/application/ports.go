package application

import (
	"context"

	"github.com/shopcore/services/internal/orders/domain"
)

// OrderRepository persists orders. SaveWithOutbox writes the order, its
// items and an OrderConfirmed outbox event in one transaction and returns
// the order with its assigned id. The event carries that id, which is why
// it is composed inside the transaction rather than by the caller.
type OrderRepository interface {
	SaveWithOutbox(ctx context.Context, o domain.Order, traceparent string) (domain.Order, error)
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

// InventorySource exposes the inventory service's read-and-write stock
// API. It offers no conditional update, which is why the workflow's
// check-then-decrement is racy.
type InventorySource interface {
	GetStock(ctx context.Context, productID string) (int, error)
	SetStock(ctx context.Context, productID string, quantity int) error
}

type ChargeRequest struct {
	UserID      int64
	Amount      float64
	Currency    string
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	CVV         string
}

type ChargeResult struct {
	Status        string
	TransactionID string
	Reason        string
}

// PaymentProcessor submits a charge. No idempotency key is sent, so a
// retried call is charged again.
type PaymentProcessor interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type ProfileLookup interface {
	GetProfile(ctx context.Context, userID int64) (domain.Profile, error)
}
