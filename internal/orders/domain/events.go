package domain

const EventTypeOrderConfirmed = "OrderConfirmed"

// OrderConfirmed is published through the outbox after an order is
// persisted, for downstream consumers such as the notifications worker.
type OrderConfirmed struct {
	OrderID int64
	UserID  int64
	Items   []OrderItem
}
