package domain

import "time"

type OrderStatus string

// CONFIRMED is the only status the workflow produces today; the field is
// kept open for cancellation and fulfilment states.
const StatusConfirmed OrderStatus = "CONFIRMED"

// Address is the shipping address snapshot captured from the user profile
// when the order is created. Later profile edits do not touch it.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// OrderItem is one product line of an order. Items are owned by their
// order; they are written and deleted with it.
type OrderItem struct {
	ProductID string
	Quantity  int
}

type Order struct {
	ID              int64
	UserID          int64
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ShippingAddress Address
	Items           []OrderItem
}

// NewOrder builds a confirmed order ready for its first save. The id is
// assigned by the store.
func NewOrder(userID int64, items []OrderItem, shipTo Address) Order {
	now := time.Now().UTC()
	return Order{
		UserID:          userID,
		Status:          StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
		ShippingAddress: shipTo,
		Items:           items,
	}
}

// Profile is the slice of a user record the orders service needs,
// resolved from the users service.
type Profile struct {
	ID       int64
	Email    string
	FullName string
	Address  Address
}
