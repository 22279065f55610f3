package application

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned by order lookups for unknown ids.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError rejects a structurally invalid create-order request
// before any external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PaymentDeclinedError reports a charge the payment service answered but
// did not approve.
type PaymentDeclinedError struct {
	Reason string
}

func (e *PaymentDeclinedError) Error() string {
	if e.Reason == "" {
		return "payment declined"
	}
	return "payment declined: " + e.Reason
}

type UserNotFoundError struct {
	UserID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found: %d", e.UserID)
}

type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InventoryUnavailableError wraps a transport or server failure from the
// inventory service.
type InventoryUnavailableError struct {
	Err error
}

func (e *InventoryUnavailableError) Error() string {
	return "inventory service unavailable: " + e.Err.Error()
}

func (e *InventoryUnavailableError) Unwrap() error { return e.Err }

type PaymentServiceUnavailableError struct {
	Err error
}

func (e *PaymentServiceUnavailableError) Error() string {
	return "payment service unavailable: " + e.Err.Error()
}

func (e *PaymentServiceUnavailableError) Unwrap() error { return e.Err }

type UserServiceUnavailableError struct {
	Err error
}

func (e *UserServiceUnavailableError) Error() string {
	return "users service unavailable: " + e.Err.Error()
}

func (e *UserServiceUnavailableError) Unwrap() error { return e.Err }

type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "order store failure: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
