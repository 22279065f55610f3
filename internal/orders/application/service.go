package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopcore/services/internal/orders/domain"
	"github.com/shopcore/services/pkg/tracing"
)

const (
	approvedStatus  = "APPROVED"
	defaultCurrency = "USD"
)

type RequestedItem struct {
	ProductID string
	Quantity  int
}

type PaymentDetails struct {
	Amount      float64
	Currency    string
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	CVV         string
}

// CreateOrderRequest is the transient input to the workflow. Card data is
// forwarded to the payment service and never persisted.
type CreateOrderRequest struct {
	UserID  int64
	Items   []RequestedItem
	Payment *PaymentDetails
}

// Service orchestrates order creation across the payment, users and
// inventory services and the order store.
type Service struct {
	log       *slog.Logger
	repo      OrderRepository
	inventory InventorySource
	payments  PaymentProcessor
	profiles  ProfileLookup
}

func NewService(log *slog.Logger, repo OrderRepository, inventory InventorySource, payments PaymentProcessor, profiles ProfileLookup) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		inventory: inventory,
		payments:  payments,
		profiles:  profiles,
	}
}

// CreateOrder runs the order workflow: validate, charge payment, resolve
// the user's shipping address, pre-check stock for every item, decrement
// stock per item, then persist order + items + outbox event atomically.
//
// There is no compensation across services. Once the charge succeeds, a
// failure in any later step leaves the payment (and possibly partial
// stock decrements) in place; such aborts are logged at error level for
// manual reconciliation. The stock update is a read-modify-write with no
// conditional semantics on the inventory side, so two concurrent orders
// for the same product can both pass the pre-check and oversell it.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	if err := validate(req); err != nil {
		return domain.Order{}, err
	}

	currency := req.Payment.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	charge, err := s.payments.Charge(ctx, ChargeRequest{
		UserID:      req.UserID,
		Amount:      req.Payment.Amount,
		Currency:    currency,
		CardNumber:  req.Payment.CardNumber,
		ExpiryMonth: req.Payment.ExpiryMonth,
		ExpiryYear:  req.Payment.ExpiryYear,
		CVV:         req.Payment.CVV,
	})
	if err != nil {
		return domain.Order{}, err
	}
	if !strings.EqualFold(charge.Status, approvedStatus) {
		return domain.Order{}, &PaymentDeclinedError{Reason: charge.Reason}
	}

	// Every failure past this point strands the charge.
	profile, err := s.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		s.reconcile(charge.TransactionID, "user lookup failed", err)
		return domain.Order{}, err
	}

	// Full pre-check before any decrement so one short item never causes
	// a partial reservation.
	for _, item := range req.Items {
		available, err := s.inventory.GetStock(ctx, item.ProductID)
		if err != nil {
			s.reconcile(charge.TransactionID, "stock check failed", err)
			return domain.Order{}, err
		}
		if available < item.Quantity {
			stockErr := &InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: available,
			}
			s.reconcile(charge.TransactionID, "insufficient stock", stockErr)
			return domain.Order{}, stockErr
		}
	}

	for _, item := range req.Items {
		available, err := s.inventory.GetStock(ctx, item.ProductID)
		if err != nil {
			s.reconcile(charge.TransactionID, "stock decrement read failed", err)
			return domain.Order{}, err
		}
		if err := s.inventory.SetStock(ctx, item.ProductID, available-item.Quantity); err != nil {
			s.reconcile(charge.TransactionID, "stock decrement write failed", err)
			return domain.Order{}, err
		}
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order := domain.NewOrder(req.UserID, items, profile.Address)
	saved, err := s.repo.SaveWithOutbox(ctx, order, tracing.Traceparent(ctx))
	if err != nil {
		s.reconcile(charge.TransactionID, "order save failed", err)
		return domain.Order{}, err
	}

	s.log.Info("order created",
		"order_id", saved.ID,
		"user_id", saved.UserID,
		"items", len(saved.Items),
		"transaction_id", charge.TransactionID,
	)
	return saved, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *Service) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// reconcile records an abort that happened after the card was charged.
// Nothing is refunded automatically; an operator has to act on these.
func (s *Service) reconcile(transactionID, step string, err error) {
	s.log.Error("order aborted after payment was charged, manual reconciliation required",
		"transaction_id", transactionID,
		"failed_step", step,
		"err", err,
	)
}

func validate(req CreateOrderRequest) error {
	if req.UserID <= 0 {
		return &ValidationError{Field: "userId", Message: "userId is required"}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return &ValidationError{Field: "items.productId", Message: "productId is required"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Field: "items.quantity", Message: "item quantity must be > 0"}
		}
	}
	if req.Payment == nil {
		return &ValidationError{Field: "payment", Message: "payment details are required"}
	}
	if req.Payment.Amount <= 0 {
		return &ValidationError{Field: "payment.amount", Message: "payment amount must be > 0"}
	}
	return nil
}
