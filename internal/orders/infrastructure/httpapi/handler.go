package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/shopcore/services/internal/orders/application"
	"github.com/shopcore/services/internal/orders/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("orders-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/orders/health", h.health)
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/user/{userId}", h.listOrdersByUser)
	r.Get("/api/orders/{id}", h.getOrder)

	return r
}

type itemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type paymentInfo struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CardNumber  string  `json:"cardNumber"`
	ExpiryMonth int     `json:"expiryMonth"`
	ExpiryYear  int     `json:"expiryYear"`
	CVV         string  `json:"cvv"`
}

type createOrderRequest struct {
	UserID  int64         `json:"userId"`
	Items   []itemRequest `json:"items"`
	Payment *paymentInfo  `json:"payment"`
}

type itemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type addressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type orderResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	Items           []itemResponse  `json:"items"`
	ShippingAddress addressResponse `json:"shippingAddress"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     items,
		ShippingAddress: addressResponse{
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "orders"})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := application.CreateOrderRequest{UserID: req.UserID}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, application.RequestedItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if req.Payment != nil {
		cmd.Payment = &application.PaymentDetails{
			Amount:      req.Payment.Amount,
			Currency:    req.Payment.Currency,
			CardNumber:  req.Payment.CardNumber,
			ExpiryMonth: req.Payment.ExpiryMonth,
			ExpiryYear:  req.Payment.ExpiryYear,
			CVV:         req.Payment.CVV,
		}
	}

	order, err := h.service.CreateOrder(ctx, cmd)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) listOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	orders, err := h.service.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// writeServiceError maps the workflow error taxonomy to status codes.
// Unrecognized errors become an opaque 500 so internals never leak.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr  *application.ValidationError
		declinedErr    *application.PaymentDeclinedError
		userErr        *application.UserNotFoundError
		stockErr       *application.InsufficientStockError
		invDownErr     *application.InventoryUnavailableError
		payDownErr     *application.PaymentServiceUnavailableError
		usersDownErr   *application.UserServiceUnavailableError
		persistenceErr *application.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &declinedErr):
		writeError(w, http.StatusPaymentRequired, declinedErr.Error())
	case errors.As(err, &userErr):
		writeError(w, http.StatusUnprocessableEntity, userErr.Error())
	case errors.As(err, &stockErr):
		writeError(w, http.StatusConflict, stockErr.Error())
	case errors.As(err, &invDownErr), errors.As(err, &payDownErr), errors.As(err, &usersDownErr):
		writeError(w, http.StatusBadGateway, "upstream service unavailable")
	case errors.Is(err, application.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.As(err, &persistenceErr):
		h.log.Error("order store failure", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		h.log.Error("unhandled error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
