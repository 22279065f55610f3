package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/services/internal/orders/application"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInventoryClientGetStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/inventory/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"productId": "p1", "quantity": 7})
	}))
	defer srv.Close()

	c := NewInventoryClient(testLogger(), srv.URL)
	qty, err := c.GetStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, qty)
}

func TestInventoryClientSetStock(t *testing.T) {
	var gotBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/inventory/p1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewInventoryClient(testLogger(), srv.URL)
	require.NoError(t, c.SetStock(context.Background(), "p1", 8))
	assert.Equal(t, map[string]int{"quantity": 8}, gotBody)
}

func TestInventoryClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewInventoryClient(testLogger(), srv.URL)

	_, err := c.GetStock(context.Background(), "p1")
	var downErr *application.InventoryUnavailableError
	assert.ErrorAs(t, err, &downErr)

	err = c.SetStock(context.Background(), "p1", 3)
	assert.ErrorAs(t, err, &downErr)
}

func TestInventoryClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewInventoryClient(testLogger(), srv.URL)
	_, err := c.GetStock(context.Background(), "p1")

	var downErr *application.InventoryUnavailableError
	assert.ErrorAs(t, err, &downErr)
}

func TestPaymentClientCharge(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/payments/charge", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":        "APPROVED",
			"transactionId": "pay_abc",
			"reason":        "Test card approved",
		})
	}))
	defer srv.Close()

	c := NewPaymentClient(testLogger(), srv.URL)
	result, err := c.Charge(context.Background(), application.ChargeRequest{
		UserID:      100,
		Amount:      59.98,
		Currency:    "USD",
		CardNumber:  "4242424242424242",
		ExpiryMonth: 12,
		ExpiryYear:  2025,
		CVV:         "123",
	})
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", result.Status)
	assert.Equal(t, "pay_abc", result.TransactionID)
	assert.Equal(t, float64(100), gotBody["userId"])
	assert.Equal(t, 59.98, gotBody["amount"])
	assert.Equal(t, "4242424242424242", gotBody["cardNumber"])
}

func TestPaymentClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewPaymentClient(testLogger(), srv.URL)
	_, err := c.Charge(context.Background(), application.ChargeRequest{Amount: 10})

	var downErr *application.PaymentServiceUnavailableError
	assert.ErrorAs(t, err, &downErr)
}

func TestUserClientGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/100", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         100,
			"email":      "jane@example.com",
			"fullName":   "Jane Doe",
			"street":     "123 Main St",
			"city":       "New York",
			"state":      "NY",
			"postalCode": "10001",
			"country":    "US",
		})
	}))
	defer srv.Close()

	c := NewUserClient(testLogger(), srv.URL)
	profile, err := c.GetProfile(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, int64(100), profile.ID)
	assert.Equal(t, "Jane Doe", profile.FullName)
	assert.Equal(t, "NY", profile.Address.State)
	assert.Equal(t, "US", profile.Address.Country)
}

func TestUserClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewUserClient(testLogger(), srv.URL)
	_, err := c.GetProfile(context.Background(), 42)

	var notFoundErr *application.UserNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, int64(42), notFoundErr.UserID)
}

func TestUserClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewUserClient(testLogger(), srv.URL)
	_, err := c.GetProfile(context.Background(), 42)

	var downErr *application.UserServiceUnavailableError
	assert.ErrorAs(t, err, &downErr)
}
