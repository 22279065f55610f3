package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopcore/services/internal/orders/application"
	"github.com/shopcore/services/pkg/tracing"
)

// PaymentClient submits charges to the payment service. It sends no
// idempotency key, so a retried charge is not deduplicated downstream.
type PaymentClient struct {
	log  *slog.Logger
	base string
	hc   *http.Client
}

func NewPaymentClient(log *slog.Logger, baseURL string) *PaymentClient {
	return &PaymentClient{log: log, base: baseURL, hc: newHTTPClient()}
}

type chargeRequest struct {
	UserID      int64   `json:"userId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CardNumber  string  `json:"cardNumber"`
	ExpiryMonth int     `json:"expiryMonth"`
	ExpiryYear  int     `json:"expiryYear"`
	CVV         string  `json:"cvv"`
}

type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	Reason        string `json:"reason"`
}

func (c *PaymentClient) Charge(ctx context.Context, req application.ChargeRequest) (application.ChargeResult, error) {
	payload, err := json.Marshal(chargeRequest{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	})
	if err != nil {
		return application.ChargeResult{}, &application.PaymentServiceUnavailableError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/payments/charge", bytes.NewReader(payload))
	if err != nil {
		return application.ChargeResult{}, &application.PaymentServiceUnavailableError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	tracing.InjectHTTPHeaders(ctx, httpReq.Header)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return application.ChargeResult{}, &application.PaymentServiceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return application.ChargeResult{}, &application.PaymentServiceUnavailableError{
			Err: fmt.Errorf("charge: status %d", resp.StatusCode),
		}
	}

	var body chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return application.ChargeResult{}, &application.PaymentServiceUnavailableError{Err: err}
	}
	return application.ChargeResult{
		Status:        body.Status,
		TransactionID: body.TransactionID,
		Reason:        body.Reason,
	}, nil
}
