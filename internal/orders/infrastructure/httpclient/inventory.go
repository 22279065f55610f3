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

// InventoryClient talks to the inventory service's stock API.
type InventoryClient struct {
	log  *slog.Logger
	base string
	hc   *http.Client
}

func NewInventoryClient(log *slog.Logger, baseURL string) *InventoryClient {
	return &InventoryClient{log: log, base: baseURL, hc: newHTTPClient()}
}

func (c *InventoryClient) GetStock(ctx context.Context, productID string) (int, error) {
	url := fmt.Sprintf("%s/api/inventory/%s", c.base, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &application.InventoryUnavailableError{Err: err}
	}
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, &application.InventoryUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &application.InventoryUnavailableError{
			Err: fmt.Errorf("get stock for %s: status %d", productID, resp.StatusCode),
		}
	}

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, &application.InventoryUnavailableError{Err: err}
	}
	return body.Quantity, nil
}

func (c *InventoryClient) SetStock(ctx context.Context, productID string, quantity int) error {
	payload, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return &application.InventoryUnavailableError{Err: err}
	}

	url := fmt.Sprintf("%s/api/inventory/%s", c.base, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return &application.InventoryUnavailableError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.hc.Do(req)
	if err != nil {
		return &application.InventoryUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &application.InventoryUnavailableError{
			Err: fmt.Errorf("set stock for %s: status %d", productID, resp.StatusCode),
		}
	}
	return nil
}
