package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopcore/services/internal/orders/application"
	"github.com/shopcore/services/internal/orders/domain"
	"github.com/shopcore/services/pkg/tracing"
)

// UserClient resolves user profiles from the users service. A 404 is a
// missing user; anything else that is not a 200 counts as the service
// being unavailable.
type UserClient struct {
	log  *slog.Logger
	base string
	hc   *http.Client
}

func NewUserClient(log *slog.Logger, baseURL string) *UserClient {
	return &UserClient{log: log, base: baseURL, hc: newHTTPClient()}
}

func (c *UserClient) GetProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.base, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Profile{}, &application.UserServiceUnavailableError{Err: err}
	}
	tracing.InjectHTTPHeaders(ctx, req.Header)

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.Profile{}, &application.UserServiceUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Profile{}, &application.UserNotFoundError{UserID: userID}
	case resp.StatusCode != http.StatusOK:
		return domain.Profile{}, &application.UserServiceUnavailableError{
			Err: fmt.Errorf("get user %d: status %d", userID, resp.StatusCode),
		}
	}

	var body struct {
		ID         int64  `json:"id"`
		Email      string `json:"email"`
		FullName   string `json:"fullName"`
		Street     string `json:"street"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Profile{}, &application.UserServiceUnavailableError{Err: err}
	}

	return domain.Profile{
		ID:       body.ID,
		Email:    body.Email,
		FullName: body.FullName,
		Address: domain.Address{
			Street:     body.Street,
			City:       body.City,
			State:      body.State,
			PostalCode: body.PostalCode,
			Country:    body.Country,
		},
	}, nil
}
