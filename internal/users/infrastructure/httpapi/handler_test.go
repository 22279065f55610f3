package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/services/internal/users/application"
	"github.com/shopcore/services/internal/users/domain"
)

type memRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func (r *memRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.User{}, application.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return u, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, application.ErrUserNotFound
}

func (r *memRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, application.ErrUserNotFound
	}
	return u, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(log, &memRepo{users: map[int64]domain.User{}}, []byte("test-secret"))
	srv := httptest.NewServer(NewHandler(log, svc).Routes())
	t.Cleanup(srv.Close)
	return srv
}

const validRegisterBody = `{
	"email": "jane@example.com",
	"password": "s3cret-pw",
	"fullName": "Jane Doe",
	"street": "123 Main St",
	"city": "New York",
	"state": "NY",
	"postalCode": "10001",
	"country": "US"
}`

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestUsersHealth(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/users/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "users", body["service"])
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/api/users/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "NY", body["state"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")
}

func TestRegisterEndpointValidation(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/api/users/register", `{"email": "jane@example.com"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "password", body["field"])
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/api/users/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/users/register", validRegisterBody)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "email", body["field"])
}

func TestLoginEndpoint(t *testing.T) {
	srv := newServer(t)
	resp := postJSON(t, srv.URL+"/api/users/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/users/login", `{"email": "jane@example.com", "password": "s3cret-pw"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, float64(1), body["userId"])
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginEndpointFailures(t *testing.T) {
	srv := newServer(t)
	resp := postJSON(t, srv.URL+"/api/users/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/users/login", `{"email": "jane@example.com", "password": "nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/users/login", `{"email": "", "password": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetUserEndpoint(t *testing.T) {
	srv := newServer(t)
	resp := postJSON(t, srv.URL+"/api/users/register", validRegisterBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/users/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "Jane Doe", body["fullName"])
	assert.Equal(t, "10001", body["postalCode"])

	resp, err = http.Get(srv.URL + "/api/users/99")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
