// Package httpclient holds the JSON/HTTP adapters for the collaborator
// services the order workflow depends on. None of them retries; a failed
// call surfaces immediately as the matching unavailable error.
package httpclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
