/*
Package transport provides the wire collaborators for the JSON-RPC client:
thin request/response carriers that submit a serialized payload and hand
back the serialized answer. Correlation never happens here.
*/
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

/*
HTTP posts JSON-RPC payloads to a single endpoint URL over net/http. TLS
comes along for free when the URL scheme is https. Basic-auth credentials,
when configured, are attached to every request.
*/
type HTTP struct {
	url      string
	username string
	password string
	client   *http.Client
}

type HTTPOption func(*HTTP)

// WithBasicAuth configures credentials for the endpoint. A username without
// a password is allowed; the reverse is not and is ignored.
func WithBasicAuth(username, password string) HTTPOption {
	return func(t *HTTP) {
		if username == "" {
			return
		}

		t.username = username
		t.password = password
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(t *HTTP) {
		t.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client, for callers that need
// their own pooling or proxy settings.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(t *HTTP) {
		t.client = client
	}
}

// NewHTTP creates an HTTP transport for the given endpoint URL.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	t := &HTTP{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Send posts the payload and returns the response body.
func (t *HTTP) Send(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if t.username != "" {
		req.SetBasicAuth(t.username, t.password)
	}

	log.Debug("Sending JSON-RPC payload", "url", t.url, "bytes", len(payload))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("transport: server returned status %d: %s", resp.StatusCode, body)
	}

	log.Debug("Received JSON-RPC payload", "url", t.url, "status", resp.StatusCode, "bytes", len(body))

	return body, nil
}
