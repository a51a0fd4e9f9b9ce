package transport

import (
	"context"
	"encoding/base64"
	"fmt"

	fiberClient "github.com/gofiber/fiber/v3/client"
)

/*
Fiber is an alternative transport over the fiber v3 client, for callers
already living on the fasthttp stack. Behaviour matches the net/http
transport: POST the payload, hand back the body, map non-2xx to an error.
*/
type Fiber struct {
	conn   *fiberClient.Client
	header map[string]string
}

type FiberOption func(*Fiber)

// WithFiberBasicAuth configures basic-auth credentials for the endpoint.
func WithFiberBasicAuth(username, password string) FiberOption {
	return func(t *Fiber) {
		if username == "" {
			return
		}

		creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		t.header["Authorization"] = "Basic " + creds
	}
}

// NewFiber creates a fiber-backed transport for the given endpoint URL.
func NewFiber(url string, opts ...FiberOption) *Fiber {
	t := &Fiber{
		conn: fiberClient.New().SetBaseURL(url),
		header: map[string]string{
			"Content-Type": "application/json",
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Send posts the payload and returns the response body.
func (t *Fiber) Send(ctx context.Context, payload []byte) ([]byte, error) {
	res, err := t.conn.Post("", fiberClient.Config{
		Ctx:    ctx,
		Header: t.header,
		Body:   payload,
	})

	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	defer res.Close()

	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return nil, fmt.Errorf("transport: server returned status %d: %s", res.StatusCode(), res.Body())
	}

	// The response buffer is reused once released, so copy it out.
	body := make([]byte, len(res.Body()))
	copy(body, res.Body())

	return body, nil
}
