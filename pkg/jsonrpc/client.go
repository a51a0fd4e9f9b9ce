package jsonrpc

import (
	"context"
	"fmt"
	"sync/atomic"

	json "github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"

	"github.com/machinae/jrpc-go/pkg/errors"
)

/*
Transport submits one serialized JSON-RPC payload (a single object or an
array) and returns the serialized response payload. Connection handling,
TLS, and authentication all live behind this interface; correlation only
runs once a full payload has been received.
*/
type Transport interface {
	Send(ctx context.Context, payload []byte) ([]byte, error)
}

/*
Client is a handle to a remote JSON-RPC server. The nonce counter is the
only mutable state it carries; everything else a call touches is owned by
that call.
*/
type Client struct {
	transport Transport
	nonce     atomic.Uint64
}

// NewClient creates a client that sends payloads through the given
// transport.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

/*
BuildRequest produces a uniquely identified request. Each call atomically
increments the shared nonce and uses the new value as the request's numeric
id, so concurrent callers always observe distinct, strictly increasing ids.
*/
func (c *Client) BuildRequest(method string, params ...any) Request {
	if params == nil {
		params = []any{}
	}

	return Request{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      NumberID(c.nonce.Add(1)),
	}
}

// LastNonce returns the last-issued nonce. The snapshot may be stale
// immediately if other callers are concurrently building requests.
func (c *Client) LastNonce() uint64 {
	return c.nonce.Load()
}

/*
ValidateResponse checks a single response against the request that produced
it. A response declaring a version other than "2.0" fails with
ErrVersionMismatch; a missing version field is tolerated for leniency toward
non-conforming servers. A response whose id is not structurally equal to the
request's fails with ErrNonceMismatch.
*/
func ValidateResponse(req Request, resp *Response) error {
	if resp.JSONRPC != "" && resp.JSONRPC != Version {
		return ErrVersionMismatch
	}

	if !resp.ID.Equal(req.ID) {
		return ErrNonceMismatch
	}

	return nil
}

/*
ReconcileBatch matches an unordered, possibly incomplete list of responses
back to the ordered list of requests that produced them. The returned slice
is positionally aligned with requests; a nil entry means the server chose
not to answer that request, which is not an error by itself.

Structural violations are caught before positional matching: an oversized
batch fails with ErrWrongBatchResponseSize and a duplicated id fails with a
BatchDuplicateIDError before any response answering an unknown id is
reported as an UnknownBatchIDError.
*/
func ReconcileBatch(requests []Request, responses []Response) ([]*Response, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyBatch
	}

	if len(responses) > len(requests) {
		return nil, ErrWrongBatchResponseSize
	}

	// Index responses by id. The map preserves insertion order so the
	// first-seen / first-remaining reporting below is deterministic.
	byID := orderedmap.New()

	for i := range responses {
		key := responses[i].ID.Key()

		if first, ok := byID.Get(key); ok {
			return nil, &BatchDuplicateIDError{Response: *first.(*Response)}
		}

		byID.Set(key, &responses[i])
	}

	matched := make([]*Response, len(requests))

	for i := range requests {
		key := requests[i].ID.Key()

		if resp, ok := byID.Get(key); ok {
			matched[i] = resp.(*Response)
			byID.Delete(key)
		}
	}

	if keys := byID.Keys(); len(keys) > 0 {
		stray, _ := byID.Get(keys[0])
		return nil, &UnknownBatchIDError{Response: *stray.(*Response)}
	}

	return matched, nil
}

// Call sends a single request and validates the response against it.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: marshal request: %w", err)
	}

	body, err := c.transport.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &errors.DecodeError{Cause: err}
	}

	if err := ValidateResponse(req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

/*
CallBatch sends a batch of requests as a single JSON array and reconciles
the responses. The requests need valid distinct ids, so they should come
from BuildRequest. An empty batch fails before any payload is sent.
*/
func (c *Client) CallBatch(ctx context.Context, requests []Request) ([]*Response, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyBatch
	}

	payload, err := json.Marshal(requests)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: marshal batch: %w", err)
	}

	body, err := c.transport.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	// A server that could not parse the array at all answers with a single
	// error object instead. We produce valid JSON, so that case is left to
	// surface as a decode error.
	var responses []Response
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, &errors.DecodeError{Cause: err}
	}

	return ReconcileBatch(requests, responses)
}

// Do builds a request, sends it, and decodes the result in one step.
func Do[T any](ctx context.Context, c *Client, method string, params ...any) (T, error) {
	resp, err := c.Call(ctx, c.BuildRequest(method, params...))
	if err != nil {
		var zero T
		return zero, err
	}

	return IntoResult[T](resp)
}
