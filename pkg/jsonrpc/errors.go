package jsonrpc

import (
	"errors"
	"fmt"
)

// Correlation failures are returned to the immediate caller as typed errors
// and never retried internally: a duplicate or mismatched batch response may
// indicate a condition that is unsafe to retry.
var (
	// ErrVersionMismatch means the response declared a protocol version
	// other than "2.0". An absent version field is tolerated.
	ErrVersionMismatch = errors.New("jsonrpc: response declares an unsupported protocol version")

	// ErrNonceMismatch means a single response's id does not match the id
	// of the request it is being validated against.
	ErrNonceMismatch = errors.New("jsonrpc: response id does not match request id")

	// ErrEmptyBatch means a zero-length batch was built or reconciled,
	// which is a client-side usage error.
	ErrEmptyBatch = errors.New("jsonrpc: empty request batch")

	// ErrWrongBatchResponseSize means the server returned more responses
	// than requests were sent.
	ErrWrongBatchResponseSize = errors.New("jsonrpc: server returned more responses than requests")
)

/*
BatchDuplicateIDError means two or more responses in a batch shared the same
id. It carries the first response stored under that id, not the later
duplicate, so the report is reproducible regardless of how the server
ordered its answers.
*/
type BatchDuplicateIDError struct {
	Response Response
}

func (e *BatchDuplicateIDError) Error() string {
	return fmt.Sprintf("jsonrpc: batch contains duplicate response id %s", e.Response.ID)
}

/*
UnknownBatchIDError means a response's id did not correspond to any request
in the batch. It carries the first such response in insertion order.
*/
type UnknownBatchIDError struct {
	Response Response
}

func (e *UnknownBatchIDError) Error() string {
	return fmt.Sprintf("jsonrpc: batch response id %s matches no request", e.Response.ID)
}
