package errors

import "fmt"

/*
DecodeError wraps the underlying JSON error raised while decoding a result
payload into the caller's expected type.
*/
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode result: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
