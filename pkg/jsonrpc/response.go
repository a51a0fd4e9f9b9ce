package jsonrpc

import (
	"bytes"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/machinae/jrpc-go/pkg/errors"
)

/*
Response represents the JSON-RPC response object. Result and Error are
mutually exclusive by protocol contract, but the type does not enforce it —
extraction checks it contextually, and a response carrying neither is a
valid null result.
*/
type Response struct {
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
	ID      ID               `json:"id"`
	JSONRPC string           `json:"jsonrpc,omitempty"`
}

var rawNull = json.RawMessage("null")

// IsNullResult reports whether the result field is the JSON literal null.
func (r *Response) IsNullResult() bool {
	return bytes.Equal(r.Result, rawNull)
}

// IsResult reports whether the response carries a non-null result.
func (r *Response) IsResult() bool {
	return len(r.Result) != 0 && !r.IsNullResult()
}

// IsError reports whether the server attached an error object.
func (r *Response) IsError() bool {
	return r.Error != nil
}

/*
DecodeResult extracts the result into v. If the server reported an error it
is returned unchanged, regardless of whether a result is also present. An
absent result is treated as JSON null.
*/
func (r *Response) DecodeResult(v any) error {
	if r.Error != nil {
		return r.Error
	}

	raw := r.Result
	if len(raw) == 0 {
		raw = rawNull
	}

	if bytes.Equal(raw, rawNull) {
		return decodeNull(v)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return &errors.DecodeError{Cause: err}
	}

	return nil
}

// IntoResult extracts the result as a value of type T.
func IntoResult[T any](r *Response) (T, error) {
	var out T

	if err := r.DecodeResult(&out); err != nil {
		return out, err
	}

	return out, nil
}

/*
decodeNull assigns a null result to the target. encoding/json-style decoders
silently leave scalar targets untouched on null; here a null result only
decodes into targets that can actually represent null, so asking for a
string where the server returned null is a decoding failure rather than a
zero value.
*/
func decodeNull(v any) error {
	rv := reflect.ValueOf(v)

	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &errors.DecodeError{
			Cause: fmt.Errorf("target must be a non-nil pointer, got %T", v),
		}
	}

	elem := rv.Elem()

	switch elem.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		elem.SetZero()
		return nil
	case reflect.Struct:
		if elem.NumField() == 0 {
			return nil
		}
	}

	return &errors.DecodeError{
		Cause: fmt.Errorf("cannot decode null result into %s", elem.Type()),
	}
}
