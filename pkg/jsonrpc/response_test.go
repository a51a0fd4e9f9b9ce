package jsonrpc

import (
	goerrors "errors"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/machinae/jrpc-go/pkg/errors"
)

func TestResponseWireShape(t *testing.T) {
	// The batch response example from the jsonrpc.org specification.
	payload := `[
		{"jsonrpc": "2.0", "result": 7, "id": "1"},
		{"jsonrpc": "2.0", "result": 19, "id": "2"},
		{"jsonrpc": "2.0", "error": {"code": -32600, "message": "Invalid Request"}, "id": null},
		{"jsonrpc": "2.0", "error": {"code": -32601, "message": "Method not found"}, "id": "5"},
		{"jsonrpc": "2.0", "result": ["hello", 5], "id": "9"}
	]`

	var batch []Response
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(batch) != 5 {
		t.Fatalf("expected 5 responses, got %d", len(batch))
	}

	if !batch[0].ID.Equal(StringID("1")) {
		t.Fatalf("unexpected id: %s", batch[0].ID)
	}

	if !batch[2].ID.IsNull() {
		t.Fatalf("expected null id, got %s", batch[2].ID)
	}

	if batch[2].Error == nil || batch[2].Error.Code != -32600 {
		t.Fatalf("expected invalid request error, got %+v", batch[2].Error)
	}
}

func TestResultExtract(t *testing.T) {
	obj := []string{"Mary", "had", "a", "little", "lamb"}

	raw, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	response := Response{
		JSONRPC: Version,
		ID:      NullID(),
		Result:  raw,
	}

	var recovered1 []string
	if err := response.DecodeResult(&recovered1); err != nil {
		t.Fatalf("DecodeResult failed: %v", err)
	}

	recovered2, err := IntoResult[[]string](&response)
	if err != nil {
		t.Fatalf("IntoResult failed: %v", err)
	}

	for i := range obj {
		if recovered1[i] != obj[i] || recovered2[i] != obj[i] {
			t.Fatalf("round-trip mismatch: %v / %v", recovered1, recovered2)
		}
	}
}

func TestNullResult(t *testing.T) {
	payload := `{"result":null,"error":null,"id":"test"}`

	var response Response
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// A null result decodes into targets that can represent null.
	if _, err := IntoResult[struct{}](&response); err != nil {
		t.Fatalf("null into unit should succeed: %v", err)
	}

	if _, err := IntoResult[*int](&response); err != nil {
		t.Fatalf("null into pointer should succeed: %v", err)
	}

	// But not into a scalar.
	_, err := IntoResult[string](&response)

	var decodeErr *errors.DecodeError
	if !goerrors.As(err, &decodeErr) {
		t.Fatalf("null into string should fail with a DecodeError, got %v", err)
	}
}

func TestAbsentResultTreatedAsNull(t *testing.T) {
	response := Response{ID: NumberID(1)}

	if _, err := IntoResult[struct{}](&response); err != nil {
		t.Fatalf("absent result into unit should succeed: %v", err)
	}

	if _, err := IntoResult[int](&response); err == nil {
		t.Fatal("absent result into int should fail")
	}
}

func TestErrorWinsOverResult(t *testing.T) {
	// A malfunctioning server set both fields; the error takes precedence.
	response := Response{
		ID:     NumberID(1),
		Result: json.RawMessage(`"ignored"`),
		Error:  &errors.RpcError{Code: -32000, Message: "server fault"},
	}

	var out string
	err := response.DecodeResult(&out)

	var rpcErr *errors.RpcError
	if !goerrors.As(err, &rpcErr) {
		t.Fatalf("expected the RpcError, got %v", err)
	}

	if rpcErr.Code != -32000 || rpcErr.Message != "server fault" {
		t.Fatalf("error must surface unchanged, got %+v", rpcErr)
	}
}

func TestResultDecodeMismatch(t *testing.T) {
	response := Response{ID: NumberID(1), Result: json.RawMessage(`7`)}

	_, err := IntoResult[string](&response)

	var decodeErr *errors.DecodeError
	if !goerrors.As(err, &decodeErr) {
		t.Fatalf("expected a DecodeError, got %v", err)
	}

	if decodeErr.Unwrap() == nil {
		t.Fatal("DecodeError must carry the underlying cause")
	}
}

func TestResponsePredicates(t *testing.T) {
	cases := []struct {
		name       string
		response   Response
		isResult   bool
		isError    bool
		nullResult bool
	}{
		{
			name:     "result set",
			response: Response{Result: json.RawMessage(`true`)},
			isResult: true,
		},
		{
			name:       "null result",
			response:   Response{Result: json.RawMessage(`null`)},
			nullResult: true,
		},
		{
			name:     "neither set",
			response: Response{},
		},
		{
			name:     "error set",
			response: Response{Error: errors.ErrMethodNotFound},
			isError:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.response.IsResult(); got != tc.isResult {
				t.Fatalf("IsResult = %v, want %v", got, tc.isResult)
			}
			if got := tc.response.IsError(); got != tc.isError {
				t.Fatalf("IsError = %v, want %v", got, tc.isError)
			}
			if got := tc.response.IsNullResult(); got != tc.nullResult {
				t.Fatalf("IsNullResult = %v, want %v", got, tc.nullResult)
			}
		})
	}
}
