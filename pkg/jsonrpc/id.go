package jsonrpc

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

/*
ID is a JSON-RPC identifier: a JSON value that is, by protocol convention, a
string, a number, or null. The type itself does not enforce the convention —
an array or object id is accepted and keyed by its serialized form, so
reconciliation stays deterministic even for non-conforming servers.

Equality is structural equality of the underlying JSON value, so an ID
decoded off the wire compares equal to the ID it echoes regardless of
whitespace or object key order. The zero value is the null id.
*/
type ID struct {
	// canonical serialized form; empty means null
	raw json.RawMessage
}

// NullID returns the null identifier. A server answers with a null id when
// it could not parse the request far enough to know which id to echo.
func NullID() ID {
	return ID{}
}

// NumberID returns a numeric identifier. The client's request builder issues
// these from its nonce counter.
func NumberID(n uint64) ID {
	raw, _ := json.Marshal(n)
	return ID{raw: raw}
}

// StringID returns a string identifier.
func StringID(s string) ID {
	raw, _ := json.Marshal(s)
	return ID{raw: raw}
}

// NewID builds an identifier from any JSON-marshalable value, normalising it
// to its canonical serialized form.
func NewID(v any) (ID, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return ID{}, fmt.Errorf("jsonrpc: invalid id value: %w", err)
	}

	var id ID
	if err := id.UnmarshalJSON(raw); err != nil {
		return ID{}, err
	}

	return id, nil
}

// IsNull reports whether the identifier is JSON null.
func (id ID) IsNull() bool {
	return len(id.raw) == 0
}

/*
Key returns the canonical serialized form of the identifier. Equal ids
always produce the same key, so it is safe to use as a map key during batch
reconciliation.
*/
func (id ID) Key() string {
	if len(id.raw) == 0 {
		return "null"
	}

	return string(id.raw)
}

// Equal reports structural equality of the two identifiers.
func (id ID) Equal(other ID) bool {
	return id.Key() == other.Key()
}

func (id ID) String() string {
	return id.Key()
}

func (id ID) MarshalJSON() ([]byte, error) {
	if len(id.raw) == 0 {
		return []byte("null"), nil
	}

	return id.raw, nil
}

/*
UnmarshalJSON canonicalises the wire form by decoding and re-encoding the
value. Numbers are kept as their literal text so large ids survive the
round trip without losing precision.
*/
func (id *ID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("jsonrpc: invalid id: %w", err)
	}

	if v == nil {
		id.raw = nil
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsonrpc: invalid id: %w", err)
	}

	id.raw = raw
	return nil
}
