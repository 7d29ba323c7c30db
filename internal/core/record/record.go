// Package record holds the JSON document type shared by the todo and project registry mergers.
//
// A Record is kept as raw JSON and edited in place by path, so keys the mergers
// never mention survive a save untouched and in their original order.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformedInput is returned when persisted content is not a JSON object.
var ErrMalformedInput = errors.New("malformed input")

// Record is a top-level JSON object.
type Record struct {
	raw []byte
}

// Parse validates data as a JSON object and wraps it.
func Parse(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if !gjson.ValidBytes(trimmed) {
		return Record{}, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}
	if !gjson.ParseBytes(trimmed).IsObject() {
		return Record{}, fmt.Errorf("%w: top-level value is not an object", ErrMalformedInput)
	}
	raw := make([]byte, len(trimmed))
	copy(raw, trimmed)
	return Record{raw: raw}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(data string) Record {
	r, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the value at a gjson path.
func (r Record) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// Set writes a Go value at path, appending the key if it is new.
func (r *Record) Set(path string, value any) error {
	out, err := sjson.SetBytes(r.raw, path, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	r.raw = out
	return nil
}

// SetRaw writes pre-encoded JSON at path.
func (r *Record) SetRaw(path, rawJSON string) error {
	out, err := sjson.SetRawBytes(r.raw, path, []byte(rawJSON))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	r.raw = out
	return nil
}

// EnsureObject replaces the value at path with {} unless it already is an object.
func (r *Record) EnsureObject(path string) error {
	if r.Get(path).IsObject() {
		return nil
	}
	return r.SetRaw(path, "{}")
}

// EnsureArray replaces the value at path with [] unless it already is an array.
func (r *Record) EnsureArray(path string) error {
	if r.Get(path).IsArray() {
		return nil
	}
	return r.SetRaw(path, "[]")
}

// Format renders the record with two-space indentation and no trailing newline.
func (r Record) Format() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format record: %w", err)
	}
	return buf.Bytes(), nil
}

// Truthy reports whether v is present and not null, false, zero or an empty string.
func Truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	default:
		return true
	}
}

// Clone returns a record backed by its own copy of the JSON.
func (r Record) Clone() Record {
	raw := make([]byte, len(r.raw))
	copy(raw, r.raw)
	return Record{raw: raw}
}
