package mf2

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
)

// TextUnmarshalerPtr is satisfied by *T when T can be parsed from text.
type TextUnmarshalerPtr[T any] interface {
	*T
	encoding.TextUnmarshaler
}

// ParseString is the parser for plain string targets. It never fails.
func ParseString(s string) (string, error) {
	return s, nil
}

// ParseText parses s through T's UnmarshalText, so any text-parseable type
// (time.Time, netip.Addr, ...) can be the target of DecodeScalar.
func ParseText[T any, PT TextUnmarshalerPtr[T]](s string) (T, error) {
	var v T
	if err := PT(&v).UnmarshalText([]byte(s)); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeScalar decodes a property that mf2 JSON may carry either as a bare
// string or as an array holding the value.
//
// A string is handed to parse. For an array only the first element is decoded,
// as a T through encoding/json; the remaining elements are never looked at.
// An empty array fails with ErrEmptySequence and every other JSON shape with
// ErrTypeMismatch.
func DecodeScalar[T any](data []byte, parse func(string) (T, error)) (T, error) {
	var zero T
	switch jsonKind(data) {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		v, err := parse(s)
		if err != nil {
			return zero, fmt.Errorf("%w: %q: %v", ErrParseFailure, s, err)
		}
		return v, nil
	case '[':
		return firstElement[T](data)
	default:
		return zero, fmt.Errorf("%w: expected string or array, got %s", ErrTypeMismatch, describe(data))
	}
}

func firstElement[T any](data []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	if !dec.More() {
		return zero, fmt.Errorf("%w: no value found", ErrEmptySequence)
	}
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return zero, fmt.Errorf("%w: first element: %v", ErrTypeMismatch, err)
	}
	// encoding/json treats null as a no-op, which would hide a missing value.
	if jsonKind(raw) == 'n' {
		return zero, fmt.Errorf("%w: first element is null", ErrTypeMismatch)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("%w: first element: %v", ErrTypeMismatch, err)
	}
	return v, nil
}

// jsonKind returns the first significant byte of a JSON value, or 0 if empty.
func jsonKind(data []byte) byte {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func describe(data []byte) string {
	switch k := jsonKind(data); {
	case k == '{':
		return "object"
	case k == '[':
		return "array"
	case k == '"':
		return "string"
	case k == 't' || k == 'f':
		return "boolean"
	case k == 'n':
		return "null"
	case k == '-' || (k >= '0' && k <= '9'):
		return "number"
	default:
		return "invalid JSON"
	}
}
