// Package payload models a deserialized OAuth 2.0 response body as an
// untyped JSON object with type-checked access to its members.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Payload is a single deserialized JSON object, such as the body of a token
// endpoint response. It is produced by an external HTTP layer (or by
// Unmarshal) and handed to a result wrapper, which becomes its owner.
// Nothing in this module modifies a Payload after construction.
type Payload map[string]interface{}

// Kind identifies the JSON type of a value stored in a Payload.
type Kind int

const (
	// KindInvalid is reported for absent keys and for values no JSON
	// decoder would produce.
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Unmarshal decodes a response body into a Payload. The top level of every
// OAuth 2.0 response body is a single JSON object, so arrays, scalars,
// null, and bodies with trailing data are rejected here; result wrappers
// assume this precondition and do not check it again. Numbers are retained
// as json.Number.
func Unmarshal(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("response body must be a JSON object, not %s", kindOf(v))
	}

	// Decode stops at the end of the first value and ignores the rest of
	// the input.
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("response body must be a single JSON object")
	}

	return Payload(obj), nil
}

// Has reports whether key is present at all, regardless of its type.
func (p Payload) Has(key string) bool {
	_, found := p[key]
	return found
}

// Kind reports the JSON type of the value stored under key.
func (p Payload) Kind(key string) Kind {
	v, found := p[key]
	if !found {
		return KindInvalid
	}
	return kindOf(v)
}

// String returns the value under key when it is present and is a JSON
// string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Number returns the value under key when it is present and numeric. A
// numeric value may arrive as float64 (encoding/json's default), as
// json.Number (a decoder in UseNumber mode, including Unmarshal), or as a
// native Go numeric type when the payload was built by hand.
func (p Payload) Number(key string) (float64, bool) {
	v, found := p[key]
	if !found {
		return 0, false
	}
	return numberValue(v)
}

// Bool returns the value under key when it is present and is a JSON
// boolean.
func (p Payload) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

// Object returns the value under key when it is present and is a nested
// JSON object.
func (p Payload) Object(key string) (Payload, bool) {
	switch t := p[key].(type) {
	case map[string]interface{}:
		return Payload(t), true
	case Payload:
		return t, true
	default:
		return nil, false
	}
}

// Array returns the value under key when it is present and is a JSON array.
func (p Payload) Array(key string) ([]interface{}, bool) {
	a, ok := p[key].([]interface{})
	return a, ok
}

// IsNull reports whether key is present with an explicit JSON null, as
// opposed to being absent.
func (p Payload) IsNull(key string) bool {
	v, found := p[key]
	return found && v == nil
}

func numberValue(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func kindOf(v interface{}) Kind {
	if v == nil {
		return KindNull
	}

	switch v.(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	case map[string]interface{}, Payload:
		return KindObject
	case []interface{}:
		return KindArray
	}

	if _, ok := numberValue(v); ok {
		return KindNumber
	}

	return KindInvalid
}
