// Package result wraps parsed OAuth 2.0 response bodies with accessors that
// check each field's presence and JSON type at the point of use.
//
// The wrappers hold the payload exactly as deserialized and derive nothing
// from it up front; a response is never rejected for what a caller does not
// ask about. Accessors re-read the payload on every call, so a wrapper may
// be shared freely between goroutines.
package result

import (
	"math"
	"time"

	"github.com/mefengl/note-oauth2/pkg/payload"
	"k8s.io/utils/clock"
)

// Field names common to every response variant, per
// https://tools.ietf.org/html/rfc6749#section-5.2 and
// https://tools.ietf.org/html/rfc6749#section-4.1.2.1.
const (
	FieldError            = "error"
	FieldErrorDescription = "error_description"
	FieldErrorURI         = "error_uri"
	FieldState            = "state"
)

// Result wraps one response body and exposes the error envelope any OAuth
// 2.0 endpoint can return. A token revocation endpoint (RFC 7009) answers
// with an empty body on success and a standard error body on failure, so
// Result alone covers revocation responses.
type Result struct {
	payload payload.Payload
	clock   clock.PassiveClock
}

// NewResult wraps an already-deserialized response body. The wrapper takes
// ownership of the payload, which must not be mutated afterward.
func NewResult(p payload.Payload, opts ...Option) *Result {
	o := &Options{
		Clock: clock.RealClock{},
	}
	o.ApplyOptions(opts)

	return &Result{
		payload: p,
		clock:   o.Clock,
	}
}

// Payload returns the wrapped response body.
func (r *Result) Payload() payload.Payload {
	return r.payload
}

// HasErrorCode reports whether the response carries a usable "error" field,
// i.e. whether the server rejected the request.
func (r *Result) HasErrorCode() bool {
	return r.hasString(FieldError)
}

// ErrorCode returns the "error" field of an error response.
func (r *Result) ErrorCode() (string, error) {
	return r.stringField(FieldError)
}

func (r *Result) HasErrorDescription() bool {
	return r.hasString(FieldErrorDescription)
}

// ErrorDescription returns the optional human-readable "error_description"
// field.
func (r *Result) ErrorDescription() (string, error) {
	return r.stringField(FieldErrorDescription)
}

func (r *Result) HasErrorURI() bool {
	return r.hasString(FieldErrorURI)
}

// ErrorURI returns the optional "error_uri" field pointing at a
// human-readable error page.
func (r *Result) ErrorURI() (string, error) {
	return r.stringField(FieldErrorURI)
}

func (r *Result) HasState() bool {
	return r.hasString(FieldState)
}

// State returns the "state" field an authorization server echoes back when
// the corresponding request carried one.
func (r *Result) State() (string, error) {
	return r.stringField(FieldState)
}

func (r *Result) hasString(name string) bool {
	_, ok := r.payload.String(name)
	return ok
}

func (r *Result) stringField(name string) (string, error) {
	v, ok := r.payload.String(name)
	if !ok {
		return "", &MissingOrInvalidFieldError{Field: name}
	}

	return v, nil
}

// secondsField reads a numeric field that must fit in int32.
func (r *Result) secondsField(name string) (int32, error) {
	v, ok := r.payload.Number(name)
	if !ok || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &MissingOrInvalidFieldError{Field: name}
	}

	return int32(v), nil
}

// expiryField must not read the clock unless the field validates.
func (r *Result) expiryField(name string) (time.Time, error) {
	secs, err := r.secondsField(name)
	if err != nil {
		return time.Time{}, err
	}

	return r.clock.Now().Add(time.Duration(secs) * time.Second), nil
}
