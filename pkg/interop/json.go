// Package interop bridges the untyped payload model to the typed structures
// the rest of the Go OAuth 2.0 ecosystem trades in.
package interop

import (
	"github.com/mefengl/note-oauth2/pkg/payload"
	"github.com/mefengl/note-oauth2/pkg/result"
)

// JSONToken represents the JSON body of an RFC 6749 token issuance
// response.
//
// It is not an oauth2.Token, which is also serializable as JSON but does
// not correspond to the response data.
type JSONToken struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int32  `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Payload converts the token to the untyped payload model, the same shape a
// wrapper would receive from a deserialized response body. Zero-valued
// optional fields are left out, matching their omitempty serialization.
func (t *JSONToken) Payload() payload.Payload {
	p := payload.Payload{
		result.FieldAccessToken: t.AccessToken,
		result.FieldTokenType:   t.TokenType,
	}
	if t.ExpiresIn != 0 {
		p[result.FieldExpiresIn] = int64(t.ExpiresIn)
	}
	if t.RefreshToken != "" {
		p[result.FieldRefreshToken] = t.RefreshToken
	}
	if t.Scope != "" {
		p[result.FieldScope] = t.Scope
	}

	return p
}

// JSONError represents the JSON body of an RFC 6749 error response.
type JSONError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

// Payload converts the error envelope to the untyped payload model.
func (e *JSONError) Payload() payload.Payload {
	p := payload.Payload{
		result.FieldError: e.Error,
	}
	if e.ErrorDescription != "" {
		p[result.FieldErrorDescription] = e.ErrorDescription
	}
	if e.ErrorURI != "" {
		p[result.FieldErrorURI] = e.ErrorURI
	}

	return p
}

// JSONDeviceAuth represents the JSON body of an RFC 8628 device
// authorization response.
type JSONDeviceAuth struct {
	DeviceCode              string `json:"device_code"`
	UserCode                string `json:"user_code"`
	VerificationURI         string `json:"verification_uri"`
	VerificationURIComplete string `json:"verification_uri_complete,omitempty"`
	ExpiresIn               int32  `json:"expires_in"`
	Interval                int32  `json:"interval,omitempty"`
}

// Payload converts the device authorization to the untyped payload model.
func (a *JSONDeviceAuth) Payload() payload.Payload {
	p := payload.Payload{
		result.FieldDeviceCode:      a.DeviceCode,
		result.FieldUserCode:        a.UserCode,
		result.FieldVerificationURI: a.VerificationURI,
		result.FieldExpiresIn:       int64(a.ExpiresIn),
	}
	if a.VerificationURIComplete != "" {
		p[result.FieldVerificationURIComplete] = a.VerificationURIComplete
	}
	if a.Interval != 0 {
		p[result.FieldInterval] = int64(a.Interval)
	}

	return p
}
