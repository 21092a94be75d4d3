package result

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mefengl/note-oauth2/pkg/payload"
)

// Field names for token issuance responses, per
// https://tools.ietf.org/html/rfc6749#section-5.1. FieldExpiresIn is shared
// with device authorization responses.
const (
	FieldAccessToken  = "access_token"
	FieldTokenType    = "token_type"
	FieldExpiresIn    = "expires_in"
	FieldRefreshToken = "refresh_token"
	FieldScope        = "scope"
)

// Token is the result of a token endpoint request (RFC 6749), whichever
// grant type produced it.
type Token struct {
	Result
}

func NewToken(p payload.Payload, opts ...Option) *Token {
	return &Token{Result: *NewResult(p, opts...)}
}

// TokenType returns the required "token_type" field, e.g. "Bearer".
func (t *Token) TokenType() (string, error) {
	return t.stringField(FieldTokenType)
}

// AccessToken returns the required "access_token" field.
func (t *Token) AccessToken() (string, error) {
	return t.stringField(FieldAccessToken)
}

// AccessTokenExpiresInSeconds returns the "expires_in" field, the access
// token lifetime in seconds relative to when the response was issued.
func (t *Token) AccessTokenExpiresInSeconds() (int32, error) {
	return t.secondsField(FieldExpiresIn)
}

// AccessTokenExpiresAt resolves "expires_in" against the current clock
// reading. The lifetime in the response is relative to now, so two calls at
// different times return different timestamps; callers wanting a stable
// anchor should call this once, immediately after receiving the response.
func (t *Token) AccessTokenExpiresAt() (time.Time, error) {
	return t.expiryField(FieldExpiresIn)
}

// HasRefreshToken reports whether the server issued a refresh token
// alongside the access token.
func (t *Token) HasRefreshToken() bool {
	return t.hasString(FieldRefreshToken)
}

// RefreshToken returns the "refresh_token" field.
func (t *Token) RefreshToken() (string, error) {
	return t.stringField(FieldRefreshToken)
}

// HasScopes reports whether the response carries a usable "scope" field.
// Servers must send one when the granted scope differs from the requested
// scope, and may send one always.
func (t *Token) HasScopes() bool {
	return t.hasString(FieldScope)
}

// Scopes splits the "scope" field on single spaces per the RFC 6749 scope
// grammar. The split is exact, with no trimming or deduplication: an empty
// value yields one empty scope, and consecutive spaces yield empty
// elements.
func (t *Token) Scopes() ([]string, error) {
	v, err := t.stringField(FieldScope)
	if err != nil {
		return nil, err
	}

	return strings.Split(v, " "), nil
}

// Validate checks the fields RFC 6749 requires of a successful token
// response, accumulating an error per missing or mistyped field. It does
// not look at the error envelope; use semerr.FromResult to detect error
// responses first.
func (t *Token) Validate() error {
	var errs *multierror.Error

	for _, field := range []string{FieldAccessToken, FieldTokenType} {
		if _, err := t.stringField(field); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}
