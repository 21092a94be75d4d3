// Package semerr classifies authorization server rejections so callers can
// tell terminal caller faults from conditions worth waiting out.
package semerr

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/mefengl/note-oauth2/pkg/interop"
	"github.com/mefengl/note-oauth2/pkg/result"
	"github.com/puppetlabs/leg/errmap/pkg/errmark"
	"golang.org/x/oauth2"
)

// Error codes an authorization server can emit in the standard error
// envelope.
const (
	// https://tools.ietf.org/html/rfc6749#section-5.2
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidClient        = "invalid_client"
	CodeInvalidGrant         = "invalid_grant"
	CodeUnauthorizedClient   = "unauthorized_client"
	CodeUnsupportedGrantType = "unsupported_grant_type"
	CodeInvalidScope         = "invalid_scope"

	// Device access token responses.
	// https://tools.ietf.org/html/rfc8628#section-3.5
	CodeAuthorizationPending = "authorization_pending"
	CodeSlowDown             = "slow_down"
	CodeAccessDenied         = "access_denied"
	CodeExpiredToken         = "expired_token"

	// Token revocation responses.
	// https://tools.ietf.org/html/rfc7009#section-2.2.1
	CodeUnsupportedTokenType = "unsupported_token_type"
)

type Error struct {
	Code        string
	Description string
	URI         string
}

func (e *Error) Error() string {
	msg := "server rejected request: " + e.Code
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.URI != "" {
		msg += " (see " + e.URI + ")"
	}
	return msg
}

func IsCode(err error, code string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Code == code
}

func RuleCode(code string) errmark.Rule {
	return errmark.RuleFunc(func(err error) bool {
		return IsCode(err, code)
	})
}

// ruleUser matches the codes that terminally indicate a fault in the
// caller's request or credentials. The RFC 8628 polling signals
// authorization_pending and slow_down are excluded: they ask the caller to
// keep going, not to stop.
func ruleUser() errmark.Rule {
	return errmark.RuleAny(
		RuleCode(CodeInvalidRequest),
		RuleCode(CodeInvalidClient),
		RuleCode(CodeInvalidGrant),
		RuleCode(CodeUnauthorizedClient),
		RuleCode(CodeUnsupportedGrantType),
		RuleCode(CodeInvalidScope),
		RuleCode(CodeAccessDenied),
		RuleCode(CodeExpiredToken),
		RuleCode(CodeUnsupportedTokenType),
	)
}

// FromResult inspects a parsed response for the standard error envelope. It
// returns nil when the payload carries no "error" field. Otherwise the
// rejection comes back as an *Error, marked as a user error for the codes
// that indicate a terminal caller fault; the optional description and URI
// ride along when they are well-formed. A mistyped "error" field surfaces as
// the field error instead.
func FromResult(r *result.Result) error {
	if !r.Payload().Has(result.FieldError) {
		return nil
	}

	code, err := r.ErrorCode()
	if err != nil {
		return err
	}

	e := &Error{Code: code}
	if v, err := r.ErrorDescription(); err == nil {
		e.Description = v
	}
	if v, err := r.ErrorURI(); err == nil {
		e.URI = v
	}

	return errmark.MarkUserIf(e, ruleUser())
}

// Map converts an error returned by an x/oauth2 exchange into a semantic
// error where possible. Network failures are marked transient. A retrieval
// error with a 400, 401, or 403 status and a standard error envelope in its
// body becomes an *Error as in FromResult; anything else passes through
// unchanged.
func Map(cerr error) error {
	if cerr == nil {
		return nil
	}

	var nerr *net.OpError
	if errors.As(cerr, &nerr) {
		// Probably a server hiccup. Let the caller retry.
		return errmark.MarkTransient(cerr)
	}

	rerr, ok := cerr.(*oauth2.RetrieveError)
	if !ok {
		return cerr
	}

	switch rerr.Response.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
	default:
		return cerr
	}

	var env interop.JSONError
	if err := json.Unmarshal(rerr.Body, &env); err != nil || env.Error == "" {
		return cerr
	}

	return errmark.MarkUserIf(
		&Error{
			Code:        env.Error,
			Description: env.ErrorDescription,
			URI:         env.ErrorURI,
		},
		ruleUser(),
	)
}
