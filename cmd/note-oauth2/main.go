package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mefengl/note-oauth2/pkg/interop"
	"github.com/mefengl/note-oauth2/pkg/payload"
	"github.com/mefengl/note-oauth2/pkg/result"
	"github.com/mefengl/note-oauth2/pkg/semerr"
)

func main() {
	var (
		grant = flag.String("grant", "token", `response variant to inspect, one of "token", "device", or "error"`)
		file  = flag.String("file", "-", `path to the response body, or "-" for stdin`)
	)
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name: "note-oauth2",
	})

	if err := run(os.Stdout, *grant, *file); err != nil {
		logger.Error("response rejected", "error", err)
		os.Exit(1)
	}
}

func run(w io.Writer, grant, file string) error {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return err
	}

	p, err := payload.Unmarshal(data)
	if err != nil {
		return err
	}

	switch grant {
	case "token":
		// An error envelope takes precedence over the requested success
		// variant.
		if err := semerr.FromResult(result.NewResult(p)); err != nil {
			return err
		}

		return inspectToken(w, result.NewToken(p))
	case "device":
		if err := semerr.FromResult(result.NewResult(p)); err != nil {
			return err
		}

		return inspectDeviceAuth(w, result.NewDeviceAuth(p))
	case "error":
		return inspectError(w, result.NewResult(p))
	default:
		return fmt.Errorf("unknown grant %q", grant)
	}
}

func inspectToken(w io.Writer, tok *result.Token) error {
	if err := tok.Validate(); err != nil {
		return err
	}

	accessToken, err := tok.AccessToken()
	if err != nil {
		return err
	}

	tokenType, err := tok.TokenType()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "access_token: %s\n", accessToken)
	fmt.Fprintf(w, "token_type: %s\n", tokenType)

	if tok.Payload().Has(result.FieldExpiresIn) {
		expiry, err := tok.AccessTokenExpiresAt()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "expires_at: %s\n", expiry.Format(time.RFC3339))
	}

	if tok.HasRefreshToken() {
		refreshToken, err := tok.RefreshToken()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "refresh_token: %s\n", refreshToken)
	}

	if tok.HasScopes() {
		scopes, err := tok.Scopes()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "scopes: %v\n", scopes)
	}

	printUnknown(w, tok.Payload(), result.FieldAccessToken, result.FieldTokenType,
		result.FieldExpiresIn, result.FieldRefreshToken, result.FieldScope, result.FieldState)
	return nil
}

func inspectDeviceAuth(w io.Writer, auth *result.DeviceAuth) error {
	if err := auth.Validate(); err != nil {
		return err
	}

	userCode, err := auth.UserCode()
	if err != nil {
		return err
	}

	uri, err := auth.VerificationURI()
	if err != nil {
		return err
	}

	if auth.HasVerificationURIComplete() {
		uri, err = auth.VerificationURIComplete()
		if err != nil {
			return err
		}
	}

	expiry, err := auth.CodesExpireAt()
	if err != nil {
		return err
	}

	interval, err := auth.IntervalSeconds()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "user_code: %s\n", userCode)
	fmt.Fprintf(w, "verification_uri: %s\n", uri)
	fmt.Fprintf(w, "codes_expire_at: %s\n", expiry.Format(time.RFC3339))
	fmt.Fprintf(w, "poll_interval: %ds\n", interval)
	fmt.Fprintf(w, "poll_grant_type: %s\n", interop.GrantTypeDeviceCode)

	printUnknown(w, auth.Payload(), result.FieldDeviceCode, result.FieldUserCode,
		result.FieldVerificationURI, result.FieldVerificationURIComplete,
		result.FieldExpiresIn, result.FieldInterval)
	return nil
}

func inspectError(w io.Writer, res *result.Result) error {
	code, err := res.ErrorCode()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "error: %s\n", code)

	if res.HasErrorDescription() {
		desc, err := res.ErrorDescription()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "error_description: %s\n", desc)
	}

	if res.HasErrorURI() {
		uri, err := res.ErrorURI()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "error_uri: %s\n", uri)
	}

	if res.HasState() {
		state, err := res.State()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "state: %s\n", state)
	}

	printUnknown(w, res.Payload(), result.FieldError, result.FieldErrorDescription,
		result.FieldErrorURI, result.FieldState)
	return nil
}

func printUnknown(w io.Writer, p payload.Payload, known ...string) {
	skip := make(map[string]bool, len(known))
	for _, key := range known {
		skip[key] = true
	}

	var extra []string
	for key := range p {
		if !skip[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	for _, key := range extra {
		fmt.Fprintf(w, "%s: (%s)\n", key, p.Kind(key))
	}
}
