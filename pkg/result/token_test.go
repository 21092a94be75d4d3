package result_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mefengl/note-oauth2/pkg/payload"
	"github.com/mefengl/note-oauth2/pkg/result"
	"github.com/mefengl/note-oauth2/pkg/testutil"
	"github.com/stretchr/testify/require"
	testclock "k8s.io/utils/clock/testing"
)

func TestTokenAccessors(t *testing.T) {
	tok := result.NewToken(payload.Payload{
		"access_token":  "abc123",
		"token_type":    "Bearer",
		"expires_in":    3600,
		"refresh_token": "def456",
		"scope":         "read write",
	})

	tokenType, err := tok.TokenType()
	require.NoError(t, err)
	require.Equal(t, "Bearer", tokenType)

	accessToken, err := tok.AccessToken()
	require.NoError(t, err)
	require.Equal(t, "abc123", accessToken)

	secs, err := tok.AccessTokenExpiresInSeconds()
	require.NoError(t, err)
	require.Equal(t, int32(3600), secs)

	require.True(t, tok.HasRefreshToken())

	refreshToken, err := tok.RefreshToken()
	require.NoError(t, err)
	require.Equal(t, "def456", refreshToken)

	require.False(t, tok.HasErrorCode())
	require.NoError(t, tok.Validate())
}

func TestTokenFieldErrors(t *testing.T) {
	tests := []struct {
		Name          string
		Payload       payload.Payload
		Call          func(*result.Token) error
		ExpectedField string
	}{
		{
			Name:    "access token absent",
			Payload: payload.Payload{"token_type": "Bearer"},
			Call: func(tok *result.Token) error {
				_, err := tok.AccessToken()
				return err
			},
			ExpectedField: result.FieldAccessToken,
		},
		{
			Name:    "access token mistyped",
			Payload: payload.Payload{"access_token": 42, "token_type": "Bearer"},
			Call: func(tok *result.Token) error {
				_, err := tok.AccessToken()
				return err
			},
			ExpectedField: result.FieldAccessToken,
		},
		{
			Name:    "token type absent",
			Payload: payload.Payload{"access_token": "abc123"},
			Call: func(tok *result.Token) error {
				_, err := tok.TokenType()
				return err
			},
			ExpectedField: result.FieldTokenType,
		},
		{
			Name:    "expiry absent",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer"},
			Call: func(tok *result.Token) error {
				_, err := tok.AccessTokenExpiresInSeconds()
				return err
			},
			ExpectedField: result.FieldExpiresIn,
		},
		{
			Name:    "expiry mistyped",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer", "expires_in": "3600"},
			Call: func(tok *result.Token) error {
				_, err := tok.AccessTokenExpiresInSeconds()
				return err
			},
			ExpectedField: result.FieldExpiresIn,
		},
		{
			Name:    "expiry out of range",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer", "expires_in": json.Number("10000000000")},
			Call: func(tok *result.Token) error {
				_, err := tok.AccessTokenExpiresInSeconds()
				return err
			},
			ExpectedField: result.FieldExpiresIn,
		},
		{
			Name:    "refresh token mistyped",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer", "refresh_token": false},
			Call: func(tok *result.Token) error {
				_, err := tok.RefreshToken()
				return err
			},
			ExpectedField: result.FieldRefreshToken,
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			err := test.Call(result.NewToken(test.Payload))

			var ferr *result.MissingOrInvalidFieldError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, test.ExpectedField, ferr.Field)
		})
	}
}

func TestAccessTokenExpiryTracksClock(t *testing.T) {
	base := time.Date(2021, time.January, 2, 15, 4, 5, 0, time.UTC)
	clk := testclock.NewFakeClock(base)

	tok := result.NewToken(payload.Payload{
		"access_token": "abc123",
		"token_type":   "Bearer",
		"expires_in":   900,
	}, result.WithClock{PassiveClock: clk})

	expiry, err := tok.AccessTokenExpiresAt()
	require.NoError(t, err)
	require.Equal(t, base.Add(900*time.Second), expiry)

	// The lifetime is relative to now, so the computed timestamp drifts with
	// the clock.
	clk.Step(30 * time.Second)

	expiry, err = tok.AccessTokenExpiresAt()
	require.NoError(t, err)
	require.Equal(t, base.Add(930*time.Second), expiry)

	secs, err := tok.AccessTokenExpiresInSeconds()
	require.NoError(t, err)
	require.Equal(t, int32(900), secs)
}

func TestAccessTokenExpiryValidatesBeforeClockRead(t *testing.T) {
	tests := []struct {
		Name    string
		Payload payload.Payload
	}{
		{
			Name:    "absent",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer"},
		},
		{
			Name:    "mistyped",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer", "expires_in": "3600"},
		},
		{
			Name:    "out of range",
			Payload: payload.Payload{"access_token": "abc123", "token_type": "Bearer", "expires_in": json.Number("10000000000")},
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			tok := result.NewToken(test.Payload, result.WithClock{PassiveClock: brokenClock{t: t}})

			_, err := tok.AccessTokenExpiresAt()

			var ferr *result.MissingOrInvalidFieldError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, result.FieldExpiresIn, ferr.Field)
		})
	}
}

func TestScopes(t *testing.T) {
	tests := []struct {
		Name           string
		Scope          interface{}
		ExpectedScopes []string
		ExpectedError  string
	}{
		{
			Name:           "single",
			Scope:          "read",
			ExpectedScopes: []string{"read"},
		},
		{
			Name:           "multiple",
			Scope:          "read write admin",
			ExpectedScopes: []string{"read", "write", "admin"},
		},
		{
			Name:           "empty string",
			Scope:          "",
			ExpectedScopes: []string{""},
		},
		{
			Name:           "consecutive spaces",
			Scope:          "read  write",
			ExpectedScopes: []string{"read", "", "write"},
		},
		{
			Name:          "mistyped",
			Scope:         42,
			ExpectedError: `server response missing or invalid field "scope"`,
		},
		{
			Name:          "absent",
			ExpectedError: `server response missing or invalid field "scope"`,
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			p := payload.Payload{"access_token": "abc123", "token_type": "Bearer"}
			if test.Scope != nil {
				p[result.FieldScope] = test.Scope
			}

			tok := result.NewToken(p)

			scopes, err := tok.Scopes()
			if test.ExpectedError != "" {
				require.EqualError(t, err, test.ExpectedError)
				require.False(t, tok.HasScopes())
				return
			}

			require.NoError(t, err)
			require.True(t, tok.HasScopes())
			require.Equal(t, test.ExpectedScopes, scopes)
		})
	}
}

func TestErrorResponseThroughTokenView(t *testing.T) {
	tok := result.NewToken(payload.Payload{
		"error":             "invalid_grant",
		"error_description": "Device code expired",
	})

	require.True(t, tok.HasErrorCode())

	code, err := tok.ErrorCode()
	require.NoError(t, err)
	require.Equal(t, "invalid_grant", code)

	require.False(t, tok.HasRefreshToken())

	var ferr *result.MissingOrInvalidFieldError

	_, err = tok.RefreshToken()
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, result.FieldRefreshToken, ferr.Field)

	_, err = tok.AccessToken()
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, result.FieldAccessToken, ferr.Field)
}

func TestTokenValidate(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		tok := result.NewToken(testutil.TokenFixture().Payload())
		require.NoError(t, tok.Validate())
	})

	t.Run("empty payload", func(t *testing.T) {
		err := result.NewToken(payload.Payload{}).Validate()

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		require.Len(t, merr.Errors, 2)

		var fields []string
		for _, each := range merr.Errors {
			var ferr *result.MissingOrInvalidFieldError
			require.ErrorAs(t, each, &ferr)
			fields = append(fields, ferr.Field)
		}
		require.Equal(t, []string{result.FieldAccessToken, result.FieldTokenType}, fields)
	})
}
