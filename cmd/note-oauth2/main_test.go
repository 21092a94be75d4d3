package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		Name          string
		Grant         string
		Body          string
		ExpectedLines []string
		ExpectedError string
	}{
		{
			Name:  "token response",
			Grant: "token",
			Body:  `{"access_token": "abc123", "token_type": "Bearer", "refresh_token": "def456", "scope": "read write"}`,
			ExpectedLines: []string{
				"access_token: abc123",
				"token_type: Bearer",
				"refresh_token: def456",
				"scopes: [read write]",
			},
		},
		{
			Name:  "device authorization response",
			Grant: "device",
			Body:  `{"device_code": "GmRhmhcxhwAzkoEqiMEg_DnyEysNkuNhszIySk9eS", "user_code": "WDJB-MJHT", "verification_uri": "https://example.com/device", "expires_in": 1800}`,
			ExpectedLines: []string{
				"user_code: WDJB-MJHT",
				"verification_uri: https://example.com/device",
				"poll_interval: 5s",
				"poll_grant_type: urn:ietf:params:oauth:grant-type:device_code",
			},
		},
		{
			Name:  "error envelope",
			Grant: "error",
			Body:  `{"error": "access_denied", "error_description": "Denied by user", "state": "xyz"}`,
			ExpectedLines: []string{
				"error: access_denied",
				"error_description: Denied by user",
				"state: xyz",
			},
		},
		{
			Name:          "error variant without an envelope",
			Grant:         "error",
			Body:          `{"access_token": "abc123", "token_type": "Bearer"}`,
			ExpectedError: `server response missing or invalid field "error"`,
		},
		{
			Name:          "envelope preempts the token variant",
			Grant:         "token",
			Body:          `{"error": "invalid_grant", "error_description": "Code expired"}`,
			ExpectedError: "server rejected request: invalid_grant: Code expired",
		},
		{
			Name:          "envelope preempts the device variant",
			Grant:         "device",
			Body:          `{"error": "expired_token"}`,
			ExpectedError: "server rejected request: expired_token",
		},
		{
			Name:          "unknown grant",
			Grant:         "password",
			Body:          `{}`,
			ExpectedError: `unknown grant "password"`,
		},
		{
			Name:          "non-object body",
			Grant:         "token",
			Body:          `[]`,
			ExpectedError: "response body must be a JSON object, not array",
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "body.json")
			require.NoError(t, os.WriteFile(file, []byte(test.Body), 0600))

			var out bytes.Buffer

			err := run(&out, test.Grant, file)
			if test.ExpectedError != "" {
				require.EqualError(t, err, test.ExpectedError)
				return
			}

			require.NoError(t, err)
			for _, line := range test.ExpectedLines {
				assert.Contains(t, out.String(), line+"\n")
			}
		})
	}
}
