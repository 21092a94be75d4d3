// Package testutil provides plausible response fixtures and transport-error
// mocks for tests.
package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/hashicorp/go-uuid"
	"github.com/mefengl/note-oauth2/pkg/interop"
)

func randomToken(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return hex.EncodeToString(b)[:n]
}

// userCodeCharset is the base-20 alphabet recommended for codes typed by
// humans, per https://tools.ietf.org/html/rfc8628#section-6.1.
const userCodeCharset = "BCDFGHJKLMNPQRSTVWXZ"

func randomUserCode() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	code := make([]byte, 0, 9)
	for i, c := range b {
		if i == 4 {
			code = append(code, '-')
		}
		code = append(code, userCodeCharset[int(c)%len(userCodeCharset)])
	}

	return string(code)
}

// TokenFixture returns a bearer token response with freshly generated
// opaque tokens.
func TokenFixture() *interop.JSONToken {
	return &interop.JSONToken{
		AccessToken:  randomToken(40),
		TokenType:    "Bearer",
		ExpiresIn:    3600,
		RefreshToken: randomToken(40),
		Scope:        "read write",
	}
}

// DeviceAuthFixture returns a device authorization response shaped like the
// ones real authorization servers hand back, with freshly generated codes.
func DeviceAuthFixture() *interop.JSONDeviceAuth {
	deviceCode, err := uuid.GenerateUUID()
	if err != nil {
		panic(err)
	}

	return &interop.JSONDeviceAuth{
		DeviceCode:      deviceCode,
		UserCode:        randomUserCode(),
		VerificationURI: "https://example.com/device",
		ExpiresIn:       900,
		Interval:        5,
	}
}
