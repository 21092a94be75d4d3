package interop

import (
	"github.com/mefengl/note-oauth2/pkg/result"
	"golang.org/x/oauth2"
)

// GrantTypeDeviceCode is the grant type a device presents at the token
// endpoint when redeeming a device code (RFC 8628).
const GrantTypeDeviceCode = "urn:ietf:params:oauth:grant-type:device_code"

// OAuth2Token assembles an oauth2.Token from a parsed token response. The
// response must carry an access token; everything else is optional. Expiry
// is resolved against the result's clock when "expires_in" is present and
// nonzero, and left at zero otherwise, which oauth2 treats as a token that
// never expires. The full response payload rides along and is available
// through the token's Extra method.
func OAuth2Token(t *result.Token) (*oauth2.Token, error) {
	accessToken, err := t.AccessToken()
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{
		AccessToken: accessToken,
	}

	if tokenType, err := t.TokenType(); err == nil {
		tok.TokenType = tokenType
	}
	if refreshToken, err := t.RefreshToken(); err == nil {
		tok.RefreshToken = refreshToken
	}

	if t.Payload().Has(result.FieldExpiresIn) {
		secs, err := t.AccessTokenExpiresInSeconds()
		if err != nil {
			return nil, err
		}

		if secs != 0 {
			expiry, err := t.AccessTokenExpiresAt()
			if err != nil {
				return nil, err
			}

			tok.Expiry = expiry
		}
	}

	return tok.WithExtra(map[string]interface{}(t.Payload())), nil
}
