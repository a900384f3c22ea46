package schema

// TokenTypeBearer is the only token type the API issues.
const TokenTypeBearer = "bearer"

// Token is returned by the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenPayload is the decoded content of an access token. Sub is the
// supervisor id and is nil for anonymous contexts.
type TokenPayload struct {
	Sub *int64 `json:"sub"`
}

// ParseToken validates a raw token.
func ParseToken(raw map[string]any) (Token, error) {
	d := newDecoder("Token", raw)
	t := Token{
		AccessToken: d.str("access_token"),
		TokenType:   d.str("token_type"),
	}
	return t, d.err()
}

// ParseTokenPayload validates raw token claims.
func ParseTokenPayload(raw map[string]any) (TokenPayload, error) {
	d := newDecoder("TokenPayload", raw)
	p := TokenPayload{Sub: d.optionalInt("sub")}
	return p, d.err()
}
