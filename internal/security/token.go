package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the "iss" claim of every access token.
const TokenIssuer = "social-scores"

// ErrInvalidToken covers every token that cannot be trusted: bad signature,
// wrong algorithm or issuer, expired, or claims that fail validation.
var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and verifies HS256 access tokens. The subject is the
// supervisor id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret, valid for ttl.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the supervisor.
func (t *Tokens) Issue(supervisorID int64) (schema.Token, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(supervisorID, 10),
		"iss": TokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return schema.Token{}, fmt.Errorf("signing token: %w", err)
	}

	return schema.Token{AccessToken: signed, TokenType: schema.TokenTypeBearer}, nil
}

// Parse verifies tokenString and returns its payload. The payload always
// carries a subject.
func (t *Tokens) Parse(tokenString string) (schema.TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return schema.TokenPayload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return schema.TokenPayload{}, ErrInvalidToken
	}

	payload, err := schema.ParseTokenPayload(claims)
	if err != nil {
		return schema.TokenPayload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if payload.Sub == nil {
		return schema.TokenPayload{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return payload, nil
}
