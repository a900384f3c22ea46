package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tok, err := ParseToken(map[string]any{"access_token": "abc", "token_type": TokenTypeBearer})
	require.NoError(t, err)
	assert.Equal(t, Token{AccessToken: "abc", TokenType: "bearer"}, tok)

	_, err = ParseToken(map[string]any{"access_token": 1})
	assert.Equal(t, []string{"access_token", "token_type"}, violations(t, err).Fields())
}

func TestParseTokenPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want *int64
	}{
		{"anonymous", map[string]any{}, nil},
		{"explicit null", map[string]any{"sub": nil}, nil},
		{"number", map[string]any{"sub": float64(42)}, ptr(int64(42))},
		{"jwt string subject", map[string]any{"sub": "42"}, ptr(int64(42))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseTokenPayload(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Sub)
		})
	}

	_, err := ParseTokenPayload(map[string]any{"sub": "me"})
	assert.Equal(t, []string{"sub"}, violations(t, err).Fields())
}

func ptr[T any](v T) *T { return &v }
