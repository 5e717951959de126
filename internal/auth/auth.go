package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrInvalidToken is returned when a bearer token cannot be resolved to a user.
var ErrInvalidToken = errors.New("invalid or unknown token")

// Verifier resolves a bearer token to a caller identity. It is the seam for
// the external authentication service; the static implementation below
// stands in for it.
type Verifier interface {
	Verify(ctx context.Context, token string) (int64, error)
}

// staticVerifier resolves tokens against a fixed token→user map from config.
type staticVerifier struct {
	tokens map[string]int64
	logger zerolog.Logger
}

// NewStaticVerifier creates a verifier backed by a static token→user map.
func NewStaticVerifier(tokens map[string]int64, logger zerolog.Logger) Verifier {
	return &staticVerifier{
		tokens: tokens,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Verify resolves a token to a user ID.
func (v *staticVerifier) Verify(ctx context.Context, token string) (int64, error) {
	userID, ok := v.tokens[token]
	if !ok {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
