package backend

import (
	"context"
	"errors"
)

var ErrNoToken = errors.New("no backend token available")

// TokenSource supplies the bearer token for one backend call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok && tok != ""
}

// ContextTokenSource forwards the token stored by WithToken and falls back to
// the service token for anonymous callers such as the public website.
type ContextTokenSource struct {
	serviceToken string
}

func NewContextTokenSource(serviceToken string) *ContextTokenSource {
	return &ContextTokenSource{serviceToken: serviceToken}
}

func (s *ContextTokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := TokenFromContext(ctx); ok {
		return tok, nil
	}
	if s.serviceToken == "" {
		return "", ErrNoToken
	}
	return s.serviceToken, nil
}
