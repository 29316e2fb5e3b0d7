package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrNoEmail          = errors.New("token carries no email claim")
	ErrVerifierDisabled = errors.New("token verification is not configured")
)

// Verifier resolves a bearer token to the verified email of its subject.
type Verifier interface {
	VerifyEmail(ctx context.Context, token string) (string, error)
}

// DisabledVerifier rejects every token.
type DisabledVerifier struct{}

func (DisabledVerifier) VerifyEmail(context.Context, string) (string, error) {
	return "", ErrVerifierDisabled
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (string, error)

func (f VerifierFunc) VerifyEmail(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}
