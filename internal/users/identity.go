package users

import (
	"context"
	"errors"
	"strings"
)

var ErrIdentityRejected = errors.New("identity token rejected")

// Verifier exchanges an opaque token from the identity provider for the
// verified phone number (or email) it vouches for.
type Verifier interface {
	Verify(ctx context.Context, token string) (phoneOrEmail string, err error)
}

// SandboxVerifier accepts any non-empty token and treats it as the contact
// itself. For local and sandbox runs only; production wires a real provider.
type SandboxVerifier struct{}

func (SandboxVerifier) Verify(_ context.Context, token string) (string, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return "", ErrIdentityRejected
	}
	return t, nil
}
