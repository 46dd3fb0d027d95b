package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrUserNotFound = errors.New("identity user not found")
	ErrUnavailable  = errors.New("identity provider unavailable")
)

// Token is the verified identity attached to an inbound request.
type Token struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// User is a provider-held account record.
type User struct {
	Subject string
	Email   string
}

// Gateway is the boundary to the external identity provider. Verify resolves a
// bearer token to a stable subject, SetClaims mirrors role/status onto the
// provider's custom claims, and LookupByEmail resolves a registered email to
// its subject.
type Gateway interface {
	Verify(ctx context.Context, idToken string) (*Token, error)
	SetClaims(ctx context.Context, subject string, claims map[string]interface{}) error
	LookupByEmail(ctx context.Context, email string) (*User, error)
}
