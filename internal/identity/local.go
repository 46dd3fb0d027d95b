package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubjectResolver resolves a registered email to its subject id. The local
// gateway has no provider-side user directory, so email lookups lean on the
// profile store. An unknown email resolves to the empty string with a nil
// error.
type SubjectResolver interface {
	SubjectByEmail(ctx context.Context, email string) (string, error)
}

// LocalGateway is an HS256-signed stand-in for the real identity provider,
// used in development and tests. Custom claims are held in memory.
type LocalGateway struct {
	secret   []byte
	resolver SubjectResolver

	mu     sync.Mutex
	claims map[string]map[string]interface{}
}

func NewLocalGateway(secret string, resolver SubjectResolver) *LocalGateway {
	return &LocalGateway{
		secret:   []byte(secret),
		resolver: resolver,
		claims:   make(map[string]map[string]interface{}),
	}
}

func (g *LocalGateway) Verify(ctx context.Context, idToken string) (*Token, error) {
	if idToken == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	t := &Token{Subject: subject}
	if email, ok := claims["email"].(string); ok {
		t.Email = strings.ToLower(email)
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		t.EmailVerified = verified
	}
	return t, nil
}

func (g *LocalGateway) SetClaims(ctx context.Context, subject string, claims map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	copied := make(map[string]interface{}, len(claims))
	for k, v := range claims {
		copied[k] = v
	}
	g.claims[subject] = copied
	return nil
}

// Claims returns the custom claims recorded for a subject. Test helper.
func (g *LocalGateway) Claims(subject string) map[string]interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.claims[subject]
}

func (g *LocalGateway) LookupByEmail(ctx context.Context, email string) (*User, error) {
	if g.resolver == nil {
		return nil, ErrUserNotFound
	}
	subject, err := g.resolver.SubjectByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("%w: lookup by email: %v", ErrUnavailable, err)
	}
	if subject == "" {
		return nil, ErrUserNotFound
	}
	return &User{Subject: subject, Email: strings.ToLower(email)}, nil
}

// IssueToken mints a short-lived HS256 token for the given identity.
func (g *LocalGateway) IssueToken(subject, email string, emailVerified bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":            subject,
		"email":          email,
		"email_verified": emailVerified,
		"iat":            time.Now().Unix(),
		"exp":            time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}
