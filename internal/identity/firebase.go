package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseGateway implements Gateway against the Firebase Admin SDK.
type FirebaseGateway struct {
	client *fbauth.Client
}

func NewFirebaseGateway(ctx context.Context, projectID, credentialsFile string) (*FirebaseGateway, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &FirebaseGateway{client: client}, nil
}

func (g *FirebaseGateway) Verify(ctx context.Context, idToken string) (*Token, error) {
	decoded, err := g.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	t := &Token{Subject: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		t.Email = email
	}
	if verified, ok := decoded.Claims["email_verified"].(bool); ok {
		t.EmailVerified = verified
	}
	return t, nil
}

func (g *FirebaseGateway) SetClaims(ctx context.Context, subject string, claims map[string]interface{}) error {
	if err := g.client.SetCustomUserClaims(ctx, subject, claims); err != nil {
		return fmt.Errorf("%w: set claims for %s: %v", ErrUnavailable, subject, err)
	}
	return nil
}

func (g *FirebaseGateway) LookupByEmail(ctx context.Context, email string) (*User, error) {
	record, err := g.client.GetUserByEmail(ctx, email)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: lookup by email: %v", ErrUnavailable, err)
	}
	return &User{Subject: record.UID, Email: record.Email}, nil
}
