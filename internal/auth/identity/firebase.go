package identity

import (
	"context"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// TokenVerifier is the subset of *auth.Client used here.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Firebase verifies Firebase ID tokens.
type Firebase struct {
	client TokenVerifier
}

func NewFirebase(client TokenVerifier) *Firebase {
	return &Firebase{client: client}
}

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client.
func InitializeFirebase(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

func (f *Firebase) Verify(r *http.Request) (string, error) {
	token := BearerToken(r)
	if token == "" {
		return "", unauthenticated("missing authorization token")
	}

	decoded, err := f.client.VerifyIDToken(r.Context(), token)
	if err != nil || decoded.UID == "" {
		return "", unauthenticated("invalid token")
	}
	return decoded.UID, nil
}
