package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client.
// Credentials come from a service-account file or an inline JSON document.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*fbauth.Client, error) {
	var opt option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	case cfg.CredentialsPath != "":
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	default:
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH or FIREBASE_CREDENTIALS_JSON is required")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

// NewVerifier returns a Firebase-backed verifier, or one that rejects every
// token when no credentials are configured.
func NewVerifier(ctx context.Context, cfg *config.FirebaseConfig) (Verifier, error) {
	if !cfg.Enabled() {
		log.Println("[auth] firebase credentials not configured; bearer tokens will not be verified")
		return DisabledVerifier{}, nil
	}

	client, err := InitializeFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewFirebaseVerifier(client), nil
}

// tokenVerifier is the slice of *fbauth.Client the verifier needs.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type FirebaseVerifier struct {
	client tokenVerifier
}

func NewFirebaseVerifier(client tokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) VerifyEmail(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return "", ErrNoEmail
	}
	return email, nil
}
