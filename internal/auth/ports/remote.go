// Package ports declares the collaborators the auth core consumes but does not own.
package ports

//go:generate mockgen -source=remote.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"moortracker/internal/auth/models"
)

// RemoteAuthClient is the hosted identity service as seen by the auth core.
//
// Error Contract: failures are returned as domain errors carrying a non-empty message.
// GetUser returns (nil, nil) when no session is established.
type RemoteAuthClient interface {
	GetUser(ctx context.Context) (*models.User, error)
	OnAuthStateChange(listener models.AuthStateListener) Subscription
	SignInWithPassword(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SignUp(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SignOut(ctx context.Context) error
	SignInWithOAuth(ctx context.Context, req models.OAuthRequest) (string, error)
	ExchangeCodeForSession(ctx context.Context, code string) (*models.AuthResponse, error)
	SignInWithIDToken(ctx context.Context, creds models.IDTokenCredentials) (*models.AuthResponse, error)
}

// Subscription is a registered change-notification listener.
type Subscription interface {
	Unsubscribe()
}

// Browser runs an external auth session: it opens authURL and waits until the
// identity provider redirects to redirectURL or the user gives up.
type Browser interface {
	OpenAuthSession(ctx context.Context, authURL, redirectURL string) (models.BrowserResult, error)
}
