package models

import id "moortracker/pkg/domain"

// Credentials carries an email/password pair. Format is not enforced here;
// callers validate before invoking operations.
type Credentials struct {
	Email    string
	Password string
}

// OAuthRequest asks the identity client for a provider authorization URL.
type OAuthRequest struct {
	Provider            id.Provider
	RedirectTo          string
	Scopes              []string
	SkipBrowserRedirect bool
}

// IDTokenCredentials exchanges a provider-issued identity token for a session.
type IDTokenCredentials struct {
	Provider    id.Provider
	Token       string
	AccessToken string
	Nonce       string
}

// RegistrationForm mirrors the sign-up screen's inputs.
type RegistrationForm struct {
	Email           string `validate:"required,email,max=255"`
	Password        string `validate:"required,min=6,max=72"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// SignInForm mirrors the login screen's inputs.
type SignInForm struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required"`
}
