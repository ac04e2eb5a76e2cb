package service

import (
	"context"
	"time"

	"moortracker/internal/auth/models"
	dErrors "moortracker/pkg/domain-errors"
)

// SignIn signs in with email and password. On success the session store is
// updated through the lifecycle controller's change notification, not here.
func (s *Service) SignIn(ctx context.Context, email, password string) models.Outcome {
	start := time.Now()
	defer s.observeDuration(opSignIn, start)

	resp, err := s.remote.SignInWithPassword(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return s.fail(ctx, opSignIn, err, "email", email)
	}
	return s.succeedWith(ctx, opSignIn, resp)
}

// SignUp registers a new account. Success does not imply the user is signed in:
// the identity service may require email confirmation first.
func (s *Service) SignUp(ctx context.Context, email, password string) models.Outcome {
	start := time.Now()
	defer s.observeDuration(opSignUp, start)

	resp, err := s.remote.SignUp(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return s.fail(ctx, opSignUp, err, "email", email)
	}
	return s.succeedWith(ctx, opSignUp, resp,
		"session_established", resp != nil && resp.Session != nil,
	)
}

// SignOut signs out remotely and then clears the local user, even when the
// remote call failed. The outcome still reports a remote failure.
func (s *Service) SignOut(ctx context.Context) models.Outcome {
	start := time.Now()
	defer s.observeDuration(opSignOut, start)

	err := s.remote.SignOut(ctx)
	if s.store != nil {
		s.store.SetUser(nil)
	}
	if err != nil {
		return s.fail(ctx, opSignOut, err)
	}
	s.succeeded(ctx, opSignOut)
	return models.Outcome{Success: true}
}

// SignInWithIDToken exchanges a provider identity token for a session.
func (s *Service) SignInWithIDToken(ctx context.Context, creds models.IDTokenCredentials) models.Outcome {
	start := time.Now()
	defer s.observeDuration(opIDToken, start)

	if creds.Provider == "" {
		creds.Provider = s.provider
	}
	if creds.Token == "" {
		return s.fail(ctx, opIDToken, dErrors.New(dErrors.CodeInvalidRequest, "identity token is required"))
	}
	resp, err := s.remote.SignInWithIDToken(ctx, creds)
	if err != nil {
		return s.fail(ctx, opIDToken, err, "provider", creds.Provider.String())
	}
	return s.succeedWith(ctx, opIDToken, resp, "provider", creds.Provider.String())
}

// succeedWith turns a remote auth response into an outcome. A response without
// a user is a remote contract violation and reported as a failure.
func (s *Service) succeedWith(ctx context.Context, op string, resp *models.AuthResponse, attributes ...any) models.Outcome {
	if resp == nil || resp.User == nil {
		return s.fail(ctx, op, dErrors.New(dErrors.CodeRemote, "identity service returned no user"))
	}
	attributes = append(attributes, "user_id", resp.User.ID.String())
	s.succeeded(ctx, op, attributes...)
	out := models.Succeeded(resp.User)
	out.SignedIn = resp.Session != nil
	return out
}
