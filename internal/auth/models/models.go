package models

import (
	"time"

	id "moortracker/pkg/domain"
)

// This file contains pure domain models for the client-side auth session:
// entities that do not depend on the identity service's wire format.

// User is the identity record handed out by the identity service.
// Pure domain entity; the gotrue adapter owns the JSON shape.
type User struct {
	ID               id.UserID
	Email            string
	Phone            string
	Role             string
	EmailConfirmedAt *time.Time
	LastSignInAt     *time.Time
	CreatedAt        time.Time
	AppMetadata      map[string]any
	UserMetadata     map[string]any
}

// IsConfirmed reports whether the email address has been verified.
func (u *User) IsConfirmed() bool {
	return u != nil && u.EmailConfirmedAt != nil
}

// Provider returns the provider the account was created with, when known.
func (u *User) Provider() string {
	if u == nil || u.AppMetadata == nil {
		return ""
	}
	p, _ := u.AppMetadata["provider"].(string)
	return p
}

// Session is a session issued by the identity service.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	User         *User
}

// IsExpired reports whether the access token is expired at the given time.
// A margin lets callers refresh slightly ahead of the deadline.
func (s *Session) IsExpired(now time.Time, margin time.Duration) bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(margin).Before(s.ExpiresAt)
}

// UserOf returns the session's user, or nil when there is no session.
func UserOf(s *Session) *User {
	if s == nil {
		return nil
	}
	return s.User
}

// AuthResponse is what sign-in style calls return.
// Session is nil when the service did not establish one (e.g. sign-up awaiting confirmation).
type AuthResponse struct {
	User    *User
	Session *Session
}
