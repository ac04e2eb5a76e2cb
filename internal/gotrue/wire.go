package gotrue

import (
	"time"

	"moortracker/internal/auth/models"
	id "moortracker/pkg/domain"
	dErrors "moortracker/pkg/domain-errors"
)

type userJSON struct {
	ID               string         `json:"id"`
	Email            string         `json:"email,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	Role             string         `json:"role,omitempty"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	LastSignInAt     *time.Time     `json:"last_sign_in_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	AppMetadata      map[string]any `json:"app_metadata,omitempty"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
}

// sessionJSON is both the token endpoint response and the persisted session.
type sessionJSON struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	ExpiresAt    int64     `json:"expires_at,omitempty"`
	RefreshToken string    `json:"refresh_token"`
	User         *userJSON `json:"user,omitempty"`
}

// signUpJSON holds either a session (auto-confirmed) or a bare user (confirmation pending).
type signUpJSON struct {
	sessionJSON
	userJSON
}

func (u *userJSON) toModel() (*models.User, error) {
	if u == nil {
		return nil, nil
	}
	uid, err := id.ParseUserID(u.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRemote, "identity service returned an invalid user id")
	}
	return &models.User{
		ID:               uid,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		EmailConfirmedAt: u.EmailConfirmedAt,
		LastSignInAt:     u.LastSignInAt,
		CreatedAt:        u.CreatedAt,
		AppMetadata:      u.AppMetadata,
		UserMetadata:     u.UserMetadata,
	}, nil
}

func userFromModel(u *models.User) *userJSON {
	if u == nil {
		return nil
	}
	return &userJSON{
		ID:               u.ID.String(),
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		EmailConfirmedAt: u.EmailConfirmedAt,
		LastSignInAt:     u.LastSignInAt,
		CreatedAt:        u.CreatedAt,
		AppMetadata:      u.AppMetadata,
		UserMetadata:     u.UserMetadata,
	}
}

// toModel resolves the expiry from expires_at, then expires_in, then the
// access token's exp claim.
func (s *sessionJSON) toModel(now time.Time) (*models.Session, error) {
	if s == nil || s.AccessToken == "" {
		return nil, nil
	}
	user, err := s.User.toModel()
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	switch {
	case s.ExpiresAt > 0:
		expiresAt = time.Unix(s.ExpiresAt, 0)
	case s.ExpiresIn > 0:
		expiresAt = now.Add(time.Duration(s.ExpiresIn) * time.Second)
	default:
		expiresAt = tokenExpiry(s.AccessToken)
	}

	return &models.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func sessionFromModel(s *models.Session) *sessionJSON {
	out := &sessionJSON{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
		User:         userFromModel(s.User),
	}
	if !s.ExpiresAt.IsZero() {
		out.ExpiresAt = s.ExpiresAt.Unix()
	}
	return out
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email               string `json:"email"`
	Password            string `json:"password"`
	CodeChallenge       string `json:"code_challenge,omitempty"`
	CodeChallengeMethod string `json:"code_challenge_method,omitempty"`
}

type pkceGrant struct {
	AuthCode     string `json:"auth_code"`
	CodeVerifier string `json:"code_verifier"`
}

type idTokenGrant struct {
	Provider    string `json:"provider"`
	IDToken     string `json:"id_token"`
	AccessToken string `json:"access_token,omitempty"`
	Nonce       string `json:"nonce,omitempty"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}
