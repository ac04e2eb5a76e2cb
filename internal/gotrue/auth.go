package gotrue

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"moortracker/internal/auth/models"
	"moortracker/internal/auth/ports"
	id "moortracker/pkg/domain"
	dErrors "moortracker/pkg/domain-errors"
)

var _ ports.RemoteAuthClient = (*Client)(nil)

// GetUser fetches the user for the current session. Returns (nil, nil) when
// there is no session or the service no longer accepts it.
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	s, err := c.currentSession(ctx)
	if err != nil || s == nil {
		return nil, err
	}

	var resp userJSON
	err = c.do(ctx, call{
		op:          "get_user",
		method:      http.MethodGet,
		path:        "/user",
		accessToken: s.AccessToken,
	}, &resp)
	if err != nil {
		if isSessionGone(err) {
			c.removeSession(ctx)
			c.notify(models.EventSignedOut, nil)
			return nil, nil
		}
		return nil, err
	}
	return resp.toModel()
}

// SignInWithPassword signs in with email and password.
func (c *Client) SignInWithPassword(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.tokenGrant(ctx, "sign_in_password", id.GrantTypePassword, passwordGrant{
		Email:    creds.Email,
		Password: creds.Password,
	})
}

// SignUp registers an account. When the service requires email confirmation the
// response carries the user and no session.
func (c *Client) SignUp(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp signUpJSON
	err := c.do(ctx, call{
		op:     "sign_up",
		method: http.MethodPost,
		path:   "/signup",
		body:   signUpRequest{Email: creds.Email, Password: creds.Password},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		user, err := resp.userJSON.toModel()
		if err != nil {
			return nil, err
		}
		return &models.AuthResponse{User: user}, nil
	}
	return c.establish(ctx, &resp.sessionJSON)
}

// SignOut revokes the session on the service and always drops it locally.
// A session the service already forgot is not an error.
func (c *Client) SignOut(ctx context.Context) error {
	s, err := c.loadSession(ctx)
	if err != nil {
		return err
	}

	var remoteErr error
	if s != nil {
		remoteErr = c.do(ctx, call{
			op:          "sign_out",
			method:      http.MethodPost,
			path:        "/logout",
			query:       url.Values{"scope": {"global"}},
			accessToken: s.AccessToken,
		}, nil)
		if remoteErr != nil && isSessionGone(remoteErr) {
			remoteErr = nil
		}
	}

	c.removeSession(ctx)
	_ = c.storage.RemoveItem(c.verifierKey())
	c.notify(models.EventSignedOut, nil)
	return remoteErr
}

// SignInWithOAuth builds the provider authorization URL for the PKCE flow and
// stores the code verifier for ExchangeCodeForSession. The client never opens a
// browser itself, so SkipBrowserRedirect has no further effect.
func (c *Client) SignInWithOAuth(ctx context.Context, req models.OAuthRequest) (string, error) {
	if req.Provider == "" {
		return "", dErrors.New(dErrors.CodeInvalidRequest, "OAuth provider is required")
	}
	verifier, challenge := newPKCE()
	if err := c.storage.SetItem(c.verifierKey(), verifier); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("provider", req.Provider.String())
	if req.RedirectTo != "" {
		q.Set("redirect_to", req.RedirectTo)
	}
	if len(req.Scopes) > 0 {
		q.Set("scopes", strings.Join(req.Scopes, " "))
	}
	q.Set("code_challenge", challenge)
	q.Set("code_challenge_method", codeChallengeMethod)

	c.logger.DebugContext(ctx, "oauth authorization url built", "provider", req.Provider.String())
	return c.baseURL + "/authorize?" + q.Encode(), nil
}

// ExchangeCodeForSession completes the PKCE flow started by SignInWithOAuth.
func (c *Client) ExchangeCodeForSession(ctx context.Context, code string) (*models.AuthResponse, error) {
	if code == "" {
		return nil, dErrors.New(dErrors.CodeInvalidRequest, "authorization code is required")
	}
	verifier, ok, err := c.storage.GetItem(c.verifierKey())
	if err != nil {
		return nil, err
	}
	if !ok || verifier == "" {
		return nil, dErrors.New(dErrors.CodeInvalidRequest, "code verifier not found; start the sign-in again")
	}

	resp, err := c.tokenGrant(ctx, "exchange_code", id.GrantTypePKCE, pkceGrant{AuthCode: code, CodeVerifier: verifier})
	if err == nil {
		_ = c.storage.RemoveItem(c.verifierKey())
	}
	return resp, err
}

// SignInWithIDToken exchanges a provider identity token for a session.
func (c *Client) SignInWithIDToken(ctx context.Context, creds models.IDTokenCredentials) (*models.AuthResponse, error) {
	return c.tokenGrant(ctx, "sign_in_id_token", id.GrantTypeIDToken, idTokenGrant{
		Provider:    creds.Provider.String(),
		IDToken:     creds.Token,
		AccessToken: creds.AccessToken,
		Nonce:       creds.Nonce,
	})
}

func (c *Client) tokenGrant(ctx context.Context, op string, grant id.GrantType, body any) (*models.AuthResponse, error) {
	var resp sessionJSON
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   "/token",
		query:  url.Values{"grant_type": {grant.String()}},
		body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.establish(ctx, &resp)
}

// establish makes a freshly issued session current and announces SIGNED_IN.
func (c *Client) establish(ctx context.Context, resp *sessionJSON) (*models.AuthResponse, error) {
	s, err := resp.toModel(c.clock.Now())
	if err != nil {
		return nil, err
	}
	if s == nil || s.User == nil {
		return nil, dErrors.New(dErrors.CodeRemote, "identity service returned no session")
	}
	c.saveSession(ctx, s)
	c.logger.InfoContext(ctx, "session established",
		"event", "signed_in",
		"user_id", s.User.ID.String(),
		"log_type", "audit",
	)
	c.notify(models.EventSignedIn, s)
	return &models.AuthResponse{User: s.User, Session: s}, nil
}
