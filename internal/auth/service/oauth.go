package service

import (
	"context"
	"net/url"
	"time"

	"moortracker/internal/auth/models"
	dErrors "moortracker/pkg/domain-errors"
)

// SignInWithGoogle runs the redirect flow: ask the identity client for the
// provider URL, let the user authenticate in the external browser, pull the
// authorization code off the callback URL and exchange it for a session.
func (s *Service) SignInWithGoogle(ctx context.Context) models.Outcome {
	start := time.Now()
	defer s.observeDuration(opGoogleRedirect, start)

	if s.browser == nil {
		return s.fail(ctx, opGoogleRedirect, dErrors.New(dErrors.CodeInternal, "no browser configured for OAuth sign-in"))
	}

	authURL, err := s.remote.SignInWithOAuth(ctx, models.OAuthRequest{
		Provider:            s.provider,
		RedirectTo:          s.redirectURL,
		Scopes:              s.scopes,
		SkipBrowserRedirect: true,
	})
	if err != nil {
		return s.fail(ctx, opGoogleRedirect, err, "provider", s.provider.String())
	}
	if authURL == "" {
		return s.fail(ctx, opGoogleRedirect, dErrors.New(dErrors.CodeRemote, "OAuth failed"), "provider", s.provider.String())
	}

	result, err := s.browser.OpenAuthSession(ctx, authURL, s.redirectURL)
	if err != nil {
		return s.fail(ctx, opGoogleRedirect, err, "provider", s.provider.String())
	}
	if result.Type != models.BrowserResultSuccess || result.URL == "" {
		return s.fail(ctx, opGoogleRedirect,
			dErrors.New(dErrors.CodeCancelled, "sign-in was cancelled"),
			"provider", s.provider.String(),
			"browser_result", string(result.Type),
		)
	}

	code, err := ExtractAuthCode(result.URL)
	if err != nil {
		return s.fail(ctx, opGoogleRedirect, err, "provider", s.provider.String())
	}

	resp, err := s.remote.ExchangeCodeForSession(ctx, code)
	if err != nil {
		return s.fail(ctx, opGoogleRedirect, err, "provider", s.provider.String())
	}
	return s.succeedWith(ctx, opGoogleRedirect, resp, "provider", s.provider.String())
}

// ExtractAuthCode returns the authorization code carried by an OAuth callback URL.
// Provider errors reported on the callback (error / error_description, in the
// query or the fragment) are returned as access_denied.
func ExtractAuthCode(callbackURL string) (string, error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeMalformedRedirect, "invalid OAuth callback URL")
	}

	params := u.Query()
	if fragment, ferr := url.ParseQuery(u.Fragment); ferr == nil {
		for k, v := range fragment {
			if _, ok := params[k]; !ok {
				params[k] = v
			}
		}
	}

	if desc := params.Get("error_description"); desc != "" {
		return "", dErrors.New(dErrors.CodeAccessDenied, desc)
	}
	if e := params.Get("error"); e != "" {
		return "", dErrors.New(dErrors.CodeAccessDenied, e)
	}

	code := params.Get("code")
	if code == "" {
		return "", dErrors.New(dErrors.CodeMalformedRedirect, "OAuth callback is missing the authorization code")
	}
	return code, nil
}
