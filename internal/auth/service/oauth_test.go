package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"moortracker/internal/auth/models"
	id "moortracker/pkg/domain"
	dErrors "moortracker/pkg/domain-errors"
)

const testAuthURL = "https://example.supabase.co/auth/v1/authorize?provider=google"

func (s *ServiceSuite) expectAuthURL() {
	s.remote.EXPECT().SignInWithOAuth(gomock.Any(), models.OAuthRequest{
		Provider:            id.ProviderGoogle,
		RedirectTo:          testRedirectURL,
		SkipBrowserRedirect: true,
	}).Return(testAuthURL, nil)
}

func (s *ServiceSuite) TestSignInWithGoogle() {
	ctx := context.Background()

	s.Run("Given callback with code When google sign in Then code exchanged", func() {
		s.SetupTest()
		user := newUser("g@b.com")
		s.expectAuthURL()
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), testAuthURL, testRedirectURL).
			Return(models.BrowserResult{Type: models.BrowserResultSuccess, URL: testRedirectURL + "?code=ABC123"}, nil)
		s.remote.EXPECT().ExchangeCodeForSession(gomock.Any(), "ABC123").Return(authResponse(user), nil)

		out := s.service.SignInWithGoogle(ctx)

		s.True(out.Success)
		s.Same(user, out.User)
	})

	s.Run("Given callback without code When google sign in Then failure and no exchange", func() {
		s.SetupTest()
		s.expectAuthURL()
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.BrowserResult{Type: models.BrowserResultSuccess, URL: testRedirectURL + "?state=x"}, nil)
		s.remote.EXPECT().ExchangeCodeForSession(gomock.Any(), gomock.Any()).Times(0)

		out := s.service.SignInWithGoogle(ctx)

		s.False(out.Success)
		s.Equal(dErrors.CodeMalformedRedirect, out.Code)
	})

	s.Run("Given provider error on callback When google sign in Then failure with description", func() {
		s.SetupTest()
		s.expectAuthURL()
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.BrowserResult{
				Type: models.BrowserResultSuccess,
				URL:  testRedirectURL + "?error=access_denied&error_description=User+denied+access",
			}, nil)

		out := s.service.SignInWithGoogle(ctx)

		s.False(out.Success)
		s.Equal("User denied access", out.Error)
		s.Equal(dErrors.CodeAccessDenied, out.Code)
	})

	s.Run("Given user closes browser When google sign in Then cancelled failure", func() {
		s.SetupTest()
		s.expectAuthURL()
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.BrowserResult{Type: models.BrowserResultDismiss}, nil)

		out := s.service.SignInWithGoogle(ctx)

		s.False(out.Success)
		s.Equal(dErrors.CodeCancelled, out.Code)
	})

	s.Run("Given authorization url unavailable When google sign in Then failure and browser not opened", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithOAuth(gomock.Any(), gomock.Any()).
			Return("", dErrors.New(dErrors.CodeRemote, "provider is not enabled"))

		out := s.service.SignInWithGoogle(ctx)

		s.False(out.Success)
		s.Equal("provider is not enabled", out.Error)
	})

	s.Run("Given empty authorization url When google sign in Then failure", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithOAuth(gomock.Any(), gomock.Any()).Return("", nil)

		out := s.service.SignInWithGoogle(ctx)

		s.False(out.Success)
		s.Equal("OAuth failed", out.Error)
	})

	s.Run("Given exchange rejected When google sign in Then failure", func() {
		s.SetupTest()
		s.expectAuthURL()
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.BrowserResult{Type: models.BrowserResultSuccess, URL: testRedirectURL + "?code=stale"}, nil)
		s.remote.EXPECT().ExchangeCodeForSession(gomock.Any(), "stale").
			Return(nil, dErrors.New(dErrors.CodeInvalidGrant, "invalid flow state"))

		out := s.service.SignInWithGoogle(ctx)

		s.False(out.Success)
		s.Equal(dErrors.CodeInvalidGrant, out.Code)
	})
}

func TestSignInWithGoogleWithoutBrowser(t *testing.T) {
	svc := New(nil, nil)

	out := svc.SignInWithGoogle(context.Background())

	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Error)
}

func TestExtractAuthCode(t *testing.T) {
	t.Run("code in query", func(t *testing.T) {
		code, err := ExtractAuthCode("moortracker://auth/callback?code=ABC123")
		require.NoError(t, err)
		assert.Equal(t, "ABC123", code)
	})

	t.Run("code in fragment", func(t *testing.T) {
		code, err := ExtractAuthCode("http://127.0.0.1:53682/auth/callback#code=XYZ")
		require.NoError(t, err)
		assert.Equal(t, "XYZ", code)
	})

	t.Run("missing code", func(t *testing.T) {
		_, err := ExtractAuthCode("http://127.0.0.1:53682/auth/callback")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformedRedirect))
	})

	t.Run("error without description", func(t *testing.T) {
		_, err := ExtractAuthCode("http://127.0.0.1:53682/auth/callback?error=server_error")
		require.Error(t, err)
		assert.Equal(t, "server_error", err.Error())
	})

	t.Run("unparseable url", func(t *testing.T) {
		_, err := ExtractAuthCode("http://[::1")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformedRedirect))
	})
}
