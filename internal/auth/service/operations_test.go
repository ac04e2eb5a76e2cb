package service

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"moortracker/internal/auth/metrics"
	"moortracker/internal/auth/models"
	"moortracker/internal/auth/session"
	id "moortracker/pkg/domain"
	dErrors "moortracker/pkg/domain-errors"
)

func (s *ServiceSuite) TestSignIn() {
	ctx := context.Background()

	s.Run("Given valid credentials When sign in Then success with the user", func() {
		s.SetupTest()
		user := newUser("a@b.com")
		s.remote.EXPECT().
			SignInWithPassword(gomock.Any(), models.Credentials{Email: "a@b.com", Password: "secret"}).
			Return(authResponse(user), nil)

		out := s.service.SignIn(ctx, "a@b.com", "secret")

		s.True(out.Success)
		s.Same(user, out.User)
		s.True(out.SignedIn)
		s.Empty(out.Error)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Operations.WithLabelValues(opSignIn, metrics.ResultSuccess)))
	})

	s.Run("Given sign in succeeds When outcome returned Then store is left to the notification path", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).Return(authResponse(newUser("a@b.com")), nil)

		s.service.SignIn(ctx, "a@b.com", "secret")

		s.Nil(s.store.State().User)
		s.True(s.store.State().Loading)
	})

	s.Run("Given rejected credentials When sign in Then failure with the remote message", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidGrant, "Invalid login credentials"))

		out := s.service.SignIn(ctx, "a@b.com", "wrong")

		s.False(out.Success)
		s.Nil(out.User)
		s.Equal("Invalid login credentials", out.Error)
		s.Equal(dErrors.CodeInvalidGrant, out.Code)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.Operations.WithLabelValues(opSignIn, metrics.ResultFailure)))
	})

	s.Run("Given remote error without message When sign in Then failure message is not empty", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).Return(nil, errors.New(""))

		out := s.service.SignIn(ctx, "a@b.com", "secret")

		s.False(out.Success)
		s.NotEmpty(out.Error)
		s.Equal(dErrors.CodeInternal, out.Code)
	})

	s.Run("Given response without user When sign in Then failure", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).Return(&models.AuthResponse{}, nil)

		out := s.service.SignIn(ctx, "a@b.com", "secret")

		s.False(out.Success)
		s.Equal(dErrors.CodeRemote, out.Code)
	})
}

func (s *ServiceSuite) TestSignUp() {
	ctx := context.Background()

	s.Run("Given confirmation required When sign up Then success without session", func() {
		s.SetupTest()
		user := newUser("new@b.com")
		s.remote.EXPECT().
			SignUp(gomock.Any(), models.Credentials{Email: "new@b.com", Password: "secret1"}).
			Return(&models.AuthResponse{User: user}, nil)

		out := s.service.SignUp(ctx, "new@b.com", "secret1")

		s.True(out.Success)
		s.Same(user, out.User)
		s.False(out.SignedIn)
		s.Nil(s.store.State().User)
	})

	s.Run("Given confirmation required and another user signed in When sign up Then outcome not signed in", func() {
		s.SetupTest()
		s.store.SetUser(newUser("old@b.com"))
		s.remote.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(&models.AuthResponse{User: newUser("new@b.com")}, nil)

		out := s.service.SignUp(ctx, "new@b.com", "secret1")

		s.True(out.Success)
		s.False(out.SignedIn)
	})

	s.Run("Given no confirmation required When sign up Then outcome signed in", func() {
		s.SetupTest()
		user := newUser("new@b.com")
		s.remote.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(authResponse(user), nil)

		out := s.service.SignUp(ctx, "new@b.com", "secret1")

		s.True(out.Success)
		s.True(out.SignedIn)
	})

	s.Run("Given existing account When sign up Then failure", func() {
		s.SetupTest()
		s.remote.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "User already registered"))

		out := s.service.SignUp(ctx, "a@b.com", "secret1")

		s.False(out.Success)
		s.Equal("User already registered", out.Error)
		s.Equal(dErrors.CodeValidation, out.Code)
	})
}

func (s *ServiceSuite) TestSignOut() {
	ctx := context.Background()

	s.Run("Given signed in When sign out Then store user cleared", func() {
		s.SetupTest()
		s.store.SetUser(newUser("a@b.com"))
		s.remote.EXPECT().SignOut(gomock.Any()).Return(nil)

		out := s.service.SignOut(ctx)

		s.True(out.Success)
		s.Nil(out.User)
		s.Nil(s.store.State().User)
		s.False(s.store.State().IsAuthenticated())
	})

	s.Run("Given remote sign out fails When sign out Then store still cleared and failure reported", func() {
		s.SetupTest()
		s.store.SetUser(newUser("a@b.com"))
		s.remote.EXPECT().SignOut(gomock.Any()).Return(dErrors.New(dErrors.CodeRemote, "network down"))

		out := s.service.SignOut(ctx)

		s.False(out.Success)
		s.Equal("network down", out.Error)
		s.Nil(s.store.State().User)
	})

	s.Run("Given observer When sign out Then observer sees signed out state", func() {
		s.SetupTest()
		s.store.SetUser(newUser("a@b.com"))
		var seen []bool
		unsubscribe := s.store.Subscribe(func(st session.State) {
			seen = append(seen, st.IsAuthenticated())
		})
		defer unsubscribe()
		s.remote.EXPECT().SignOut(gomock.Any()).Return(nil)

		s.service.SignOut(ctx)

		s.Require().NotEmpty(seen)
		s.False(seen[len(seen)-1])
	})
}

func (s *ServiceSuite) TestSignInWithIDToken() {
	ctx := context.Background()

	s.Run("Given identity token When sign in Then provider defaults and user returned", func() {
		s.SetupTest()
		user := newUser("g@b.com")
		s.remote.EXPECT().
			SignInWithIDToken(gomock.Any(), models.IDTokenCredentials{Provider: id.ProviderGoogle, Token: "id-token", Nonce: "n"}).
			Return(authResponse(user), nil)

		out := s.service.SignInWithIDToken(ctx, models.IDTokenCredentials{Token: "id-token", Nonce: "n"})

		s.True(out.Success)
		s.Same(user, out.User)
	})

	s.Run("Given empty token When sign in Then failure without remote call", func() {
		s.SetupTest()

		out := s.service.SignInWithIDToken(ctx, models.IDTokenCredentials{})

		s.False(out.Success)
		s.Equal(dErrors.CodeInvalidRequest, out.Code)
	})

	s.Run("Given rejected token When sign in Then failure", func() {
		s.SetupTest()
		s.remote.EXPECT().SignInWithIDToken(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidGrant, "Bad ID token"))

		out := s.service.SignInWithIDToken(ctx, models.IDTokenCredentials{Token: "bad"})

		s.False(out.Success)
		s.Equal("Bad ID token", out.Error)
	})
}
