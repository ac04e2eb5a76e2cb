package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"moortracker/internal/auth/models"
	"moortracker/internal/auth/ports"
	"moortracker/internal/auth/ports/mocks"
	id "moortracker/pkg/domain"
	dErrors "moortracker/pkg/domain-errors"
)

// fakePrompter fills missing fields from canned answers.
type fakePrompter struct {
	email, password, confirm string
	calls                    int
}

func (p *fakePrompter) SignIn(_ context.Context, form *models.SignInForm) error {
	p.calls++
	if form.Email == "" {
		form.Email = p.email
	}
	if form.Password == "" {
		form.Password = p.password
	}
	return nil
}

func (p *fakePrompter) Register(_ context.Context, form *models.RegistrationForm) error {
	p.calls++
	if form.Email == "" {
		form.Email = p.email
	}
	if form.Password == "" {
		form.Password = p.password
	}
	if form.ConfirmPassword == "" {
		form.ConfirmPassword = p.confirm
	}
	return nil
}

type CLISuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	remote   *mocks.MockRemoteAuthClient
	browser  *mocks.MockBrowser
	sub      *mocks.MockSubscription
	prompter *fakePrompter
	listener models.AuthStateListener
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func (s *CLISuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.remote = mocks.NewMockRemoteAuthClient(s.ctrl)
	s.browser = mocks.NewMockBrowser(s.ctrl)
	s.sub = mocks.NewMockSubscription(s.ctrl)
	s.prompter = &fakePrompter{}
	s.listener = nil
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}

	s.remote.EXPECT().OnAuthStateChange(gomock.Any()).DoAndReturn(
		func(l models.AuthStateListener) ports.Subscription {
			s.listener = l
			return s.sub
		}).AnyTimes()
	s.sub.EXPECT().Unsubscribe().AnyTimes()
}

func (s *CLISuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) execute(args ...string) error {
	root, app := NewRootCmd(Deps{
		Remote:      s.remote,
		Browser:     s.browser,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Prompter:    s.prompter,
		RedirectURL: "http://127.0.0.1:53682/auth/callback",
		Provider:    id.ProviderGoogle,
	})
	defer app.Close()
	root.SetArgs(args)
	root.SetOut(s.stdout)
	root.SetErr(s.stderr)
	return root.ExecuteContext(context.Background())
}

func newUser(email string) *models.User {
	return &models.User{ID: id.UserID(uuid.New()), Email: email}
}

// signedIn returns a response and pushes SIGNED_IN like the identity client does.
func (s *CLISuite) signedIn(user *models.User) func(context.Context, models.Credentials) (*models.AuthResponse, error) {
	return func(context.Context, models.Credentials) (*models.AuthResponse, error) {
		sess := &models.Session{AccessToken: "a", User: user}
		s.listener(models.EventSignedIn, sess)
		return &models.AuthResponse{User: user, Session: sess}, nil
	}
}

func (s *CLISuite) TestSignIn() {
	s.Run("Given flags When signin Then success printed", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().
			SignInWithPassword(gomock.Any(), models.Credentials{Email: "a@b.com", Password: "secret"}).
			DoAndReturn(s.signedIn(newUser("a@b.com")))

		err := s.execute("signin", "--email", " A@B.com ", "--password", "secret")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Signed in as a@b.com")
		s.Equal(0, s.prompter.calls)
	})

	s.Run("Given missing password When signin Then prompted", func() {
		s.SetupTest()
		s.prompter.password = "secret"
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().
			SignInWithPassword(gomock.Any(), models.Credentials{Email: "a@b.com", Password: "secret"}).
			DoAndReturn(s.signedIn(newUser("a@b.com")))

		err := s.execute("signin", "--email", "a@b.com")

		s.Require().NoError(err)
		s.Equal(1, s.prompter.calls)
	})

	s.Run("Given empty input When signin Then fill in all fields and no remote call", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)

		err := s.execute("signin")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "Please fill in all fields")
	})

	s.Run("Given rejected credentials When signin Then login failed printed", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidGrant, "Invalid login credentials"))

		err := s.execute("signin", "--email", "a@b.com", "--password", "wrong")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "Login Failed")
		s.Contains(s.stderr.String(), "Invalid login credentials")
	})
}

func (s *CLISuite) TestSignUp() {
	s.Run("Given mismatched passwords When signup Then rejected locally", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)

		err := s.execute("signup", "--email", "a@b.com", "--password", "secret1", "--confirm-password", "secret2")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "Passwords do not match")
	})

	s.Run("Given short password When signup Then rejected locally", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)

		err := s.execute("signup", "--email", "a@b.com", "--password", "abc", "--confirm-password", "abc")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "Password must be at least 6 characters")
	})

	s.Run("Given invalid email When signup Then rejected locally", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)

		err := s.execute("signup", "--email", "not-an-email", "--password", "secret1", "--confirm-password", "secret1")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "valid email")
	})

	s.Run("Given confirmation required When signup Then asked to check email", func() {
		s.SetupTest()
		s.prompter.email = "new@b.com"
		s.prompter.password = "secret1"
		s.prompter.confirm = "secret1"
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().SignUp(gomock.Any(), models.Credentials{Email: "new@b.com", Password: "secret1"}).
			Return(&models.AuthResponse{User: newUser("new@b.com")}, nil)

		err := s.execute("signup")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Please check your email to confirm your account.")
	})
	s.Run("Given already signed in as another user When signup needs confirmation Then asked to check email", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(newUser("old@b.com"), nil)
		s.remote.EXPECT().SignUp(gomock.Any(), models.Credentials{Email: "new@b.com", Password: "secret1"}).
			Return(&models.AuthResponse{User: newUser("new@b.com")}, nil)

		err := s.execute("signup", "--email", "new@b.com", "--password", "secret1", "--confirm-password", "secret1")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Please check your email to confirm your account.")
		s.NotContains(s.stdout.String(), "Signed in as new@b.com")
	})

	s.Run("Given no confirmation required When signup Then signed in as the new user", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().SignUp(gomock.Any(), gomock.Any()).DoAndReturn(s.signedIn(newUser("new@b.com")))

		err := s.execute("signup", "--email", "new@b.com", "--password", "secret1", "--confirm-password", "secret1")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Account created. Signed in as new@b.com")
	})
}

func (s *CLISuite) TestSignOut() {
	s.Run("Given signed in When signout Then signed out printed", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(newUser("a@b.com"), nil)
		s.remote.EXPECT().SignOut(gomock.Any()).Return(nil)

		err := s.execute("signout")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Signed out")
	})
}

func (s *CLISuite) TestGoogle() {
	s.Run("Given browser callback with code When google Then signed in", func() {
		s.SetupTest()
		user := newUser("g@b.com")
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().SignInWithOAuth(gomock.Any(), gomock.Any()).Return("https://idp.example/authorize", nil)
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), "https://idp.example/authorize", "http://127.0.0.1:53682/auth/callback").
			Return(models.BrowserResult{Type: models.BrowserResultSuccess, URL: "http://127.0.0.1:53682/auth/callback?code=ABC123"}, nil)
		s.remote.EXPECT().ExchangeCodeForSession(gomock.Any(), "ABC123").
			Return(&models.AuthResponse{User: user}, nil)

		err := s.execute("google")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Signed in as g@b.com")
	})

	s.Run("Given id token flag When google Then token exchanged without browser", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().
			SignInWithIDToken(gomock.Any(), models.IDTokenCredentials{Provider: id.ProviderGoogle, Token: "idt"}).
			Return(&models.AuthResponse{User: newUser("g@b.com")}, nil)

		err := s.execute("google", "--id-token", "idt")

		s.Require().NoError(err)
	})

	s.Run("Given browser dismissed When google Then failure printed", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)
		s.remote.EXPECT().SignInWithOAuth(gomock.Any(), gomock.Any()).Return("https://idp.example/authorize", nil)
		s.browser.EXPECT().OpenAuthSession(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.BrowserResult{Type: models.BrowserResultDismiss}, nil)

		err := s.execute("google")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "Google login failed")
	})
}

func (s *CLISuite) TestWhoAmI() {
	s.Run("Given stored session When whoami Then user printed", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(newUser("a@b.com"), nil)

		err := s.execute("whoami")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "a@b.com")
	})

	s.Run("Given no session When whoami Then not signed in", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, nil)

		err := s.execute("whoami")

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "Not signed in")
	})

	s.Run("Given identity service down When whoami Then error reported", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeRemote, "network request failed"))

		err := s.execute("whoami")

		s.ErrorIs(err, ErrFailed)
		s.Contains(s.stderr.String(), "network request failed")
	})
}

func (s *CLISuite) TestWatch() {
	s.Run("Given cancelled context When watch Then returns after printing state", func() {
		s.SetupTest()
		s.remote.EXPECT().GetUser(gomock.Any()).Return(newUser("a@b.com"), nil)
		root, app := NewRootCmd(Deps{
			Remote: s.remote,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		defer app.Close()
		root.SetArgs([]string{"watch"})
		root.SetOut(s.stdout)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := root.ExecuteContext(ctx)

		s.Require().NoError(err)
		s.Contains(s.stdout.String(), "a@b.com")
	})
}
