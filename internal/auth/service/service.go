package service

import (
	"log/slog"

	"moortracker/internal/auth/metrics"
	"moortracker/internal/auth/ports"
	"moortracker/internal/auth/session"
	id "moortracker/pkg/domain"
)

const (
	opSignIn         = "sign_in"
	opSignUp         = "sign_up"
	opSignOut        = "sign_out"
	opGoogleRedirect = "google_redirect"
	opIDToken        = "id_token"
)

// Service runs the auth operations. Every operation returns a models.Outcome and
// never a Go error: remote failures are converted at this boundary.
// Operations are independent; concurrent calls are not de-duplicated.
type Service struct {
	remote      ports.RemoteAuthClient
	browser     ports.Browser
	store       *session.Store
	logger      *slog.Logger
	metrics     *metrics.Metrics
	redirectURL string
	provider    id.Provider
	scopes      []string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithBrowser sets the external browser session used by the redirect flow.
func WithBrowser(b ports.Browser) Option {
	return func(s *Service) {
		s.browser = b
	}
}

// WithRedirectURL sets where the identity provider sends the user back to.
func WithRedirectURL(u string) Option {
	return func(s *Service) {
		s.redirectURL = u
	}
}

// WithProvider overrides the OAuth provider used by the redirect and id-token flows.
// Defaults to Google.
func WithProvider(p id.Provider) Option {
	return func(s *Service) {
		if p != "" {
			s.provider = p
		}
	}
}

// WithScopes requests extra provider scopes in the redirect flow.
func WithScopes(scopes ...string) Option {
	return func(s *Service) {
		s.scopes = scopes
	}
}

// New builds the operations service. store is the session store sign-out clears.
func New(remote ports.RemoteAuthClient, store *session.Store, opts ...Option) *Service {
	svc := &Service{
		remote:   remote,
		store:    store,
		provider: id.ProviderGoogle,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}
