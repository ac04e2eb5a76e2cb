// Package browser runs the external part of the OAuth redirect flow on a
// desktop: it opens the system browser and catches the redirect on a loopback
// HTTP listener.
package browser

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/skratchdot/open-golang/open"
	"golang.org/x/sync/errgroup"

	"moortracker/internal/auth/models"
	"moortracker/internal/auth/ports"
	"moortracker/internal/platform/middleware"
	dErrors "moortracker/pkg/domain-errors"
)

const (
	defaultTimeout  = 5 * time.Minute
	shutdownTimeout = 2 * time.Second
)

const closePage = `<!doctype html><html><body><p>Sign-in complete. You can close this window.</p></body></html>`

var _ ports.Browser = (*Loopback)(nil)

// Opener shows a URL to the user.
type Opener func(url string) error

// Loopback waits for the identity provider's redirect on a local listener.
type Loopback struct {
	timeout time.Duration
	open    Opener
	logger  *slog.Logger
}

type Option func(*Loopback)

// WithTimeout bounds how long the user has to finish signing in.
// After it elapses the session ends as dismissed.
func WithTimeout(d time.Duration) Option {
	return func(l *Loopback) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithOpener replaces the system browser launcher.
func WithOpener(o Opener) Option {
	return func(l *Loopback) {
		l.open = o
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loopback) {
		l.logger = logger
	}
}

func NewLoopback(opts ...Option) *Loopback {
	l := &Loopback{
		timeout: defaultTimeout,
		open:    open.Run,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// OpenAuthSession serves redirectURL's path on its loopback host:port, opens
// authURL and waits for the first callback. Context cancellation ends the
// session as cancelled, the timeout as dismissed.
func (l *Loopback) OpenAuthSession(ctx context.Context, authURL, redirectURL string) (models.BrowserResult, error) {
	redirect, err := parseRedirect(redirectURL)
	if err != nil {
		return models.BrowserResult{}, err
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return models.BrowserResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to listen for the OAuth callback")
	}

	callbacks := make(chan string, 1)
	r := chi.NewRouter()
	r.Use(middleware.Recovery(l.logger))
	r.Use(middleware.Logger(l.logger))
	r.Get(callbackPath(redirect), func(w http.ResponseWriter, req *http.Request) {
		cb := *redirect
		cb.RawQuery = req.URL.RawQuery
		select {
		case callbacks <- cb.String():
		default:
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(closePage))
	})
	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}

	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	g, gctx := errgroup.WithContext(waitCtx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "OAuth callback listener failed")
		}
		return nil
	})

	var result models.BrowserResult
	g.Go(func() error {
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()

		if err := l.open(authURL); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to open the browser")
		}
		l.logger.InfoContext(ctx, "waiting for OAuth callback", "redirect_url", redirect.String(), "timeout", l.timeout)

		select {
		case cb := <-callbacks:
			result = models.BrowserResult{Type: models.BrowserResultSuccess, URL: cb}
		case <-gctx.Done():
			switch {
			case ctx.Err() != nil:
				result = models.BrowserResult{Type: models.BrowserResultCancel}
			case errors.Is(waitCtx.Err(), context.DeadlineExceeded):
				result = models.BrowserResult{Type: models.BrowserResultDismiss}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.BrowserResult{}, err
	}
	return result, nil
}

// parseRedirect accepts only plain http on a loopback host with an explicit port.
func parseRedirect(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid redirect URL")
	}
	if u.Scheme != "http" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "redirect URL must use http for a loopback callback")
	}
	if u.Port() == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "redirect URL must include a port")
	}
	if !isLoopback(u.Hostname()) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "redirect URL host must be a loopback address")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func callbackPath(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}
