// Package cli wires the auth session into a cobra command tree.
package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"moortracker/internal/auth/metrics"
	"moortracker/internal/auth/ports"
	"moortracker/internal/auth/service"
	"moortracker/internal/auth/session"
	id "moortracker/pkg/domain"
)

// ErrFailed is returned by a command whose auth outcome was already reported
// to the user. Callers only need to set the exit status.
var ErrFailed = errors.New("auth operation failed")

// Deps are the collaborators the commands run against.
type Deps struct {
	Remote      ports.RemoteAuthClient
	Browser     ports.Browser
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Prompter    Prompter
	RedirectURL string
	Provider    id.Provider
}

// App holds the per-invocation auth scope: the lifecycle controller and the
// operations bound to its store.
type App struct {
	deps       Deps
	controller *session.Controller
	service    *service.Service
}

// NewRootCmd builds the command tree. Every subcommand runs inside an auth
// scope opened in PersistentPreRunE and closed in PersistentPostRun.
func NewRootCmd(deps Deps) (*cobra.Command, *App) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Prompter == nil {
		deps.Prompter = HuhPrompter{}
	}
	app := &App{deps: deps}

	root := &cobra.Command{
		Use:   "moorauth",
		Short: "Sign in to MoorTracker",
		Long: `moorauth manages your MoorTracker account session.

The session is kept on disk between runs and refreshed automatically.

Examples:
  moorauth signin --email you@example.com
  moorauth google
  moorauth whoami`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
	}

	root.AddCommand(
		newSignInCmd(app),
		newSignUpCmd(app),
		newSignOutCmd(app),
		newGoogleCmd(app),
		newWhoAmICmd(app),
		newWatchCmd(app),
	)
	return root, app
}

// open starts the lifecycle controller and puts its store in the command context.
func (a *App) open(cmd *cobra.Command) error {
	ctx := cmd.Context()
	store := session.NewStore()
	a.controller = session.NewController(a.deps.Remote, store,
		session.WithLogger(a.deps.Logger),
		session.WithMetrics(a.deps.Metrics),
	)
	if err := a.controller.Start(ctx); err != nil {
		return err
	}

	opts := []service.Option{
		service.WithLogger(a.deps.Logger),
		service.WithMetrics(a.deps.Metrics),
		service.WithRedirectURL(a.deps.RedirectURL),
		service.WithProvider(a.deps.Provider),
	}
	if a.deps.Browser != nil {
		opts = append(opts, service.WithBrowser(a.deps.Browser))
	}
	a.service = service.New(a.deps.Remote, store, opts...)

	cmd.SetContext(session.NewContext(ctx, store))
	return nil
}

// Close ends the auth scope. Safe to call more than once, and when a command
// failed before PersistentPostRun could run.
func (a *App) Close() {
	if a.controller != nil {
		a.controller.Stop()
	}
}
