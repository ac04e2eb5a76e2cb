package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"moortracker/internal/auth/metrics"
	"moortracker/internal/auth/models"
	"moortracker/internal/auth/ports"
)

var (
	ErrAlreadyStarted = errors.New("session controller already started")
	ErrTornDown       = errors.New("session controller torn down")
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseReady
	PhaseTornDown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhaseTornDown:
		return "torn_down"
	}
	return "unknown"
}

// Remote is the part of the identity client the controller needs.
type Remote interface {
	GetUser(ctx context.Context) (*models.User, error)
	OnAuthStateChange(listener models.AuthStateListener) ports.Subscription
}

type notification struct {
	event models.AuthEvent
	user  *models.User
}

// Controller bridges change notifications from the identity client into a Store.
//
// Notifications that arrive before the initial fetch resolves are buffered and
// replayed, in arrival order, right after the fetch result is applied.
type Controller struct {
	remote  Remote
	store   *Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	phase     Phase
	pending   []notification
	sub       ports.Subscription
	unobserve func()
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func NewController(remote Remote, store *Store, opts ...Option) *Controller {
	c := &Controller{
		remote: remote,
		store:  store,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Store returns the store this controller drives.
func (c *Controller) Store() *Store {
	return c.store
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Start subscribes to change notifications, performs the single initial user
// fetch and moves the controller to Ready. A failed fetch is recorded in the
// store's Error field; Start itself only fails on lifecycle misuse.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.phase {
	case PhaseIdle:
	case PhaseTornDown:
		c.mu.Unlock()
		return ErrTornDown
	default:
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.phase = PhaseInitializing
	if c.metrics != nil {
		c.unobserve = c.store.Subscribe(func(st State) {
			c.metrics.SetAuthenticated(st.IsAuthenticated())
		})
	}
	c.mu.Unlock()

	sub := c.remote.OnAuthStateChange(c.handle)

	c.mu.Lock()
	if c.phase == PhaseTornDown {
		c.mu.Unlock()
		if sub != nil {
			sub.Unsubscribe()
		}
		return nil
	}
	c.sub = sub
	c.mu.Unlock()

	user, err := c.remote.GetUser(ctx)
	if c.Phase() == PhaseTornDown {
		return nil
	}
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "failed to load current user"
		}
		c.logger.WarnContext(ctx, "initial user fetch failed",
			"error", err,
			"event", "session_initialized",
			"log_type", "standard",
		)
		c.store.resolveInitial(nil, msg)
	} else {
		c.store.resolveInitial(user, "")
		c.logger.InfoContext(ctx, "session_initialized",
			"authenticated", user != nil,
			"event", "session_initialized",
			"log_type", "audit",
		)
	}

	c.drain()
	return nil
}

// Run starts the controller and keeps it alive until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	c.Stop()
	return nil
}

// Stop cancels the subscription, resets the store's user to none and detaches
// its observers. Observers still see the reset. Terminal.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.phase == PhaseTornDown {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseTornDown
	sub := c.sub
	c.sub = nil
	c.pending = nil
	unobserve := c.unobserve
	c.unobserve = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
	c.store.SetUser(nil)
	if unobserve != nil {
		unobserve()
	}
	c.store.detach()
	c.logger.Info("session controller stopped")
}

func (c *Controller) handle(event models.AuthEvent, s *models.Session) {
	n := notification{event: event, user: models.UserOf(s)}

	c.mu.Lock()
	switch c.phase {
	case PhaseInitializing:
		c.pending = append(c.pending, n)
		c.mu.Unlock()
	case PhaseReady:
		c.mu.Unlock()
		c.apply(n)
	default:
		c.mu.Unlock()
	}
}

// drain replays buffered notifications until none are left, then enters Ready.
// Notifications arriving mid-replay are appended and picked up by the next pass.
func (c *Controller) drain() {
	for {
		c.mu.Lock()
		if c.phase != PhaseInitializing {
			c.mu.Unlock()
			return
		}
		if len(c.pending) == 0 {
			c.phase = PhaseReady
			c.mu.Unlock()
			return
		}
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()

		for _, n := range batch {
			c.apply(n)
		}
	}
}

func (c *Controller) apply(n notification) {
	if c.Phase() == PhaseTornDown {
		return
	}
	c.store.SetUser(n.user)
	c.logger.Info("auth state changed",
		"event", n.event.String(),
		"authenticated", n.user != nil,
		"log_type", "audit",
	)
	if c.metrics != nil {
		c.metrics.IncrementNotifications(n.event.String())
	}
}
