package gotrue

import (
	"context"
	"sync"

	"moortracker/internal/auth/models"
	"moortracker/internal/auth/ports"
	id "moortracker/pkg/domain"
)

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// OnAuthStateChange registers listener for change notifications. The listener
// first receives INITIAL_SESSION with the current usable session, delivered on
// its own goroutine, then every later event synchronously on the goroutine
// causing it. An expired session that could not be refreshed is reported as nil.
func (c *Client) OnAuthStateChange(listener models.AuthStateListener) ports.Subscription {
	lid := id.NewListenerID()

	c.mu.Lock()
	c.listeners[lid] = listener
	c.mu.Unlock()

	go func() {
		if _, err := c.currentSession(context.Background()); err != nil {
			c.logger.Warn("failed to load initial session", "error", err)
		}
		s, ok := c.initialSession(lid)
		if !ok {
			return
		}
		listener(models.EventInitialSession, s)
	}()

	return &subscription{cancel: func() {
		c.mu.Lock()
		delete(c.listeners, lid)
		c.mu.Unlock()
	}}
}

// initialSession reads the session as it stands now, so a sign-out or refresh
// that raced the initial load is reflected. ok is false once lid unsubscribed.
func (c *Client) initialSession(lid id.ListenerID) (s *models.Session, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok = c.listeners[lid]; !ok {
		return nil, false
	}
	if c.session == nil || c.session.IsExpired(c.clock.Now(), expiryMargin) {
		return nil, true
	}
	return c.session, true
}

// notify calls listeners outside the lock so they may call back into the client.
func (c *Client) notify(event models.AuthEvent, s *models.Session) {
	c.mu.Lock()
	listeners := make([]models.AuthStateListener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(event, s)
	}
}
