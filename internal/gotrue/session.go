package gotrue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"moortracker/internal/auth/models"
	id "moortracker/pkg/domain"
)

// loadSession returns the in-memory session, reading storage on first use.
// A stored session that cannot be decoded is discarded.
func (c *Client) loadSession(ctx context.Context) (*models.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.session, nil
	}

	raw, ok, err := c.storage.GetItem(c.storageKey)
	if err != nil {
		return nil, err
	}
	c.loaded = true
	if !ok || raw == "" {
		return nil, nil
	}

	var stored sessionJSON
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		c.logger.WarnContext(ctx, "discarding unreadable stored session", "error", err)
		_ = c.storage.RemoveItem(c.storageKey)
		return nil, nil
	}
	s, err := stored.toModel(c.clock.Now())
	if err != nil {
		c.logger.WarnContext(ctx, "discarding invalid stored session", "error", err)
		_ = c.storage.RemoveItem(c.storageKey)
		return nil, nil
	}
	c.session = s
	return s, nil
}

// saveSession persists s and makes it current. A storage failure is logged; the
// in-memory session still applies for the rest of the process.
func (c *Client) saveSession(ctx context.Context, s *models.Session) {
	c.mu.Lock()
	c.session = s
	c.loaded = true
	c.mu.Unlock()

	raw, err := json.Marshal(sessionFromModel(s))
	if err == nil {
		err = c.storage.SetItem(c.storageKey, string(raw))
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to persist session", "error", err)
	}
}

func (c *Client) removeSession(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.loaded = true
	c.mu.Unlock()

	if err := c.storage.RemoveItem(c.storageKey); err != nil {
		c.logger.ErrorContext(ctx, "failed to remove stored session", "error", err)
	}
}

// currentSession returns a usable session, refreshing it when the access token
// has expired. A refresh rejected by the service signs the user out locally.
func (c *Client) currentSession(ctx context.Context) (*models.Session, error) {
	s, err := c.loadSession(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	if !s.IsExpired(c.clock.Now(), expiryMargin) {
		return s, nil
	}
	if s.RefreshToken == "" {
		c.removeSession(ctx)
		c.notify(models.EventSignedOut, nil)
		return nil, nil
	}
	return c.refresh(ctx, s)
}

func (c *Client) refresh(ctx context.Context, stale *models.Session) (*models.Session, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	c.mu.Lock()
	current := c.session
	c.mu.Unlock()
	if current != nil && current != stale && !current.IsExpired(c.clock.Now(), expiryMargin) {
		return current, nil
	}

	var resp sessionJSON
	err := c.do(ctx, call{
		op:     "refresh",
		method: http.MethodPost,
		path:   "/token",
		query:  url.Values{"grant_type": {id.GrantTypeRefreshToken.String()}},
		body:   refreshGrant{RefreshToken: stale.RefreshToken},
	}, &resp)
	if err != nil {
		if isSessionGone(err) {
			c.logger.InfoContext(ctx, "session refresh rejected", "event", "session_expired", "error", err)
			c.removeSession(ctx)
			c.notify(models.EventSignedOut, nil)
			return nil, nil
		}
		return nil, err
	}

	s, err := resp.toModel(c.clock.Now())
	if err != nil {
		return nil, err
	}
	if s.User == nil {
		s.User = stale.User
	}
	c.saveSession(ctx, s)
	c.logger.DebugContext(ctx, "session refreshed", "event", "token_refreshed")
	c.notify(models.EventTokenRefreshed, s)
	return s, nil
}

// Session returns the current session, refreshing it if needed.
func (c *Client) Session(ctx context.Context) (*models.Session, error) {
	return c.currentSession(ctx)
}
