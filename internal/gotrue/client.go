// Package gotrue is a client for GoTrue-compatible hosted identity services.
// It owns the wire format, session persistence and change notifications, and
// satisfies ports.RemoteAuthClient.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"moortracker/internal/auth/models"
	id "moortracker/pkg/domain"
	dErrors "moortracker/pkg/domain-errors"
)

const (
	authPath          = "/auth/v1"
	defaultStorageKey = "moortracker-auth-token"
	defaultTimeout    = 10 * time.Second
	// expiryMargin refreshes a session slightly before its access token expires.
	expiryMargin = 10 * time.Second
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client. URL and APIKey are required.
type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Storage    Storage
	StorageKey string
	Clock      clockwork.Clock
	Logger     *slog.Logger
	Tracer     trace.Tracer
}

// Client talks to the identity service and keeps the current session.
type Client struct {
	baseURL    string
	apiKey     string
	http       HTTPDoer
	storage    Storage
	storageKey string
	clock      clockwork.Clock
	logger     *slog.Logger
	tracer     trace.Tracer

	mu        sync.Mutex
	session   *models.Session
	loaded    bool
	listeners map[id.ListenerID]models.AuthStateListener

	// refreshMu serializes token refreshes.
	refreshMu sync.Mutex
}

// New builds a client from cfg.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "identity service URL must be an absolute http(s) URL")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "identity service API key is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(base.String(), "/") + authPath,
		apiKey:     cfg.APIKey,
		http:       selectHTTPClient(cfg),
		storage:    cfg.Storage,
		storageKey: cfg.StorageKey,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		listeners:  make(map[id.ListenerID]models.AuthStateListener),
	}
	if c.storage == nil {
		c.storage = NewMemoryStorage()
	}
	if c.storageKey == "" {
		c.storageKey = defaultStorageKey
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("moortracker/gotrue")
	}
	return c, nil
}

func selectHTTPClient(cfg Config) HTTPDoer {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// call describes one request against the auth API.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        any
	accessToken string
}

// do executes a call inside a span and decodes a 2xx JSON body into out.
// Non-2xx responses are converted to domain errors.
func (c *Client) do(ctx context.Context, req call, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "gotrue."+req.op, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("gotrue.path", req.path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, mErr := json.Marshal(req.body)
		if mErr != nil {
			return dErrors.Wrap(mErr, dErrors.CodeInternal, "failed to encode request")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	httpReq.Header.Set("apikey", c.apiKey)
	bearer := c.apiKey
	if req.accessToken != "" {
		bearer = req.accessToken
	}
	httpReq.Header.Set("Authorization", "Bearer "+bearer)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemote, "failed to read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemote, fmt.Sprintf("unexpected response from %s", req.path))
	}
	return nil
}
