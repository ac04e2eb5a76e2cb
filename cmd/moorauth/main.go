package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"moortracker/internal/auth/metrics"
	"moortracker/internal/browser"
	"moortracker/internal/cli"
	"moortracker/internal/gotrue"
	"moortracker/internal/platform/config"
	"moortracker/internal/platform/logger"
)

// main loads configuration, builds the identity client and hands control to
// the command tree. Configuration errors stop the process before any command runs.
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return 2
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(log)

	client, err := gotrue.New(gotrue.Config{
		URL:        cfg.APIURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Storage:    gotrue.NewFileStorage(cfg.SessionFile),
		Logger:     log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return 2
	}

	reg := prometheus.NewRegistry()
	root, app := cli.NewRootCmd(cli.Deps{
		Remote:      client,
		Browser:     browser.NewLoopback(browser.WithTimeout(cfg.BrowserTimeout), browser.WithLogger(log)),
		Logger:      log,
		Metrics:     metrics.New(reg),
		RedirectURL: cfg.RedirectURL,
		Provider:    cfg.OAuthProvider,
	})
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = root.ExecuteContext(ctx)
	logMetrics(log, reg)
	if err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

// logMetrics writes the collected counters at debug level; the process is too
// short-lived to be scraped.
func logMetrics(log *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Debug("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"metric", mf.GetName()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				attrs = append(attrs, "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				attrs = append(attrs, "value", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				attrs = append(attrs, "count", m.GetHistogram().GetSampleCount(), "sum", m.GetHistogram().GetSampleSum())
			}
			log.Debug("metric", attrs...)
		}
	}
}
