package service

import (
	"context"
	"time"

	"moortracker/internal/auth/metrics"
	"moortracker/internal/auth/models"
	dErrors "moortracker/pkg/domain-errors"
)

// Observability helpers for logging and metrics.

func (s *Service) succeeded(ctx context.Context, op string, attributes ...any) {
	args := append(attributes, "operation", op, "event", op+"_succeeded", "log_type", "audit")
	s.logger.InfoContext(ctx, op+"_succeeded", args...)
	if s.metrics != nil {
		s.metrics.IncrementOperation(op, metrics.ResultSuccess)
	}
}

// fail logs the failure, counts it and converts it into a failed outcome.
// Internal failures log at error level; everything else is an expected auth failure.
func (s *Service) fail(ctx context.Context, op string, err error, attributes ...any) models.Outcome {
	outcome := models.Failed(err)
	args := append(attributes,
		"operation", op,
		"event", "auth_failed",
		"reason", string(outcome.Code),
		"error", err,
		"log_type", "standard",
	)
	if outcome.Code == dErrors.CodeInternal {
		s.logger.ErrorContext(ctx, "auth_failed", args...)
	} else {
		s.logger.WarnContext(ctx, "auth_failed", args...)
	}
	if s.metrics != nil {
		s.metrics.IncrementOperation(op, metrics.ResultFailure)
	}
	return outcome
}

func (s *Service) observeDuration(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperationDuration(op, float64(time.Since(start).Milliseconds()))
	}
}
