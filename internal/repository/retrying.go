package repository

import (
	"context"
	"time"

	"academy-service/internal/logx"
	"academy-service/internal/ports/academytx"
)

type counter interface {
	Inc()
}

// RetryConfig describes how RetryingRunner repeats a failed unit of work.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingRunner reruns a whole unit of work when PostgreSQL aborts it with a
// serialization failure or a deadlock. Any other error is returned as is.
type RetryingRunner struct {
	next    academytx.Runner
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingRunner wraps next. Attempts below one are treated as one.
func NewRetryingRunner(next academytx.Runner, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingRunner {
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingRunner{next: next, logger: logger, retries: retries, cfg: cfg}
}

var _ academytx.Runner = (*RetryingRunner)(nil)

// WithTx runs fn through the wrapped runner, retrying transient failures.
func (r *RetryingRunner) WithTx(ctx context.Context, fn func(tx academytx.Repository) error) error {
	return r.retry(ctx, func() error { return r.next.WithTx(ctx, fn) })
}

// WithReadTx is WithTx for read-only units of work.
func (r *RetryingRunner) WithReadTx(ctx context.Context, fn func(tx academytx.Repository) error) error {
	return r.retry(ctx, func() error { return r.next.WithReadTx(ctx, fn) })
}

func (r *RetryingRunner) retry(ctx context.Context, run func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := run()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !IsTransient(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("unit of work retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// backoff doubles base per attempt and never exceeds max, including when the
// shift would overflow.
func backoff(base, max time.Duration, attempt int) time.Duration {
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if shift >= 63 {
		return max
	}
	d := base << shift
	if d>>shift != base || d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
