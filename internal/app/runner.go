package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"academy-service/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// Runner starts the service from a built container.
type Runner struct {
	runFn  func(*dig.Container) error
	exitFn func(int)
}

// NewRunner returns a Runner bound to the real run loop.
func NewRunner() *Runner {
	return &Runner{runFn: run, exitFn: os.Exit}
}

// MustRun runs the service and exits the process on a fatal error.
func (r *Runner) MustRun(container *dig.Container) {
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	err := r.runFn(container)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		_ = logger.Sync()
		r.exitFn(1)
	}
}

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

func run(container *dig.Container) error {
	return container.Invoke(func(ctx context.Context, server *http.Server, pool *pgxpool.Pool, logger logx.Logger) error {
		serveErr := startServer(server, logger)

		select {
		case err := <-serveErr:
			closeResources(pool, server, logger)
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down academy service")
		gracefulShutdown(server, logger, shutdownTimeout)
		closeResources(pool, server, logger)
		return ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("academy service listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, server *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Warn("server close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
}
