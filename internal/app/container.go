package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"academy-service/internal/config"
	"academy-service/internal/http/handlers"
	"academy-service/internal/logx"
	"academy-service/internal/metrics"
	"academy-service/internal/ports/academytx"
	"academy-service/internal/repository"
	"academy-service/internal/service/course"
	"academy-service/internal/service/student"
	"academy-service/internal/service/teacher"
)

const (
	txRetryBaseDelay = 10 * time.Millisecond
	txRetryMaxDelay  = 200 * time.Millisecond
)

type (
	dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)
	migrateFunc   func(ctx context.Context, logger logx.Logger, pool *pgxpool.Pool, seed bool) error
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	migrate   migrateFunc
	loadCfg   func() (*config.Config, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		migrate:   runMigrations,
		loadCfg:   config.Load,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the function applying schema migrations after connect.
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithConfig replaces config.Load.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadCfg = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadCfg); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadCfg func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadCfg,
		NewLogger,
		prometheus.NewRegistry,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), cfg.DB.ConnectRetries, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, logger, pool, cfg.DB.Seed); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewAcademyRepo,
		func(reg *prometheus.Registry) (prometheus.Counter, error) { return metrics.NewTxRetries(reg) },
		func(cfg *config.Config, repo *repository.AcademyRepo, logger logx.Logger, retries prometheus.Counter) academytx.Runner {
			return repository.NewRetryingRunner(repo, logger, retries, repository.RetryConfig{
				MaxAttempts: cfg.DB.TxAttempts,
				BaseDelay:   txRetryBaseDelay,
				MaxDelay:    txRetryMaxDelay,
			})
		},
		func(reg *prometheus.Registry) (*metrics.Changes, error) { return metrics.NewChanges(reg) },
		func(cfg *config.Config, runner academytx.Runner, logger logx.Logger, changes *metrics.Changes) *teacher.Service {
			return teacher.NewService(runner, cfg.Service.OperationTimeout, logger, changes)
		},
		func(cfg *config.Config, runner academytx.Runner, logger logx.Logger, changes *metrics.Changes) *student.Service {
			return student.NewService(runner, cfg.Service.OperationTimeout, logger, changes)
		},
		func(cfg *config.Config, runner academytx.Runner, logger logx.Logger, changes *metrics.Changes) *course.Service {
			return course.NewService(runner, cfg.Service.OperationTimeout, logger, changes)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewTeacherUsecase,
		handlers.NewTeacherHandler,
		handlers.NewStudentUsecase,
		handlers.NewStudentHandler,
		handlers.NewCourseUsecase,
		handlers.NewCourseHandler,
		func(reg *prometheus.Registry) (*metrics.HTTP, error) { return metrics.NewHTTP(reg) },
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}
