package app

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"academy-service/internal/config"
	"academy-service/internal/http/handlers"
	"academy-service/internal/http/middleware"
	"academy-service/internal/http/middleware/ratelimit"
	"academy-service/internal/http/router"
	"academy-service/internal/logx"
	"academy-service/internal/metrics"
)

const (
	rateLimitIdleTTL    = 10 * time.Minute
	rateLimitMaxClients = 10000
)

// newRateLimiter returns nil when the limit is disabled.
func newRateLimiter(cfg *config.Config) ratelimit.Limiter {
	rl := cfg.RateLimit
	if rl.RPS <= 0 {
		return nil
	}
	return ratelimit.NewClientBuckets(nil, ratelimit.Config{
		Rate:       rl.RPS,
		Burst:      rl.Burst,
		IdleTTL:    rateLimitIdleTTL,
		MaxClients: rateLimitMaxClients,
	})
}

func newRateLimitMiddleware(logger logx.Logger, m *metrics.HTTP, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, m.Throttled, limiter)
}

type routerIn struct {
	dig.In

	Logger   logx.Logger
	Registry *prometheus.Registry
	HTTP     *metrics.HTTP
	Limit    *ratelimit.Middleware
	Base     *handlers.Handlers
	Teachers *handlers.TeacherHandler
	Students *handlers.StudentHandler
	Courses  *handlers.CourseHandler
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Params{
		Base:          in.Base,
		Teachers:      in.Teachers,
		Students:      in.Students,
		Courses:       in.Courses,
		Observability: middleware.Observability(in.Logger, in.HTTP),
		Throttle:      in.Limit.Handler(),
		Metrics:       promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{}),
	})
}
