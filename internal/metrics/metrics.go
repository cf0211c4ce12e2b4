package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Relationship operations, used as the "operation" label value.
const (
	OpEnroll  = "enroll"
	OpExclude = "exclude"
	OpAppoint = "appoint"
	OpResign  = "resign"
)

// Changes counts committed relationship changes by operation.
type Changes struct {
	total *prometheus.CounterVec
}

// NewChanges creates the relationship change counter and registers it with reg.
func NewChanges(reg prometheus.Registerer) (*Changes, error) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_relationship_changes_total",
		Help: "Total number of committed relationship changes between teachers, students and courses",
	}, []string{"operation"})
	if err := reg.Register(total); err != nil {
		return nil, fmt.Errorf("register relationship changes: %w", err)
	}
	return &Changes{total: total}, nil
}

// Inc records one committed change. A nil Changes is a no-op.
func (c *Changes) Inc(operation string) {
	if c == nil {
		return
	}
	c.total.WithLabelValues(operation).Inc()
}

// Counter exposes the underlying vector for tests.
func (c *Changes) Counter() *prometheus.CounterVec { return c.total }

// HTTP groups the request collectors used by the observability middleware.
type HTTP struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Throttled       prometheus.Counter
}

// NewHTTP creates the HTTP collectors and registers them with reg.
func NewHTTP(reg prometheus.Registerer) (*HTTP, error) {
	m := &HTTP{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "academy_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "academy_http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		Throttled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_http_throttled_total",
			Help: "Write requests rejected by the per-client rate limit",
		}),
	}
	for _, c := range []prometheus.Collector{m.RequestsTotal, m.RequestDuration, m.Throttled} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
	}
	return m, nil
}

// NewTxRetries creates the counter of units of work rerun after a transient database failure.
func NewTxRetries(reg prometheus.Registerer) (prometheus.Counter, error) {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "academy_tx_retries_total",
		Help: "Units of work retried after a serialization failure or deadlock",
	})
	if err := reg.Register(c); err != nil {
		return nil, fmt.Errorf("register tx retries: %w", err)
	}
	return c, nil
}
