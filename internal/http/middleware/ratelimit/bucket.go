package ratelimit

import (
	"sync"
	"time"
)

// Config stores per-client token bucket settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	IdleTTL    time.Duration // forget clients idle for longer than this, 0 keeps them forever
	MaxClients int           // refuse new clients past this many tracked ones, 0 means unbounded
}

// ClientBuckets keeps one token bucket per client key.
type ClientBuckets struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	tokens float64
	last   time.Time
}

// NewClientBuckets creates a limiter; a nil clock means wall time.
func NewClientBuckets(clock Clock, cfg Config) *ClientBuckets {
	if clock == nil {
		clock = realClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxClients < 0 {
		cfg.MaxClients = 0
	}
	return &ClientBuckets{cfg: cfg, clock: clock, clients: make(map[string]*clientBucket)}
}

// Allow takes one token from key's bucket.
func (l *ClientBuckets) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.clients[key]
	if !ok {
		if l.cfg.MaxClients > 0 && len(l.clients) >= l.cfg.MaxClients {
			return false
		}
		b = &clientBucket{tokens: float64(l.cfg.Burst), last: now}
		l.clients[key] = b
	}

	if dt := now.Sub(b.last); dt > 0 {
		b.tokens = min(b.tokens+dt.Seconds()*l.cfg.Rate, float64(l.cfg.Burst))
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Tracked reports how many clients currently hold a bucket.
func (l *ClientBuckets) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep must be called with mu held.
func (l *ClientBuckets) sweep(now time.Time) {
	if l.cfg.IdleTTL <= 0 {
		return
	}
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < l.cfg.IdleTTL/2 {
		return
	}
	l.lastSweep = now
	for k, b := range l.clients {
		if now.Sub(b.last) > l.cfg.IdleTTL {
			delete(l.clients, k)
		}
	}
}
