package api

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/brandboost/leadmanager/internal/api/respond"
)

// --------------------------------------------------------------------------
// Request timing middleware
// --------------------------------------------------------------------------

// timedWriter injects the X-Process-Time header just before the response
// status is committed. Headers set after the handler has written are lost.
type timedWriter struct {
	http.ResponseWriter
	start     time.Time
	committed bool
}

func (t *timedWriter) WriteHeader(status int) {
	if !t.committed {
		t.committed = true
		elapsed := time.Since(t.start)
		t.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", float64(elapsed.Microseconds())/1000.0))
	}
	t.ResponseWriter.WriteHeader(status)
}

func (t *timedWriter) Write(b []byte) (int, error) {
	if !t.committed {
		t.WriteHeader(http.StatusOK)
	}
	return t.ResponseWriter.Write(b)
}

// TimingMiddleware adds an X-Process-Time header to every response.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&timedWriter{ResponseWriter: w, start: time.Now()}, r)
	})
}

// --------------------------------------------------------------------------
// Rate limiting middleware (per-client token bucket)
// --------------------------------------------------------------------------

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*client
	rate      rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

func newClientLimiters(requestsPerWindow int, window time.Duration) *clientLimiters {
	return &clientLimiters{
		clients:   make(map[string]*client),
		rate:      rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:     max(1, requestsPerWindow/2),
		idleAfter: 10 * window,
		lastSweep: time.Now(),
	}
}

func (l *clientLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	// Drop buckets for clients that went quiet so the map stays bounded.
	if now.Sub(l.lastSweep) > l.idleAfter {
		l.lastSweep = now
		for key, cl := range l.clients {
			if now.Sub(cl.lastSeen) > l.idleAfter {
				delete(l.clients, key)
			}
		}
	}

	return c.limiter.Allow()
}

// RateLimitMiddleware returns middleware that rate-limits by client IP.
func RateLimitMiddleware(requestsPerWindow int, window time.Duration) func(http.Handler) http.Handler {
	limiters := newClientLimiters(requestsPerWindow, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !limiters.allow(ip) {
				w.Header().Set("Retry-After", "60")
				respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
