package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// RateLimiter implements a simple token bucket rate limiter.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter that allows rps requests per second.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		tokens:     float64(rps),
		maxTokens:  float64(rps),
		refillRate: float64(rps),
		lastRefill: time.Now(),
	}
}

// Allow reports whether a single request is permitted.
// It consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// DefaultClientIdleTTL is how long a client's bucket survives without requests.
const DefaultClientIdleTTL = 10 * time.Minute

// PerClientRateLimiter keeps one token bucket per client key. Buckets idle
// for longer than the TTL are evicted.
type PerClientRateLimiter struct {
	mu      sync.Mutex
	rps     int
	clients *cache.Cache
}

// NewPerClientRateLimiter creates a limiter allowing rps requests per
// second to each client, evicting buckets after DefaultClientIdleTTL.
func NewPerClientRateLimiter(rps int) *PerClientRateLimiter {
	return NewPerClientRateLimiterWithTTL(rps, DefaultClientIdleTTL)
}

// NewPerClientRateLimiterWithTTL creates a limiter whose buckets expire
// after idleTTL without requests.
func NewPerClientRateLimiterWithTTL(rps int, idleTTL time.Duration) *PerClientRateLimiter {
	return &PerClientRateLimiter{
		rps:     rps,
		clients: cache.New(idleTTL, idleTTL),
	}
}

// Allow reports whether a request from key is permitted.
func (p *PerClientRateLimiter) Allow(key string) bool {
	p.mu.Lock()
	var limiter *RateLimiter
	if v, ok := p.clients.Get(key); ok {
		limiter = v.(*RateLimiter)
	} else {
		limiter = NewRateLimiter(p.rps)
	}
	// Refresh the expiry on every request.
	p.clients.SetDefault(key, limiter)
	p.mu.Unlock()

	return limiter.Allow()
}

// Clients returns the number of tracked buckets, including expired ones
// not yet swept.
func (p *PerClientRateLimiter) Clients() int {
	return p.clients.ItemCount()
}

// PerClientRateLimitMiddleware rate limits requests by client IP.
func PerClientRateLimitMiddleware(limiter *PerClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				tooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func tooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"error":"rate limit exceeded"}`))
}
