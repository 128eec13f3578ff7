package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting settings.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// clientLimiter tracks one token bucket per caller IP. Stale entries are
// dropped after three minutes of inactivity.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
}

func newClientLimiter(cfg RateLimitConfig) *clientLimiter {
	return &clientLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.BurstSize,
	}
}

func (cl *clientLimiter) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if c, ok := cl.clients[ip]; ok {
		c.seen = time.Now()
		return c.lim
	}

	for ip, c := range cl.clients {
		if time.Since(c.seen) > 3*time.Minute {
			delete(cl.clients, ip)
		}
	}

	l := rate.NewLimiter(cl.r, cl.burst)
	cl.clients[ip] = &client{lim: l, seen: time.Now()}
	return l
}

// RateLimit limits requests per caller IP. Rejected requests get a 429 with a
// Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimitConfig()
	}
	cl := newClientLimiter(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cl.get(c.RealIP()).Allow() {
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusTooManyRequests, "Demasiadas solicitudes.")
			}
			return next(c)
		}
	}
}
