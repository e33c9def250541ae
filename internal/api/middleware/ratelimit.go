package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// OnLimited is called when a request is turned away.
type OnLimited func(c echo.Context)

// RateLimitPerIP applies a token bucket per client address. Buckets idle for
// longer than idleTTL are dropped on the next request that triggers a sweep.
func RateLimitPerIP(rps rate.Limit, burst int, idleTTL time.Duration, onLimited OnLimited) echo.MiddlewareFunc {
	type bucket struct {
		lim  *rate.Limiter
		seen time.Time
	}
	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep = time.Now()
	)

	allow := func(ip string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()

		if idleTTL > 0 && now.Sub(lastSweep) > idleTTL {
			for k, b := range buckets {
				if now.Sub(b.seen) > idleTTL {
					delete(buckets, k)
				}
			}
			lastSweep = now
		}

		b, ok := buckets[ip]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rps, burst)}
			buckets[ip] = b
		}
		b.seen = now
		return b.lim.AllowN(now, 1)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allow(c.RealIP(), time.Now()) {
				return next(c)
			}
			if onLimited != nil {
				onLimited(c)
			}
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		}
	}
}
