package middleware

import (
	"sync"

	"questboard/src/core/helpers"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimit returns a per-IP token-bucket limiter. Buckets are kept for
// the lifetime of the process; the auth endpoints are the only consumers
// so the map stays small.
func RateLimit(r rate.Limit, burst int) fiber.Handler {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := buckets[ip]
		if !ok {
			l = rate.NewLimiter(r, burst)
			buckets[ip] = l
		}
		return l
	}

	return func(c *fiber.Ctx) error {
		if !limiterFor(c.IP()).Allow() {
			return helpers.HandleError(c, fiber.StatusTooManyRequests, "Too many requests, slow down", nil)
		}
		return c.Next()
	}
}
