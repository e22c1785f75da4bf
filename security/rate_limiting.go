package security

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"facility-booking/monitoring"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis  *redis.Client
	window time.Duration
	max    int64
}

func NewRateLimiter(redisClient *redis.Client, window time.Duration, max int64) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		window: window,
		max:    max,
	}
}

// ReservationRateLimit throttles reservation creation per user (per IP
// for unauthenticated requests, which fail auth later anyway).
func (r *RateLimiter) ReservationRateLimit() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		identifier := clientIP(e.Request)
		if e.Auth != nil {
			identifier = fmt.Sprintf("user:%s", e.Auth.Id)
		}

		// Check for bot patterns
		userAgent := e.Request.Header.Get("User-Agent")
		if isSuspiciousUserAgent(userAgent) {
			return e.JSON(http.StatusForbidden, map[string]string{
				"error": "Access denied",
			})
		}

		ctx := e.Request.Context()
		key := fmt.Sprintf("ratelimit:reservations:%s", identifier)

		count, err := r.redis.Incr(ctx, key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(ctx, key, r.window)
			}
			if count > r.max {
				monitoring.TrackRateLimited()
				return e.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Rate limit exceeded. Please try again later.",
				})
			}
		}

		return e.Next()
	}
}

func clientIP(req *http.Request) string {
	if fwd := req.Header.Get("x-forwarded-for"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return req.RemoteAddr
}

func isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
