// Package ratelimit provides per-IP request limits for the echo router,
// kept in memory or shared between instances through Redis.
package ratelimit

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Limit allows Requests per Window for each client
type Limit struct {
	Name     string
	Requests int
	Window   time.Duration
}

// PerDay builds a daily limit
func PerDay(name string, requests int) Limit {
	return Limit{Name: name, Requests: requests, Window: 24 * time.Hour}
}

// PerHour builds an hourly limit
func PerHour(name string, requests int) Limit {
	return Limit{Name: name, Requests: requests, Window: time.Hour}
}

// NewMemoryStore returns a token bucket store refilling Requests per Window
func NewMemoryStore(l Limit) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(l.Requests) / l.Window.Seconds()),
			Burst:     l.Requests,
			ExpiresIn: l.Window,
		},
	)
}

// Middleware rejects clients over the store's limit with 429.
// A nil skipper limits every request.
func Middleware(store middleware.RateLimiterStore, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: skipper,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded",
			})
		},
	})
}
