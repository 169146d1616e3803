package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitMessage = "Too many requests. Please slow down."

// RateLimitConfig holds rate limit settings.
type RateLimitConfig struct {
	// Rate per IP ("100-M" = 100/min). Empty disables.
	RatePerIP string
	// Rate per authenticated user ("300-M"). Empty disables.
	RatePerUser string
	// Redis, when set, shares counters between instances.
	Redis *redis.Client
}

func newStore(cfg RateLimitConfig, prefix string) (limiter.Store, error) {
	if cfg.Redis == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), nil
	}
	return sredis.NewStoreWithOptions(cfg.Redis, limiter.StoreOptions{Prefix: prefix})
}

// NewIPRateLimiter returns middleware that limits by client IP.
func NewIPRateLimiter(cfg RateLimitConfig) (func(next http.Handler) http.Handler, error) {
	if cfg.RatePerIP == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RatePerIP)
	if err != nil {
		return nil, err
	}
	store, err := newStore(cfg, "taskflow_ip")
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(limitReached)).Handler, nil
}

// NewUserRateLimiter returns middleware that limits by the session's user id.
// Use after RequireSession.
func NewUserRateLimiter(cfg RateLimitConfig) (func(next http.Handler) http.Handler, error) {
	if cfg.RatePerUser == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RatePerUser)
	if err != nil {
		return nil, err
	}
	store, err := newStore(cfg, "taskflow_user")
	if err != nil {
		return nil, err
	}
	return userLimitMiddleware(limiter.New(store, rate)), nil
}

func userLimitMiddleware(instance *limiter.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx, err := instance.Increment(r.Context(), "user:"+userID.String(), 1)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
			if ctx.Reset > 0 {
				w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", ctx.Reset))
			}
			if ctx.Reached {
				limitReached(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func limitReached(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusTooManyRequests, "custom", rateLimitMessage)
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
