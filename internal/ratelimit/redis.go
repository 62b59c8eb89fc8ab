// Package ratelimit shares a request budget across server instances through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window limiter keyed by client IP.
type Limiter struct {
	rdb      redis.Scripter
	limit    int
	window   time.Duration
	prefix   string
	failOpen bool
	log      *slog.Logger
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

type Config struct {
	Limit  int
	Window time.Duration
	Prefix string
	// FailOpen lets requests through while Redis is unreachable.
	FailOpen bool
}

func New(rdb redis.Scripter, cfg Config, log *slog.Logger) *Limiter {
	if cfg.Limit <= 0 {
		cfg.Limit = 60
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "salonbook:rl"
	}
	if log == nil {
		log = slog.Default()
	}
	return &Limiter{
		rdb:      rdb,
		limit:    cfg.Limit,
		window:   cfg.Window,
		prefix:   prefix,
		failOpen: cfg.FailOpen,
		log:      log.With(slog.String("component", "ratelimit")),
	}
}

func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := httprate.KeyByIP(r)
		if err != nil {
			ip = r.RemoteAddr
		}
		count, err := l.incr(r.Context(), l.prefix+":"+ip)
		if err != nil {
			l.log.WarnContext(r.Context(), "redis rate limiter error", slog.Any("err", err))
			if l.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "rate limiter unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(l.limit)-count), 10))
		if count > int64(l.limit) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// ReadyCheck pings Redis.
func ReadyCheck(rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
