package middleware

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ReplayTracker remembers gateway callback signatures it has seen before.
type ReplayTracker interface {
	Seen(ctx context.Context, sig string) (bool, error)
}

type redisReplayTracker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (t *redisReplayTracker) Seen(ctx context.Context, sig string) (bool, error) {
	key := t.prefix + ":" + sig
	ok, err := t.client.SetNX(ctx, key, "1", t.ttl).Result()
	if err != nil {
		return false, err
	}
	// false => key existed => replay
	return !ok, nil
}

type memoryReplayTracker struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryReplayTracker(ttl time.Duration) *memoryReplayTracker {
	now := time.Now()
	return &memoryReplayTracker{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (t *memoryReplayTracker) Seen(_ context.Context, sig string) (bool, error) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if exp, ok := t.seen[sig]; ok && exp.After(now) {
		return true, nil
	}

	t.seen[sig] = now.Add(t.ttl)
	if now.After(t.nextGC) {
		for s, exp := range t.seen {
			if exp.Before(now) {
				delete(t.seen, s)
			}
		}
		t.nextGC = now.Add(t.ttl)
	}

	return false, nil
}

// NewReplayTracker builds a Redis tracker and falls back to in-memory when
// Redis is unreachable or unconfigured.
func NewReplayTracker(addr, pass string, db int, ttl time.Duration) (ReplayTracker, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if addr == "" {
		return newMemoryReplayTracker(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryReplayTracker(ttl), err
	}

	return &redisReplayTracker{
		client: client,
		prefix: "payhere:notify",
		ttl:    ttl,
	}, nil
}

// CallbackReplayLog flags redelivered gateway notifications by md5sig. It is
// observe-only: duplicates are logged for investigation but still processed,
// since reapplying a verified notification is idempotent and the gateway
// owns redelivery policy.
func CallbackReplayLog(tracker ReplayTracker, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tracker == nil {
				return next(c)
			}

			req := c.Request()
			if req.Body == nil {
				return next(c)
			}

			rawBody, err := io.ReadAll(req.Body)
			if err != nil {
				return next(c)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(rawBody))
			if len(rawBody) == 0 {
				return next(c)
			}

			values, err := url.ParseQuery(string(rawBody))
			if err != nil {
				return next(c)
			}
			sig := values.Get("md5sig")
			if sig == "" {
				return next(c)
			}

			replay, err := tracker.Seen(req.Context(), sig)
			if err != nil {
				return next(c)
			}
			if replay {
				logger.Info("Gateway notification redelivered",
					zap.String("order_id", values.Get("order_id")),
					zap.String("md5sig", sig),
				)
			}

			return next(c)
		}
	}
}
