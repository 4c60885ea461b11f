package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBumpChannel = "erp.cache.bump"
	defaultLoadTimeout = 30 * time.Second
)

// Loader produces the value to cache on a miss.
type Loader func(context.Context) (any, error)

// Versioned wraps Redis caching with a global version key. Bumping the version
// invalidates every key built before the bump.
type Versioned struct {
	client      *redis.Client
	namespace   string
	ttl         time.Duration
	group       singleflight.Group
	breaker     *gobreaker.CircuitBreaker[[]byte]
	versionKey  string
	channel     string
	loadTimeout time.Duration
}

// NewVersioned instantiates the cache helper. A nil client disables caching.
func NewVersioned(client *redis.Client, namespace string, ttl time.Duration) *Versioned {
	if namespace == "" {
		namespace = "erp"
	}
	return &Versioned{
		client:      client,
		namespace:   namespace,
		ttl:         ttl,
		versionKey:  namespace + ":version",
		channel:     defaultBumpChannel,
		loadTimeout: defaultLoadTimeout,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    namespace + "-redis",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, redis.Nil)
			},
		}),
	}
}

// Version returns the current cache version, initialising when missing.
func (c *Versioned) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, c.versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, c.versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
	}
	return ver, nil
}

// BuildKey composes the cache key with the current version.
func (c *Versioned) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{c.prefix()}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader. Concurrent
// misses for the same key share one loader call, which runs detached from the
// caller's cancellation so one departing caller cannot fail the others. Redis
// failures fall through to the loader.
func (c *Versioned) FetchJSON(ctx context.Context, key string, dest any, loader Loader) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c != nil && c.client != nil {
		payload, err := c.breaker.Execute(func() ([]byte, error) {
			return c.client.Get(ctx, key).Bytes()
		})
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
	}

	var group *singleflight.Group
	if c != nil {
		group = &c.group
	} else {
		group = &singleflight.Group{}
	}
	timeout := defaultLoadTimeout
	if c != nil && c.loadTimeout > 0 {
		timeout = c.loadTimeout
	}
	ch := group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		value, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if c != nil && c.client != nil {
			_, _ = c.breaker.Execute(func() ([]byte, error) {
				return nil, c.client.Set(loadCtx, key, raw, c.ttl).Err()
			})
		}
		return raw, nil
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

// Bump invalidates the cache by incrementing the version and publishing it.
func (c *Versioned) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, c.versionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, c.channel, strconv.FormatInt(ver, 10)).Err()
}

func (c *Versioned) prefix() string {
	if c == nil {
		return "erp"
	}
	return c.namespace
}
