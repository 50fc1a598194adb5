package middleware

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CacheStatusHeader reports HIT or MISS on cached routes
const CacheStatusHeader = "X-Cache"

const defaultCachePrefix = "coffee:public:"

// CacheStore is the key/value backend of the response cache
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// RedisCacheStore keeps cached responses in Redis
type RedisCacheStore struct {
	client *redis.Client
}

func NewRedisCacheStore(client *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{client: client}
}

func (s *RedisCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// DeletePrefix removes every key under prefix using SCAN so Redis is never blocked
func (s *RedisCacheStore) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return s.client.Del(ctx, keys...).Err()
	}
	return nil
}

// ResponseCache caches successful public GET responses and drops them after admin writes
type ResponseCache struct {
	store  CacheStore
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewResponseCache returns a cache that is a no-op when store is nil or ttl is not positive
func NewResponseCache(store CacheStore, ttl time.Duration, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{
		store:  store,
		ttl:    ttl,
		prefix: defaultCachePrefix,
		logger: logger,
	}
}

func (rc *ResponseCache) enabled() bool {
	return rc != nil && rc.store != nil && rc.ttl > 0
}

// Middleware serves cached GET responses and stores 200 responses on a miss
func (rc *ResponseCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rc.enabled() || c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := rc.prefix + cacheKey(c.Request().URL)

			if body, ok, err := rc.store.Get(ctx, key); err != nil {
				rc.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
			} else if ok {
				c.Response().Header().Set(CacheStatusHeader, "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			c.Response().Header().Set(CacheStatusHeader, "MISS")
			capture := &bodyCapture{ResponseWriter: c.Response().Writer, body: &bytes.Buffer{}}
			c.Response().Writer = capture

			if err := next(c); err != nil {
				return err
			}

			if c.Response().Status == http.StatusOK {
				if err := rc.store.Set(ctx, key, capture.body.Bytes(), rc.ttl); err != nil {
					rc.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
			return nil
		}
	}
}

// InvalidateOnWrite purges the cache after a successful non-GET request
func (rc *ResponseCache) InvalidateOnWrite() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if !rc.enabled() || c.Request().Method == http.MethodGet {
				return err
			}
			if status := c.Response().Status; err == nil && status >= 200 && status < 300 {
				rc.Purge(c.Request().Context())
			}
			return err
		}
	}
}

// Purge drops every cached response
func (rc *ResponseCache) Purge(ctx context.Context) {
	if !rc.enabled() {
		return
	}
	if err := rc.store.DeletePrefix(ctx, rc.prefix); err != nil {
		rc.logger.Warn("Cache purge failed", zap.Error(err))
	}
}

// cacheKey hashes the path with its sorted query string
func cacheKey(u *url.URL) string {
	params := u.Query()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(u.Path)
	b.WriteByte('?')
	for _, k := range keys {
		values := params[k]
		sort.Strings(values)
		for _, v := range values {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('&')
		}
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

type bodyCapture struct {
	http.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}
