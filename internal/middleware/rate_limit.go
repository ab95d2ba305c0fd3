package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"contacts-api/internal/config"
	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// TokenBucket takes one token from the bucket stored under key.
type TokenBucket interface {
	Take(ctx context.Context, key string) (allowed bool, remaining int64, retryAfter time.Duration, err error)
}

var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RedisTokenBucket refills one token every window/capacity, up to capacity tokens.
type RedisTokenBucket struct {
	client   redis.Scripter
	capacity int
	interval time.Duration
	ttl      time.Duration
}

func NewRedisTokenBucket(client redis.Scripter, capacity int, window time.Duration) *RedisTokenBucket {
	return &RedisTokenBucket{
		client:   client,
		capacity: capacity,
		interval: window / time.Duration(capacity),
		ttl:      2 * window,
	}
}

func (b *RedisTokenBucket) Take(ctx context.Context, key string) (bool, int64, time.Duration, error) {
	vals, err := tokenBucketScript.Run(ctx, b.client, []string{key},
		time.Now().UnixMilli(), b.capacity, b.interval.Milliseconds(), int64(b.ttl/time.Second)).Result()
	if err != nil {
		return false, 0, 0, err
	}

	arr, ok := vals.([]interface{})
	if !ok || len(arr) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected rate limit script result %#v", vals)
	}
	return asInt64(arr[0]) == 1, asInt64(arr[1]), time.Duration(asInt64(arr[2])) * time.Millisecond, nil
}

// RateLimit limits each authenticated user to cfg.MePerMinute requests per minute on this route.
// A nil bucket disables limiting. Bucket errors let the request through.
func RateLimit(cfg config.RateLimitConfig, bucket TokenBucket) gin.HandlerFunc {
	if bucket == nil {
		log.Warn("Rate limiting disabled, no redis configured")
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := rateKey(cfg.Prefix, c)

		allowed, remaining, retryAfter, err := bucket.Take(c, key)
		if err != nil {
			utils.LogMessageWithFieldsAndError(c, "warn", "Rate limiter unavailable", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MePerMinute))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			utils.WriteAndLogError(c, schemas.TooManyRequests, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded for %s", key))
			return
		}

		c.Next()
	}
}

func rateKey(prefix string, c *gin.Context) string {
	uid := "anon"
	if user, ok := utils.CurrentUser(c); ok {
		uid = strconv.FormatInt(user.ID, 10)
	}
	return strings.Join([]string{prefix, "user", uid, "route", c.Request.Method + " " + c.FullPath()}, ":")
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
