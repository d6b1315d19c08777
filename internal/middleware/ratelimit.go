package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"strings"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/redis/go-redis/v9"
)

const (
	loginIPLimit     = 10
	loginUserLimit   = 5
	loginLimitWindow = time.Minute
)

// LoginRateLimiter throttles login attempts per client IP and per account
// email using redis counters.
type LoginRateLimiter struct {
	rdb       redis.Cmdable
	ipLimit   int
	userLimit int
	window    time.Duration
}

func NewLoginRateLimiter(rdb redis.Cmdable) *LoginRateLimiter {
	return &LoginRateLimiter{
		rdb:       rdb,
		ipLimit:   loginIPLimit,
		userLimit: loginUserLimit,
		window:    loginLimitWindow,
	}
}

func (l *LoginRateLimiter) Middleware() drift.HandlerFunc {
	return func(c *drift.Context) {
		ctx := c.Request.Context()

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.BadRequest("invalid request")
			return
		}
		c.Request.Body.Close()
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		email := extractEmail(bodyBytes)
		ip := clientIP(c)

		count, err := l.incr(ctx, "login:ip:"+ip)
		if err == nil && count > int64(l.ipLimit) {
			_ = c.JSON(429, map[string]string{"error": "too many login attempts, try again later"})
			return
		}

		if email != "" {
			count, err = l.incr(ctx, "login:user:"+email)
			if err == nil && count > int64(l.userLimit) {
				_ = c.JSON(429, map[string]string{"error": "too many login attempts for this account"})
				return
			}
		}

		c.Next()
	}
}

func (l *LoginRateLimiter) incr(ctx context.Context, key string) (int64, error) {
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	return count, nil
}

func extractEmail(body []byte) string {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(payload.Email))
}

func clientIP(c *drift.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
