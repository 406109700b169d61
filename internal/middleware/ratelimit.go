package middleware

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/router"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/mangrove-guardian/backend/pkg/xredis"
)

type RateLimiter struct {
	redisClient xredis.Client
}

func NewRateLimiter(redisClient xredis.Client) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// Middleware enforces a fixed-window request limit per client address. A
// redis failure lets the request through; throttling is best effort.
func (l *RateLimiter) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cfg := xcontext.Configs(ctx).Redis
		if cfg.RateLimit <= 0 {
			return ctx, nil
		}

		window := time.Now().Unix() / int64(cfg.RateLimitWindow.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", clientAddr(ctx), window)

		count, err := l.redisClient.IncrWithExpire(ctx, key, cfg.RateLimitWindow)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot count requests for rate limit: %v", err)
			return ctx, nil
		}

		if count > int64(cfg.RateLimit) {
			return nil, errorx.New(errorx.TooManyRequests, "Too many requests, try again later")
		}

		return ctx, nil
	}
}

func clientAddr(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}

	return host
}
