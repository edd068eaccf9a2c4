package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"userhub/internal/transport/http/response"
)

// RateLimit enforces a fixed-window per-client budget backed by Redis.
// Redis failures fail open so a degraded limiter never blocks traffic.
func RateLimit(client *redisv9.Client, requestsPerMinute int) gin.HandlerFunc {
	if client == nil || requestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, time.Minute).Err(); err != nil {
				log.Printf("rate limit expire failed: %v", err)
			}
		}

		if count > int64(requestsPerMinute) {
			response.Fail(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
