package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redisClient *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Allow — фиксированное окно на ключ. Если Redis недоступен или лимитер
// не сконфигурирован, запросы не блокируем.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if rl == nil || rl.redisClient == nil {
		return true
	}

	redisKey := "rate_limit:" + key

	count, err := rl.redisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		return true
	}
	// Первый запрос в окне — ставим время жизни ключу
	if count == 1 {
		rl.redisClient.Expire(ctx, redisKey, window)
	}
	return count <= int64(limit)
}

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", keySuffix, c.ClientIP())
		if !rl.Allow(c, key, limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}
		c.Next()
	}
}
