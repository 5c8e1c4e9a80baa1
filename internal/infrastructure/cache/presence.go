package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Онлайн-статус живёт в Redis с TTL: ключ протухает сам,
// крон для "ушедших" не нужен.
const presenceTTL = 5 * time.Minute

type PresenceCache struct {
	client *redis.Client
}

func NewPresenceCache(client *redis.Client) *PresenceCache {
	return &PresenceCache{client: client}
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("online:%d", userID)
}

func (c *PresenceCache) SetOnline(ctx context.Context, userID uint) error {
	return c.client.Set(ctx, presenceKey(userID), "1", presenceTTL).Err()
}

func (c *PresenceCache) SetOffline(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, presenceKey(userID)).Err()
}

func (c *PresenceCache) Online(ctx context.Context, userIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = presenceKey(id)
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		result[userIDs[i]] = v != nil
	}
	return result, nil
}
