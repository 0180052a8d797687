package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-gin-comedy-tickets/internal/model"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss 快取中沒有該節目的剩餘票數
var ErrCacheMiss = errors.New("availability not cached")

const availabilityTTL = 24 * time.Hour

type AvailabilityCache interface {
	// 讀取：取得快取中的剩餘票數
	Get(ctx context.Context, showID int) (model.Availability, error)
	// 寫入：只有版本比快取新時才覆蓋 (使用Lua腳本確保原子性)
	Set(ctx context.Context, showID int, available int, version int64) (bool, error)
	// 清除：節目刪除時移除快取
	Delete(ctx context.Context, showID int) error
}

type RedisAvailabilityCache struct {
	client *redis.Client
}

func NewRedisAvailabilityCache(client *redis.Client) AvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
	}
}

// 剩餘票數 key
func (c *RedisAvailabilityCache) key(showID int) string {
	return fmt.Sprintf("show:%d:availability", showID)
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, showID int) (model.Availability, error) {
	result, err := c.client.HGetAll(ctx, c.key(showID)).Result()
	if err != nil {
		return model.Availability{}, err
	}

	// 檢查 key 是否存在
	if len(result) == 0 {
		return model.Availability{}, ErrCacheMiss
	}

	available, err := strconv.Atoi(result["available"])
	if err != nil {
		return model.Availability{}, fmt.Errorf("invalid available: %v", err)
	}

	version, err := strconv.ParseInt(result["version"], 10, 64)
	if err != nil {
		return model.Availability{}, fmt.Errorf("invalid version: %v", err)
	}

	return model.Availability{
		ShowID:    showID,
		Available: available,
		Version:   version,
		Cached:    true,
	}, nil
}

// setIfNewerScript 事件可能亂序抵達，只接受版本號較大的值
var setIfNewerScript = redis.NewScript(`
	local key = KEYS[1]
	local available = ARGV[1]
	local version = tonumber(ARGV[2])
	local ttl = tonumber(ARGV[3])

	local current = redis.call('HGET', key, 'version')
	if current and tonumber(current) >= version then
		return 0
	end

	redis.call('HSET', key, 'available', available, 'version', version)
	redis.call('EXPIRE', key, ttl)
	return 1
`)

func (c *RedisAvailabilityCache) Set(ctx context.Context, showID int, available int, version int64) (bool, error) {
	res, err := setIfNewerScript.Run(ctx, c.client,
		[]string{c.key(showID)},
		available, version, int(availabilityTTL.Seconds()),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func (c *RedisAvailabilityCache) Delete(ctx context.Context, showID int) error {
	return c.client.Del(ctx, c.key(showID)).Err()
}
