package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/pkg/logger"
)

const tokenKeyPrefix = "sniffer:token:"

// RedisTokenCache 多实例共享的分析缓存，值为 TokenView 的 JSON
type RedisTokenCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokenCache(rdb *redis.Client, ttl time.Duration) *RedisTokenCache {
	return &RedisTokenCache{rdb: rdb, ttl: ttl}
}

func (r *RedisTokenCache) getKey(address string) string {
	return tokenKeyPrefix + address
}

func (r *RedisTokenCache) Get(ctx context.Context, address string) (core.TokenView, bool) {
	data, err := r.rdb.Get(ctx, r.getKey(address)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return core.TokenView{}, false
	case err != nil:
		logger.Warnf("[RedisTokenCache:Get] redis get %s error: %v", address, err)
		return core.TokenView{}, false
	}

	var view core.TokenView
	if err := json.Unmarshal(data, &view); err != nil {
		logger.Warnf("[RedisTokenCache:Get] 缓存内容损坏, key=%s: %v", r.getKey(address), err)
		return core.TokenView{}, false
	}
	return view, true
}

func (r *RedisTokenCache) Set(ctx context.Context, address string, view core.TokenView) {
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, r.getKey(address), data, r.ttl).Err(); err != nil {
		logger.Warnf("[RedisTokenCache:Set] redis set %s error: %v", address, err)
	}
}
