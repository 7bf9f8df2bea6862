package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-sniffer-sol/internal/logic/core"
)

const (
	mintA = "9BB6NFEcjBCtnNLFko2FqVQBq8HHM13kCyYcdQbgpump"
	mintB = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	mintC = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

func TestMemoryTokenCache_GetSetExpire(t *testing.T) {
	c := NewMemoryTokenCache(time.Minute, 10)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	_, ok := c.Get(context.Background(), mintA)
	assert.False(t, ok)

	view := core.TokenView{Address: mintA, TokenSymbol: "PUMP", Score: 80, AuditRisks: []string{"Moderate risk indicators: 1"}}
	c.Set(context.Background(), mintA, view)

	got, ok := c.Get(context.Background(), mintA)
	require.True(t, ok)
	assert.Equal(t, view, got)

	got.AuditRisks[0] = "mutated"
	again, _ := c.Get(context.Background(), mintA)
	assert.Equal(t, "Moderate risk indicators: 1", again.AuditRisks[0], "调用方修改不影响缓存")

	now = now.Add(time.Minute)
	_, ok = c.Get(context.Background(), mintA)
	assert.False(t, ok, "到期后失效")
}

func TestMemoryTokenCache_IgnoresInvalidAddress(t *testing.T) {
	c := NewMemoryTokenCache(time.Minute, 10)
	c.Set(context.Background(), "not-base58-0OIl", core.TokenView{})
	assert.Equal(t, 0, c.Len())
}

func TestMemoryTokenCache_EvictsWhenFull(t *testing.T) {
	c := NewMemoryTokenCache(time.Minute, 2)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	c.Set(context.Background(), mintA, core.TokenView{Address: mintA})
	now = now.Add(time.Second)
	c.Set(context.Background(), mintB, core.TokenView{Address: mintB})
	now = now.Add(time.Second)
	c.Set(context.Background(), mintC, core.TokenView{Address: mintC})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(context.Background(), mintA)
	assert.False(t, ok, "最早过期的一项被淘汰")
	_, ok = c.Get(context.Background(), mintC)
	assert.True(t, ok)
}

func TestRedisTokenCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	c := NewRedisTokenCache(rdb, 5*time.Second)
	t.Cleanup(func() { rdb.Del(ctx, c.getKey(mintA)) })

	_, ok := c.Get(ctx, mintA)
	assert.False(t, ok)

	view := core.TokenView{Address: mintA, TokenName: "Pump", RiskLevel: core.RiskLow, AuditRisks: []string{}}
	c.Set(ctx, mintA, view)

	got, ok := c.Get(ctx, mintA)
	require.True(t, ok)
	assert.Equal(t, view, got)
}
