package cache

import (
	"context"
	"sync"
	"time"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/types"
)

// TokenCache 风控分析结果缓存，只存成功的分析
type TokenCache interface {
	Get(ctx context.Context, address string) (core.TokenView, bool)
	Set(ctx context.Context, address string, view core.TokenView)
}

type tokenEntry struct {
	view      core.TokenView
	expiresAt int64 // unix nano
}

// MemoryTokenCache 进程内缓存，按 32 字节公钥建索引
type MemoryTokenCache struct {
	mu         sync.RWMutex
	entries    map[types.Pubkey]tokenEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryTokenCache(ttl time.Duration, maxEntries int) *MemoryTokenCache {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	return &MemoryTokenCache{
		entries:    make(map[types.Pubkey]tokenEntry, 256),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryTokenCache) Get(_ context.Context, address string) (core.TokenView, bool) {
	key, err := types.TryPubkeyFromBase58(address)
	if err != nil {
		return core.TokenView{}, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().UnixNano() >= entry.expiresAt {
		return core.TokenView{}, false
	}
	return cloneView(entry.view), true
}

func (c *MemoryTokenCache) Set(_ context.Context, address string, view core.TokenView) {
	key, err := types.TryPubkeyFromBase58(address)
	if err != nil {
		return
	}
	now := c.now().UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictUnsafe(now)
	}
	c.entries[key] = tokenEntry{view: cloneView(view), expiresAt: now + int64(c.ttl)}
}

func (c *MemoryTokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictUnsafe 先清理过期项；仍然满载时淘汰最早过期的一项
func (c *MemoryTokenCache) evictUnsafe(now int64) {
	var (
		oldestKey types.Pubkey
		oldestAt  int64
		found     bool
	)
	for key, entry := range c.entries {
		if entry.expiresAt <= now {
			delete(c.entries, key)
			continue
		}
		if !found || entry.expiresAt < oldestAt {
			oldestKey, oldestAt, found = key, entry.expiresAt, true
		}
	}
	if len(c.entries) >= c.maxEntries && found {
		delete(c.entries, oldestKey)
	}
}

// cloneView AuditRisks 是切片，缓存内外各持一份
func cloneView(v core.TokenView) core.TokenView {
	if v.AuditRisks != nil {
		v.AuditRisks = append([]string(nil), v.AuditRisks...)
	}
	return v
}
