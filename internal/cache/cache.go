package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cespare/xxhash/v2"

	"DebtSentinel/internal/model"
)

// ReportCache stores rendered chat reports.
type ReportCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// PlanKey identifies a plan report by everything that can change its text.
// Reordering the debts yields a different key, as it can change tie-breaks.
// Debts that cannot be encoded (a NaN or infinite amount) have no key.
func PlanKey(debts []model.Debt, surplusCash float64, horizonDays int, day civil.Date) (string, error) {
	data, err := json.Marshal(debts)
	if err != nil {
		return "", fmt.Errorf("encode debts for cache key: %w", err)
	}
	h := xxhash.New()
	_, _ = h.Write(data)
	_, _ = fmt.Fprintf(h, "|%.2f|%d|%s", surplusCash, horizonDays, day)
	return fmt.Sprintf("debtsentinel:plan:%s:%016x", day, h.Sum64()), nil
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process ReportCache used when Redis is not configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Set stores value; a non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}
