// Package cache provides a request-level result cache for the serving
// layer. The engine itself is pure and never consults the cache; callers
// use it to avoid recomputing identical (name, country) requests.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/uniscore/uniscore/internal/engine"
	"github.com/uniscore/uniscore/internal/model"
)

// ResultCache stores scoring results keyed by normalized request.
type ResultCache interface {
	Get(ctx context.Context, key string) (*engine.ScoringResult, bool)
	Set(ctx context.Context, key string, result *engine.ScoringResult)
}

// Key canonicalizes a (name, country) pair into a cache key.
func Key(name, countryName string) string {
	return model.NormalizeKey(name) + "|" + strings.ToUpper(strings.TrimSpace(countryName))
}

type memoryEntry struct {
	result  *engine.ScoringResult
	expires time.Time
}

// Memory is an in-process TTL cache. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory builds an in-memory cache; ttl <= 0 means entries never expire.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements ResultCache.
func (m *Memory) Get(_ context.Context, key string) (*engine.ScoringResult, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expires.IsZero() && m.now().After(entry.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return entry.result, true
}

// Set implements ResultCache.
func (m *Memory) Set(_ context.Context, key string, result *engine.ScoringResult) {
	entry := memoryEntry{result: result}
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
}

// Len returns the number of live entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
