package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart snippets so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (ChartSnippet, error)) (ChartSnippet, error)
}

// ChartCache is an in-memory TTL cache for rendered charts.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedChart
}

type cachedChart struct {
	snippet ChartSnippet
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedChart),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (ChartSnippet, error)) (ChartSnippet, error) {
	if snippet, ok := c.get(key); ok {
		return snippet, nil
	}
	snippet, err := render()
	if err != nil {
		return ChartSnippet{}, err
	}
	c.set(key, snippet)
	return snippet, nil
}

// Len reports the number of live entries.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *ChartCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cachedChart)
	c.mu.Unlock()
}

func (c *ChartCache) get(key string) (ChartSnippet, bool) {
	if c == nil || c.ttl <= 0 {
		return ChartSnippet{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return ChartSnippet{}, false
	}
	return cloneSnippet(entry.snippet), true
}

func (c *ChartCache) set(key string, snippet ChartSnippet) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedChart{
		snippet: cloneSnippet(snippet),
		expires: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func cloneSnippet(s ChartSnippet) ChartSnippet {
	s.Assets = append([]string(nil), s.Assets...)
	return s
}

// configHash returns a deterministic hash for chart input data.
func configHash(v any) string {
	if v == nil {
		return "empty"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
