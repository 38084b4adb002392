package data

import (
	"context"
	"sync"
	"time"

	"art-returns/internal/model"
	"art-returns/internal/returns"

	"github.com/google/uuid"
)

// CacheEntry is one stored evaluation.
type CacheEntry struct {
	ID          string
	Evaluation  *returns.Evaluation
	Assumptions *model.AssumptionsTable
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// EvaluationCache keeps recent evaluations in memory so clients can fetch them
// again by id. It is process-local and lost on restart.
type EvaluationCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewEvaluationCache(ttl time.Duration) *EvaluationCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &EvaluationCache{
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores an evaluation and the assumptions it was computed from under a
// new random id and returns the id.
func (c *EvaluationCache) Put(ev *returns.Evaluation, assumptions *model.AssumptionsTable) string {
	id := uuid.NewString()
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &CacheEntry{
		ID:          id,
		Evaluation:  ev,
		Assumptions: assumptions,
		CreatedAt:   now,
		ExpiresAt:   now.Add(c.ttl),
	}
	return id
}

// Get retrieves a cached evaluation if available and not expired.
func (c *EvaluationCache) Get(id string) (*CacheEntry, bool) {
	if c == nil {
		return nil, false
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry, true
}

func (c *EvaluationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache.
func (c *EvaluationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*CacheEntry)
}

// Prune removes expired entries and returns how many were dropped.
func (c *EvaluationCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
			n++
		}
	}
	return n
}

// Run prunes expired entries every interval until ctx is done.
func (c *EvaluationCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Prune()
		}
	}
}
