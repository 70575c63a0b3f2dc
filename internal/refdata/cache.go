// Package refdata holds auxiliary reference data loaded once per session.
package refdata

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/prometheus"
)

// CategorySource is the slice of the catalog client the cache needs.
type CategorySource interface {
	ListActiveCategories(ctx context.Context) ([]model.Category, error)
}

// Cache holds the active categories for the lifetime of the session. A failed
// load leaves the cache empty; category filters and labels degrade, the
// product listing is unaffected.
type Cache struct {
	mu         sync.RWMutex
	categories []model.Category
	loaded     bool
}

// NewCache returns an empty, not-yet-loaded cache.
func NewCache() *Cache {
	return &Cache{}
}

// Load fetches the active categories once. Errors are logged and swallowed.
func (c *Cache) Load(ctx context.Context, src CategorySource, log *zap.Logger) {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return
	}
	c.loaded = true
	c.mu.Unlock()

	cats, err := src.ListActiveCategories(ctx)
	if err != nil {
		log.Warn("category load failed, filters will have no category options", zap.Error(err))
		return
	}

	c.mu.Lock()
	c.categories = cats
	c.mu.Unlock()

	prometheus.SetCategoryCacheSize(len(cats))
	log.Info("categories loaded", zap.Int("count", len(cats)))
}

// Categories returns a copy of the cached categories in load order.
func (c *Cache) Categories() []model.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Name resolves a category ID to its display name.
func (c *Cache) Name(id uint) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat.Name, true
		}
	}
	return "", false
}

// Label renders a category reference for display, falling back to the raw ID
// when the cache has no entry for it.
func (c *Cache) Label(id *uint) string {
	if id == nil {
		return "-"
	}
	if name, ok := c.Name(*id); ok {
		return name
	}
	return "#" + strconv.FormatUint(uint64(*id), 10)
}
