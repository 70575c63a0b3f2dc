package refdata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
)

type fakeSource struct {
	cats  []model.Category
	err   error
	calls int
}

func (f *fakeSource) ListActiveCategories(context.Context) ([]model.Category, error) {
	f.calls++
	return f.cats, f.err
}

func TestLoadPopulatesCache(t *testing.T) {
	src := &fakeSource{cats: []model.Category{
		{ID: 1, Name: "Footwear", Icon: "boot", IsActive: true},
		{ID: 2, Name: "Apparel", Icon: "shirt", IsActive: true},
	}}
	cache := NewCache()

	cache.Load(context.Background(), src, zap.NewNop())

	cats := cache.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Footwear", cats[0].Name)

	name, ok := cache.Name(2)
	require.True(t, ok)
	assert.Equal(t, "Apparel", name)
}

func TestLoadFailureLeavesCacheEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	cache := NewCache()

	// Must not panic or propagate; the listing works without categories.
	cache.Load(context.Background(), src, zap.NewNop())

	assert.Empty(t, cache.Categories())
	_, ok := cache.Name(1)
	assert.False(t, ok)
}

func TestLoadRunsOnce(t *testing.T) {
	src := &fakeSource{cats: []model.Category{{ID: 1, Name: "Footwear"}}}
	cache := NewCache()

	cache.Load(context.Background(), src, zap.NewNop())
	cache.Load(context.Background(), src, zap.NewNop())

	assert.Equal(t, 1, src.calls)
}

func TestLabel(t *testing.T) {
	src := &fakeSource{cats: []model.Category{{ID: 3, Name: "Footwear"}}}
	cache := NewCache()
	cache.Load(context.Background(), src, zap.NewNop())

	known := uint(3)
	unknown := uint(42)
	assert.Equal(t, "Footwear", cache.Label(&known))
	assert.Equal(t, "#42", cache.Label(&unknown))
	assert.Equal(t, "-", cache.Label(nil))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	src := &fakeSource{cats: []model.Category{{ID: 1, Name: "Footwear"}}}
	cache := NewCache()
	cache.Load(context.Background(), src, zap.NewNop())

	cats := cache.Categories()
	cats[0].Name = "Mutated"
	assert.Equal(t, "Footwear", cache.Categories()[0].Name)
}
