package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
)

func TestCache_GetOrResolve(t *testing.T) {
	req := require.New(t)
	cache := NewCache()

	_, ok := cache.Get()
	req.False(ok, "new cache must be empty")

	calls := 0
	resolve := func() (sortconfig.SortConfig, error) {
		calls++
		return sortconfig.SortConfig{Parser: "babylon", Style: "eslint"}, nil
	}

	first, err := cache.GetOrResolve(resolve)
	req.NoError(err)
	second, err := cache.GetOrResolve(func() (sortconfig.SortConfig, error) {
		calls++
		return sortconfig.SortConfig{Parser: "typescript", Style: "module"}, nil
	})
	req.NoError(err)

	req.Equal(1, calls)
	req.Equal(first, second)
	cached, ok := cache.Get()
	req.True(ok)
	req.Equal(sortconfig.SortConfig{Parser: "babylon", Style: "eslint"}, cached)
}

func TestCache_FailedResolutionIsNotCached(t *testing.T) {
	req := require.New(t)
	cache := NewCache()

	_, err := cache.GetOrResolve(func() (sortconfig.SortConfig, error) {
		return sortconfig.SortConfig{}, errNoParser
	})
	req.ErrorIs(err, errNoParser)
	_, ok := cache.Get()
	req.False(ok)

	config, err := cache.GetOrResolve(func() (sortconfig.SortConfig, error) {
		return sortconfig.SortConfig{Parser: "typescript", Style: "eslint"}, nil
	})
	req.NoError(err)
	req.Equal("typescript", config.Parser)
}

func TestCache_ConcurrentPopulationResolvesOnce(t *testing.T) {
	req := require.New(t)
	cache := NewCache()

	var mu sync.Mutex
	calls := 0
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.GetOrResolve(func() (sortconfig.SortConfig, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return sortconfig.SortConfig{Parser: "babylon", Style: "eslint"}, nil
			})
		}()
	}
	wg.Wait()

	req.Equal(1, calls)
}
