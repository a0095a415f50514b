//go:build !integration

package validation

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMemoizesResults(t *testing.T) {
	cache := NewCache()
	calls := 0

	for i := 0; i < 3; i++ {
		value, err := Compute(cache, "res", "query", func() (string, error) {
			calls++
			return "computed", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "computed", value)
	}
	assert.Equal(t, 1, calls, "computation should run exactly once")
}

func TestComputeCachesFailures(t *testing.T) {
	cache := NewCache()
	calls := 0
	wantErr := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := Compute(cache, "res", "query", func() (int, error) {
			calls++
			return 0, wantErr
		})
		require.ErrorIs(t, err, wantErr, "cached failure should surface unchanged")
	}
	assert.Equal(t, 1, calls, "failed computation should not be retried within a run")
}

func TestComputeKeysByResourceAndQuery(t *testing.T) {
	cache := NewCache()
	calls := map[string]int{}
	compute := func(resource, query string) {
		_, err := Compute(cache, resource, query, func() (string, error) {
			calls[resource+"/"+query]++
			return query, nil
		})
		require.NoError(t, err)
	}

	compute("a", "x")
	compute("a", "y")
	compute("b", "x")
	compute("a", "x")

	assert.Equal(t, map[string]int{"a/x": 1, "a/y": 1, "b/x": 1}, calls,
		"distinct resource/query pairs should compute independently")
}

func TestComputeConcurrentSingleFlight(t *testing.T) {
	cache := NewCache()
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := Compute(cache, "res", "query", func() (int, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, value)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "concurrent callers should coalesce on one computation")
}

func TestComputeTypeMismatch(t *testing.T) {
	cache := NewCache()
	_, err := Compute(cache, "res", "q", func() (string, error) { return "v", nil })
	require.NoError(t, err)

	_, err = Compute(cache, "res", "q", func() (int, error) { return 1, nil })
	require.Error(t, err, "reusing a key with a different type should fail loudly")
}

func TestCacheLoad(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"T"}`), 0o644))

	cache := NewCache()
	data, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"T"}`, string(data))

	_, err = cache.Load(filepath.Join(tempDir, "missing.json"))
	require.ErrorIs(t, err, ErrNotFound, "missing file should report the not-found sentinel")

	// The negative result is cached too.
	_, err = cache.Load(filepath.Join(tempDir, "missing.json"))
	require.ErrorIs(t, err, ErrNotFound)
}
