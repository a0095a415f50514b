package validation

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/flowlint/flowlint/pkg/logger"
)

var cacheLog = logger.New("validation:cache")

// ErrNotFound marks a resource that does not exist. Callers distinguish it
// from read failures with errors.Is.
var ErrNotFound = errors.New("resource not found")

// Cache memoizes file contents and derived query results for the lifetime of
// one validation run. A given (resource, query) pair is computed at most once:
// concurrent callers coalesce on the single in-flight computation, and both
// successful results and failures are cached terminally, so a failed lookup is
// never retried within the run.
type Cache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// cacheEntry holds either a value or the error that producing it failed with.
// The error being non-nil is the negative-result sentinel; empty values and
// absent entries are never conflated.
type cacheEntry struct {
	value any
	err   error
}

// NewCache returns an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) lookup(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *Cache) store(key string, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Load returns the contents of the file at path, reading it at most once per
// run. A missing file reports ErrNotFound; the failure is cached like any
// other result.
func (c *Cache) Load(path string) ([]byte, error) {
	return Compute(c, path, "raw-bytes", func() ([]byte, error) {
		cacheLog.Printf("Reading file: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	})
}

// Compute returns the memoized result of fn for (resource, query), running fn
// at most once per run even under concurrent callers (single-flight). A
// failed computation is terminal: every later call for the same key returns
// the same error without re-running fn.
func Compute[T any](c *Cache, resource, query string, fn func() (T, error)) (T, error) {
	key := resource + "\x00" + query
	if e, ok := c.lookup(key); ok {
		return coerceEntry[T](key, e)
	}

	result, _, _ := c.group.Do(key, func() (any, error) {
		// A previous flight may have completed between the lookup above and
		// joining this flight.
		if e, ok := c.lookup(key); ok {
			return e, nil
		}
		value, err := fn()
		e := cacheEntry{err: err}
		if err == nil {
			e.value = value
		} else {
			cacheLog.Printf("Caching negative result for %s %s: %v", resource, query, err)
		}
		c.store(key, e)
		return e, nil
	})
	return coerceEntry[T](key, result.(cacheEntry))
}

func coerceEntry[T any](key string, e cacheEntry) (T, error) {
	if e.err != nil {
		var zero T
		return zero, e.err
	}
	value, ok := e.value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry for %q holds %T, not %T", key, e.value, zero)
	}
	return value, nil
}
