package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeIsScopedBySchema(t *testing.T) {
	c := NewTenantCache()

	a, err := c.GetOrCompute("schema_a", "is_staff", func() (interface{}, error) {
		return "value_a", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "value_a", a)

	// Same property under another schema computes its own value.
	b, err := c.GetOrCompute("schema_b", "is_staff", func() (interface{}, error) {
		return "value_b", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "value_b", b)

	// A repeated read serves the cached value, not a recompute.
	a2, err := c.GetOrCompute("schema_a", "is_staff", func() (interface{}, error) {
		t.Fatal("compute called on cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "value_a", a2)
}

func TestGetOrComputeErrorIsNotStored(t *testing.T) {
	c := NewTenantCache()
	wantErr := errors.New("query failed")

	_, err := c.GetOrCompute("acme", "is_staff", func() (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// The failed compute left nothing behind; the next call retries.
	v, err := c.GetOrCompute("acme", "is_staff", func() (interface{}, error) {
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestInvalidate(t *testing.T) {
	c := NewTenantCache()
	_, _ = c.GetOrCompute("acme", "is_staff", func() (interface{}, error) { return true, nil })
	_, _ = c.GetOrCompute("acme", "is_superuser", func() (interface{}, error) { return false, nil })

	c.Invalidate("acme", "is_staff")

	_, ok := c.Get("acme", "is_staff")
	assert.False(t, ok)
	_, ok = c.Get("acme", "is_superuser")
	assert.True(t, ok)
}

func TestInvalidateSchema(t *testing.T) {
	c := NewTenantCache()
	_, _ = c.GetOrCompute("acme", "is_staff", func() (interface{}, error) { return true, nil })
	_, _ = c.GetOrCompute("acme", "is_superuser", func() (interface{}, error) { return true, nil })
	_, _ = c.GetOrCompute("other", "is_staff", func() (interface{}, error) { return false, nil })

	c.InvalidateSchema("acme")

	_, ok := c.Get("acme", "is_staff")
	assert.False(t, ok)
	_, ok = c.Get("acme", "is_superuser")
	assert.False(t, ok)
	_, ok = c.Get("other", "is_staff")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentGetOrCompute(t *testing.T) {
	c := NewTenantCache()

	var wg sync.WaitGroup
	results := make([]interface{}, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute("acme", "perms", func() (interface{}, error) {
				return i, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	// First write wins: every goroutine observed the same value.
	for _, v := range results {
		assert.Equal(t, results[0], v)
	}
	assert.Equal(t, 1, c.Len())
}
