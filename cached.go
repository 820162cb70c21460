package supply

import (
	"reflect"
	"sync"
)

// CachedSupplier memoizes the first successful result of another supplier.
// Errors are not cached.
type CachedSupplier[T any] struct {
	inner Supplier[T]

	mu      sync.RWMutex
	value   T
	present bool
	cached  bool
}

// Cached wraps inner so it is called at most once until Release.
func Cached[T any](inner Supplier[T]) *CachedSupplier[T] {
	return &CachedSupplier[T]{inner: inner}
}

func (c *CachedSupplier[T]) SuppliedType() reflect.Type { return c.inner.SuppliedType() }

// Supply retrieves the cached value, supplying it first if needed
func (c *CachedSupplier[T]) Supply() (T, bool, error) {
	c.mu.RLock()
	if c.cached {
		defer c.mu.RUnlock()
		return c.value, c.present, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached {
		return c.value, c.present, nil
	}

	v, ok, err := c.inner.Supply()
	if err != nil {
		var zero T
		return zero, false, err
	}
	c.value, c.present, c.cached = v, ok, true
	return v, ok, nil
}

func (c *CachedSupplier[T]) SupplyAny() (any, bool, error) {
	v, ok, err := c.Supply()
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}

// Peek retrieves the cached value without supplying
func (c *CachedSupplier[T]) Peek() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.cached || !c.present {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Release invalidates the cached value
func (c *CachedSupplier[T]) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value, c.present, c.cached = zero, false, false
}

// Reload invalidates and immediately supplies again
func (c *CachedSupplier[T]) Reload() (T, bool, error) {
	c.Release()
	return c.Supply()
}

// IsCached checks if a result is currently cached
func (c *CachedSupplier[T]) IsCached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cached
}

func (c *CachedSupplier[T]) Suppliers() []AnySupplier {
	return []AnySupplier{c.inner}
}
