package expression

import (
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
)

var contextIDs atomic.Uint64

// Context is the environment an expression is evaluated in. It holds named
// variables and an optional parent whose variables are visible through
// Lookup. A Context is safe for concurrent use.
type Context struct {
	id     string
	parent *Context

	mu   sync.RWMutex
	data map[string]any
}

// NewContext creates an empty root context.
func NewContext() *Context {
	return &Context{
		id:   fmt.Sprintf("ctx-%d", contextIDs.Add(1)),
		data: make(map[string]any),
	}
}

// Child creates a context whose lookups fall back to c.
func (c *Context) Child() *Context {
	child := NewContext()
	child.parent = c
	return child
}

func (c *Context) ID() string { return c.id }

func (c *Context) Parent() *Context { return c.parent }

// Set binds name to value in c. Parents are left untouched.
func (c *Context) Set(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = value
}

// Get returns the value bound to name in c only.
func (c *Context) Get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[name]
	return v, ok
}

// Delete removes name from c.
func (c *Context) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, name)
}

// Lookup searches c, then its parents, for name.
func (c *Context) Lookup(name string) (any, bool) {
	for current := c; current != nil; current = current.parent {
		if v, ok := current.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Variables returns a snapshot of the variables bound in c.
func (c *Context) Variables() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.data)
}
