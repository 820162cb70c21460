package supply

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ErrDependencyCycle is returned by DependencyGraph.Order for cyclic graphs.
var ErrDependencyCycle = errors.New("dependency cycle")

// DependencyGraph records which types depend on which, as reported by
// Dependent suppliers and binders, and derives a build order from it.
type DependencyGraph struct {
	// Using adjacency list representation for better memory efficiency
	downstream map[reflect.Type][]reflect.Type
	upstream   map[reflect.Type][]reflect.Type
	provided   map[reflect.Type]bool
	nodes      []reflect.Type
	mu         sync.RWMutex
}

// NewDependencyGraph creates an empty dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		downstream: make(map[reflect.Type][]reflect.Type),
		upstream:   make(map[reflect.Type][]reflect.Type),
		provided:   make(map[reflect.Type]bool),
	}
}

// Add registers s as the provider of its supplied type. When s is a
// Dependent its dependencies become edges.
func (g *DependencyGraph) Add(s AnySupplier) {
	var deps []reflect.Type
	if d, ok := s.(Dependent); ok {
		deps = d.Dependencies()
	}
	g.Register(s.SuppliedType(), deps...)
}

// Register marks provides as available and records its dependencies.
func (g *DependencyGraph) Register(provides reflect.Type, dependencies ...reflect.Type) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.provided[provides] = true
	g.addNode(provides)
	for _, dep := range dependencies {
		g.addEdge(provides, dep)
	}
}

// AddDependency adds a dependency relationship
func (g *DependencyGraph) AddDependency(dependent, dependency reflect.Type) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNode(dependent)
	g.addEdge(dependent, dependency)
}

// RemoveDependency removes a dependency relationship
func (g *DependencyGraph) RemoveDependency(dependent, dependency reflect.Type) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.downstream[dependency] = removeElement(g.downstream[dependency], dependent)
	if len(g.downstream[dependency]) == 0 {
		delete(g.downstream, dependency)
	}

	g.upstream[dependent] = removeElement(g.upstream[dependent], dependency)
	if len(g.upstream[dependent]) == 0 {
		delete(g.upstream, dependent)
	}
}

// FindDependents performs iterative traversal to find all transitive dependents
func (g *DependencyGraph) FindDependents(start reflect.Type) []reflect.Type {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// Use explicit stack instead of recursion
	stack := make([]reflect.Type, 0, 32)
	stack = append(stack, start)

	dependents := make([]reflect.Type, 0, 32)
	visited := make(map[reflect.Type]bool, 32)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			continue
		}
		visited[current] = true

		if current != start {
			dependents = append(dependents, current)
		}

		for _, dep := range g.downstream[current] {
			if !visited[dep] {
				stack = append(stack, dep)
			}
		}
	}

	return dependents
}

// GetDirectDependents returns only direct dependents (no recursion)
func (g *DependencyGraph) GetDirectDependents(t reflect.Type) []reflect.Type {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if deps, exists := g.downstream[t]; exists {
		// Return a copy to prevent external modification
		result := make([]reflect.Type, len(deps))
		copy(result, deps)
		return result
	}
	return nil
}

// Missing returns the types that are depended upon but never registered as
// provided, in first-seen order.
func (g *DependencyGraph) Missing() []reflect.Type {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var missing []reflect.Type
	for _, n := range g.nodes {
		if !g.provided[n] && len(g.downstream[n]) > 0 {
			missing = append(missing, n)
		}
	}
	return missing
}

// Order returns every known type so that dependencies precede their
// dependents. Ties keep registration order.
func (g *DependencyGraph) Order() ([]reflect.Type, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	remaining := make(map[reflect.Type]int, len(g.nodes))
	for _, n := range g.nodes {
		remaining[n] = len(g.upstream[n])
	}

	order := make([]reflect.Type, 0, len(g.nodes))
	done := make(map[reflect.Type]bool, len(g.nodes))
	for len(order) < len(g.nodes) {
		progressed := false
		for _, n := range g.nodes {
			if done[n] || remaining[n] > 0 {
				continue
			}
			done[n] = true
			order = append(order, n)
			progressed = true
			for _, dependent := range g.downstream[n] {
				remaining[dependent]--
			}
		}
		if !progressed {
			return order, g.cycleError(done)
		}
	}
	return order, nil
}

func (g *DependencyGraph) cycleError(done map[reflect.Type]bool) error {
	names := make([]string, 0)
	for _, n := range g.nodes {
		if !done[n] {
			names = append(names, TypeName(n))
		}
	}
	return fmt.Errorf("%w between %s", ErrDependencyCycle, strings.Join(names, ", "))
}

func (g *DependencyGraph) addNode(t reflect.Type) {
	for _, n := range g.nodes {
		if n == t {
			return
		}
	}
	g.nodes = append(g.nodes, t)
}

func (g *DependencyGraph) addEdge(dependent, dependency reflect.Type) {
	g.addNode(dependency)
	g.downstream[dependency] = appendUnique(g.downstream[dependency], dependent)
	g.upstream[dependent] = appendUnique(g.upstream[dependent], dependency)
}

// Utility functions for working with slices efficiently

func appendUnique[T comparable](slice []T, item T) []T {
	for _, existing := range slice {
		if existing == item {
			return slice
		}
	}
	return append(slice, item)
}

func removeElement[T comparable](slice []T, item T) []T {
	for i, existing := range slice {
		if existing == item {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}
