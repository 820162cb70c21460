package expression_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/binder"
	"github.com/pumped-fn/supply-go/expression"
)

type Concatenator struct{}

func (Concatenator) Concatenate(a, b string) string {
	return a + b
}

// ownContext supplies the *Concatenator it is given as owner context.
var ownContext = supply.Contextual(func(c *Concatenator, _ ...any) (*Concatenator, bool, error) {
	return c, true, nil
})

func suffixNode(child expression.AnyNode, suffix string) *expression.Node[string] {
	return expression.NewNode("append", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
		return supply.Derive1(children[0].(supply.Supplier[string]), func(s string) (string, error) {
			return s + suffix, nil
		}), nil
	}, child)
}

func concat(t *testing.T, owner supply.AnySupplier, contextual bool, params ...supply.AnySupplier) supply.Supplier[string] {
	t.Helper()
	if contextual {
		m, err := binder.NewContextualMethod[string](owner, "Concatenate", params)
		require.NoError(t, err)
		return m
	}
	m, err := binder.NewMethod[string](owner, "Concatenate", params)
	require.NoError(t, err)
	return m
}

func TestPlainChain(t *testing.T) {
	pulls := 0
	leaf := expression.NewLeaf("hello", func(args ...any) (supply.Supplier[string], error) {
		return supply.Func(func() (string, error) {
			pulls++
			return args[0].(string), nil
		}), nil
	}, "Hello world from")

	root := suffixNode(suffixNode(suffixNode(leaf, " node 1"), " node 2"), " node 3")

	s, err := root.EvaluateWith(nil)
	require.NoError(t, err)
	assert.Zero(t, pulls, "evaluation builds suppliers without pulling values")

	v, _, err := s.Supply()
	require.NoError(t, err)
	assert.Equal(t, "Hello world from node 1 node 2 node 3", v)
	assert.Equal(t, 1, pulls)

	exp := expression.New[string](root)
	assert.Equal(t, supply.UnitType, exp.ContextType())

	inner, ok, err := exp.Supply()
	require.NoError(t, err)
	require.True(t, ok)
	v, _, err = inner.Supply()
	require.NoError(t, err)
	assert.Equal(t, "Hello world from node 1 node 2 node 3", v)

	v, err = supply.ResolveRecursive[string](exp)
	require.NoError(t, err)
	assert.Equal(t, "Hello world from node 1 node 2 node 3", v)
}

func TestContextualMethodsInPlainNodes(t *testing.T) {
	owner := supply.Fixed(Concatenator{})
	node1 := expression.NewNode("node1", func(...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, supply.Fixed("Hello from node 1"), supply.Fixed("")), nil
	})
	node2 := expression.NewNode("node2", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, children[0], supply.Fixed(" node 2")), nil
	}, node1)
	node3 := expression.NewNode("node3", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, children[0], supply.Fixed(" node 3")), nil
	}, node2)

	exp := expression.New[string](node3)
	_, err := exp.Evaluate()
	require.NoError(t, err)

	evaluated, err := exp.Evaluate()
	require.NoError(t, err)
	v, err := supply.ContextualRecursiveSupply(evaluated, expression.NewContext())
	require.NoError(t, err)
	assert.Equal(t, "Hello from node 1 node 2 node 3", v)
}

func TestContextualChain(t *testing.T) {
	owner := supply.Fixed(Concatenator{})
	contextual := func(name, suffix string, first bool, children ...expression.AnyNode) *expression.ContextualNode[string] {
		return expression.NewContextualNode(name, func(ctx *expression.Context, children ...supply.AnySupplier) (supply.Supplier[string], error) {
			require.NotNil(t, ctx)
			if first {
				return concat(t, owner, true, supply.Fixed("Hello from node 1"), supply.Fixed("")), nil
			}
			return concat(t, owner, true, children[0], supply.Fixed(suffix)), nil
		}, children...)
	}
	node1 := contextual("node1", "", true)
	node2 := contextual("node2", " node 2", false, node1)
	node3 := contextual("node3", " node 3", false, node2)

	exp := expression.New[string](node3)
	assert.True(t, supply.IsContextual(exp))

	for _, ctx := range []*expression.Context{expression.NewContext(), withVariable("x", 1)} {
		v, err := supply.ContextualRecursiveSupply(exp, ctx)
		require.NoError(t, err)
		assert.Equal(t, "Hello from node 1 node 2 node 3", v)
	}

	_, _, err := exp.Supply()
	require.ErrorIs(t, err, supply.ErrContextRequired)

	_, err = exp.Evaluate()
	require.ErrorIs(t, err, supply.ErrContextRequired)
	var evalErr *expression.EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "node3", evalErr.Node)
}

func TestMixedChain(t *testing.T) {
	owner := supply.Fixed(Concatenator{})
	node1 := expression.NewContextualNode("node1", func(_ *expression.Context, _ ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, supply.Fixed("Hello from node 1"), supply.Fixed("")), nil
	})
	node2 := expression.NewNode("node2", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, false, children[0], supply.Fixed(" node 2")), nil
	}, node1)
	node3 := expression.NewContextualNode("node3", func(_ *expression.Context, children ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, children[0], supply.Fixed(" node 3")), nil
	}, node2)

	exp := expression.New[string](node3)
	v, err := supply.ContextualRecursiveSupply(exp, expression.NewContext())
	require.NoError(t, err)
	assert.Equal(t, "Hello from node 1 node 2 node 3", v)
}

func TestContextualSupplierAsMethodParameter(t *testing.T) {
	owner := supply.Fixed(Concatenator{})
	echo := supply.Contextual(func(s string, _ ...any) (string, bool, error) {
		return s, true, nil
	})
	node1 := expression.NewContextualNode("node1", func(_ *expression.Context, _ ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, supply.Fixed("Hello from node 1"), supply.Fixed("")), nil
	})
	node2 := expression.NewNode("node2", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, owner, true, children[0], echo), nil
	}, node1)

	v, err := supply.ContextualRecursiveSupply(expression.New[string](node2), expression.NewContext(), " node 2")
	require.NoError(t, err)
	assert.Equal(t, "Hello from node 1 node 2", v)
}

func TestContextualMethodOwner(t *testing.T) {
	node1 := expression.NewContextualNode("node1", func(_ *expression.Context, _ ...supply.AnySupplier) (supply.Supplier[string], error) {
		return concat(t, ownContext, true, supply.Fixed("Hello from node 1"), supply.Fixed("")), nil
	})

	t.Run("plain method breaks propagation", func(t *testing.T) {
		node2 := expression.NewNode("node2", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
			return concat(t, supply.Fixed(Concatenator{}), false, children[0], supply.Fixed(" node 2")), nil
		}, node1)

		_, err := supply.ContextualRecursiveSupply(expression.New[string](node2), expression.NewContext(), &Concatenator{})
		var supplyErr *supply.SupplyError
		require.ErrorAs(t, err, &supplyErr)
		assert.Equal(t, "Error on parameter 0", supplyErr.Message)
		assert.ErrorIs(t, err, supply.ErrNoCompatibleContext)
	})

	t.Run("contextual method propagates", func(t *testing.T) {
		node2 := expression.NewNode("node2", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
			return concat(t, supply.Fixed(Concatenator{}), true, children[0], supply.Fixed(" node 2")), nil
		}, node1)

		v, err := supply.ContextualRecursiveSupply(expression.New[string](node2), expression.NewContext(), &Concatenator{})
		require.NoError(t, err)
		assert.Equal(t, "Hello from node 1 node 2", v)
	})
}

func TestEvaluationErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("builder error", func(t *testing.T) {
		leaf := expression.NewLeaf("broken", func(...any) (supply.Supplier[int], error) { return nil, boom })
		_, err := expression.New[int](leaf).Evaluate()
		var evalErr *expression.EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.Equal(t, "broken", evalErr.Node)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil supplier", func(t *testing.T) {
		leaf := expression.NewLeaf("empty", func(...any) (supply.Supplier[int], error) { return nil, nil })
		_, err := leaf.EvaluateWith(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "builder returned no supplier")
	})

	t.Run("child error stops the parent", func(t *testing.T) {
		built := false
		leaf := expression.NewLeaf("broken", func(...any) (supply.Supplier[int], error) { return nil, boom })
		parent := expression.NewNode("parent", func(...supply.AnySupplier) (supply.Supplier[int], error) {
			built = true
			return supply.Fixed(1), nil
		}, leaf)
		_, err := parent.EvaluateWith(nil)
		require.ErrorIs(t, err, boom)
		assert.False(t, built)
	})

	t.Run("no root", func(t *testing.T) {
		_, err := expression.New[int](nil).Evaluate()
		require.Error(t, err)
	})
}

func TestEvaluationOrder(t *testing.T) {
	var order []string
	record := func(name string, children ...expression.AnyNode) *expression.Node[int] {
		return expression.NewNode(name, func(...supply.AnySupplier) (supply.Supplier[int], error) {
			order = append(order, name)
			return supply.Fixed(0), nil
		}, children...)
	}
	root := record("root", record("a", record("a1"), record("a2")), record("b"))

	_, err := root.EvaluateWith(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a", "b", "root"}, order)
	assert.False(t, root.IsContextual())
	assert.Len(t, root.Children(), 2)
}

func TestBuildersReceiveSuppliers(t *testing.T) {
	calls := 0
	counter := supply.Func(func() (int, error) {
		calls++
		return calls, nil
	})
	root := expression.NewNode("sum", func(children ...supply.AnySupplier) (supply.Supplier[int], error) {
		return supply.Derive1(children[0].(supply.Supplier[int]), func(n int) (int, error) {
			return n * 10, nil
		}), nil
	}, expression.Fixed[int](counter))

	s, err := expression.New[int](root).Evaluate()
	require.NoError(t, err)
	assert.Equal(t, 0, calls, "evaluation pulls no values")

	v, _, err := s.Supply()
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	v, _, err = s.Supply()
	require.NoError(t, err)
	assert.Equal(t, 20, v)
}

func withVariable(name string, value any) *expression.Context {
	ctx := expression.NewContext()
	ctx.Set(name, value)
	return ctx
}
