package expression_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/expression"
	"github.com/pumped-fn/supply-go/pkg/config"
)

func lessThan(limit int) *expression.Node[bool] {
	return expression.NewNode("lt", func(children ...supply.AnySupplier) (supply.Supplier[bool], error) {
		i := children[0].(supply.Supplier[int])
		return supply.Derive1(i, func(n int) (bool, error) { return n < limit, nil }), nil
	}, expression.Variable[int]("i"))
}

func increment() *expression.Node[int] {
	return expression.NewNode("inc", func(children ...supply.AnySupplier) (supply.Supplier[int], error) {
		i := children[0].(supply.Supplier[int])
		return supply.Derive1(i, func(n int) (int, error) { return n + 1, nil }), nil
	}, expression.Variable[int]("i"))
}

func TestForLoop(t *testing.T) {
	t.Run("runs until the condition fails", func(t *testing.T) {
		var seen []int
		body := expression.NewNode("body", func(children ...supply.AnySupplier) (supply.Supplier[int], error) {
			return supply.Derive1(children[0].(supply.Supplier[int]), func(n int) (int, error) {
				seen = append(seen, n)
				return n * n, nil
			}), nil
		}, expression.Variable[int]("i"))

		ctx := withVariable("i", 0)
		loop := expression.NewForLoop("i", increment(), lessThan(4), body)
		s, err := loop.EvaluateWith(ctx)
		require.NoError(t, err)

		v, ok, err := s.Supply()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 9, v)
		assert.Equal(t, []int{0, 1, 2, 3}, seen)

		i, _ := ctx.Get("i")
		assert.Equal(t, 4, i)
	})

	t.Run("condition false at start", func(t *testing.T) {
		ctx := withVariable("i", 10)
		loop := expression.NewForLoop("i", increment(), lessThan(4), expression.Int(1))
		s, err := loop.EvaluateWith(ctx)
		require.NoError(t, err)
		_, ok, err := s.Supply()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("iteration bound", func(t *testing.T) {
		ctx := withVariable("i", 0)
		loop := expression.NewForLoop("i", increment(), expression.Bool(true), expression.Int(1),
			expression.WithMaxIterations(5))
		s, err := loop.EvaluateWith(ctx)
		require.NoError(t, err)

		_, _, err = s.Supply()
		var supplyErr *supply.SupplyError
		require.ErrorAs(t, err, &supplyErr)
		assert.Equal(t, "for loop exceeded maximum iterations (5)", supplyErr.Message)
	})

	t.Run("iteration bound from config", func(t *testing.T) {
		t.Setenv(config.KeyMaxLoopIterations, "3")
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		loop := expression.NewForLoop("i", increment(), expression.Bool(true), expression.Int(1),
			expression.WithLoopConfig(cfg))
		s, err := loop.EvaluateWith(withVariable("i", 0))
		require.NoError(t, err)

		_, _, err = s.Supply()
		var supplyErr *supply.SupplyError
		require.ErrorAs(t, err, &supplyErr)
		assert.Equal(t, "for loop exceeded maximum iterations (3)", supplyErr.Message)
	})

	t.Run("requires a context", func(t *testing.T) {
		loop := expression.NewForLoop("i", increment(), lessThan(4), expression.Int(1))
		assert.True(t, loop.IsContextual())
		_, err := loop.EvaluateWith(nil)
		require.ErrorIs(t, err, supply.ErrContextRequired)
	})

	t.Run("inside an expression", func(t *testing.T) {
		loop := expression.NewForLoop("i", increment(), lessThan(3), expression.Variable[int]("i"))
		v, err := supply.ContextualRecursiveSupply(expression.New[any](loop), withVariable("i", 0))
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("failing step", func(t *testing.T) {
		ctx := withVariable("i", "not a number")
		loop := expression.NewForLoop("i", increment(), lessThan(3), expression.Int(1))
		s, err := loop.EvaluateWith(ctx)
		require.NoError(t, err)
		_, _, err = s.Supply()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "variable i holds string, not int")
	})
}

func TestVariable(t *testing.T) {
	parent := withVariable("name", "outer")
	child := parent.Child()

	s, err := expression.Variable[string]("name").EvaluateWith(child)
	require.NoError(t, err)
	v, ok, err := s.Supply()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "outer", v)

	child.Set("name", "inner")
	v, _, err = s.Supply()
	require.NoError(t, err)
	assert.Equal(t, "inner", v, "variables are read at supply time")

	missing, err := expression.Variable[string]("other").EvaluateWith(child)
	require.NoError(t, err)
	_, ok, err = missing.Supply()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLazy(t *testing.T) {
	evaluations := 0
	node := expression.NewContextualNode("counted", func(ctx *expression.Context, _ ...supply.AnySupplier) (supply.Supplier[string], error) {
		evaluations++
		return supply.Fixed(ctx.ID()), nil
	})

	ctx := expression.NewContext()
	lazy := expression.Lazy[string](node)
	assert.True(t, lazy.IsContextual())

	s, err := lazy.EvaluateWith(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, evaluations)

	v, ok, err := s.Supply()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ctx.ID(), v)
	_, _, _ = s.Supply()
	assert.Equal(t, 2, evaluations)
}

func TestContext(t *testing.T) {
	root := expression.NewContext()
	child := root.Child()
	assert.NotEqual(t, root.ID(), child.ID())
	assert.Same(t, root, child.Parent())

	root.Set("a", 1)
	child.Set("b", 2)

	_, ok := child.Get("a")
	assert.False(t, ok, "Get does not search parents")
	v, ok := child.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = root.Lookup("b")
	assert.False(t, ok)

	vars := child.Variables()
	vars["b"] = 3
	got, _ := child.Get("b")
	assert.Equal(t, 2, got)

	child.Delete("b")
	_, ok = child.Get("b")
	assert.False(t, ok)
}

func TestLiterals(t *testing.T) {
	resolve := func(t *testing.T, n expression.AnyNode) any {
		t.Helper()
		s, err := n.EvaluateAny(nil)
		require.NoError(t, err)
		v, err := supply.ContextualSupply(s)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, 42, resolve(t, expression.Int("42")))
	assert.Equal(t, 2.5, resolve(t, expression.Float("2.5")))
	assert.Equal(t, true, resolve(t, expression.Bool("true")))
	assert.Equal(t, "7", resolve(t, expression.String(7)))
	assert.Equal(t, []string{"a", "b"}, resolve(t, expression.Literal[[]string]([]string{"a", "b"})))

	_, err := expression.Int("forty-two").EvaluateWith(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot convert 'forty-two' to int")
}
