package expression

import (
	"reflect"

	supply "github.com/pumped-fn/supply-go"
)

var _ TypedNode[int] = (*LazyNode[int])(nil)

// LazyNode defers the evaluation of a child until its value is needed.
type LazyNode[T any] struct {
	inner TypedNode[T]
}

// Lazy wraps node so that evaluating it only captures the Context. The
// resulting supplier evaluates node and resolves its supplier on every
// Supply.
func Lazy[T any](node TypedNode[T]) *LazyNode[T] {
	return &LazyNode[T]{inner: node}
}

func (l *LazyNode[T]) Name() string { return "lazy(" + l.inner.Name() + ")" }

func (l *LazyNode[T]) ResultType() reflect.Type { return l.inner.ResultType() }

func (l *LazyNode[T]) IsContextual() bool { return l.inner.IsContextual() }

func (l *LazyNode[T]) Children() []AnyNode { return []AnyNode{l.inner} }

func (l *LazyNode[T]) EvaluateWith(ctx *Context) (supply.Supplier[T], error) {
	return supply.Optional(func() (T, bool, error) {
		var zero T
		s, err := l.inner.EvaluateWith(ctx)
		if err != nil {
			return zero, false, err
		}
		v, err := resolve(s, ctx)
		if err != nil || v == nil {
			return zero, false, err
		}
		t, err := supply.SafeTypeAssertion[T](v)
		if err != nil {
			return zero, false, err
		}
		return t, true, nil
	}), nil
}

func (l *LazyNode[T]) EvaluateAny(ctx *Context) (supply.AnySupplier, error) {
	return erase[T](l.EvaluateWith(ctx))
}

// resolve pulls the terminal value of s, offering ctx as context.
func resolve(s supply.AnySupplier, ctx *Context) (any, error) {
	if ctx == nil {
		return supply.ContextualRecursiveSupply(s)
	}
	return supply.ContextualRecursiveSupply(s, ctx)
}
