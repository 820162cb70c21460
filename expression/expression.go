package expression

import (
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
)

var _ supply.ContextualSupplier[supply.Supplier[int], *Context] = (*Expression[int])(nil)

// Expression wraps the root of a tree. It is itself a supplier of the
// supplier its tree evaluates to, so nested expressions unwrap with
// supply.ContextualRecursiveSupply.
//
// An expression whose tree contains a contextual node needs a *Context as
// owner context; otherwise its context type is supply.Unit.
type Expression[T any] struct {
	root       TypedNode[T]
	contextual bool
}

// New creates an expression over root.
func New[T any](root TypedNode[T]) *Expression[T] {
	e := &Expression[T]{root: root}
	if root != nil {
		e.contextual = root.IsContextual()
	}
	return e
}

func (e *Expression[T]) Root() TypedNode[T] { return e.root }

// Evaluate evaluates the tree without a Context.
func (e *Expression[T]) Evaluate() (supply.Supplier[T], error) {
	return e.EvaluateWith(nil)
}

// EvaluateWith evaluates the tree depth-first with ctx.
func (e *Expression[T]) EvaluateWith(ctx *Context) (supply.Supplier[T], error) {
	if e.root == nil {
		return nil, &EvaluationError{Node: "<root>", Cause: fmt.Errorf("expression has no root node")}
	}
	return e.root.EvaluateWith(ctx)
}

func (e *Expression[T]) SuppliedType() reflect.Type { return supply.TypeOf[supply.Supplier[T]]() }

func (e *Expression[T]) ContextType() reflect.Type {
	if e.contextual {
		return contextType
	}
	return supply.UnitType
}

func (e *Expression[T]) AcceptsContext(candidate any) bool {
	if !e.contextual {
		return true
	}
	ctx, ok := candidate.(*Context)
	return ok && ctx != nil
}

func (e *Expression[T]) SupplyWith(owner *Context, _ ...any) (supply.Supplier[T], bool, error) {
	return present(e.EvaluateWith(owner))
}

// SupplyAnyWith evaluates with owner when it is a *Context. A non-contextual
// expression falls back to the first *Context among contexts, if any.
func (e *Expression[T]) SupplyAnyWith(owner any, contexts ...any) (any, bool, error) {
	ctx, ok := owner.(*Context)
	if !ok {
		if e.contextual {
			return nil, false, supply.ContextMismatch(contextType, owner)
		}
		ctx, _ = supply.FindContext[*Context](contexts)
	}
	s, ok, err := e.SupplyWith(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return s, true, nil
}

func (e *Expression[T]) Supply() (supply.Supplier[T], bool, error) {
	if e.contextual {
		return nil, false, supply.ContextRequired(contextType)
	}
	return present(e.Evaluate())
}

func (e *Expression[T]) SupplyAny() (any, bool, error) {
	s, ok, err := e.Supply()
	if err != nil || !ok {
		return nil, false, err
	}
	return s, true, nil
}

func (e *Expression[T]) Describe() string {
	if e.root == nil {
		return "expression()"
	}
	return "expression(" + e.root.Name() + ")"
}

func present[T any](s supply.Supplier[T], err error) (supply.Supplier[T], bool, error) {
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}
