package expression

import (
	"errors"
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/pkg/config"
)

var _ TypedNode[any] = (*ForLoop)(nil)

// ForLoop runs a body while a condition supplies true. After each pass the
// update result is stored in the evaluation Context under the loop
// variable, where Variable nodes read it.
type ForLoop struct {
	variable      string
	update        AnyNode
	condition     AnyNode
	body          AnyNode
	maxIterations int
}

// LoopOption is a modifier for ForLoop
type LoopOption func(*ForLoop)

// WithMaxIterations bounds the number of passes. Exceeding it fails the
// loop.
func WithMaxIterations(n int) LoopOption {
	return func(l *ForLoop) {
		if n > 0 {
			l.maxIterations = n
		}
	}
}

// WithLoopConfig takes the iteration bound from cfg, as loaded from
// SUPPLY_MAX_LOOP_ITERATIONS.
func WithLoopConfig(cfg config.Config) LoopOption {
	return WithMaxIterations(cfg.MaxLoopIterations)
}

// NewForLoop creates a loop over variable.
func NewForLoop(variable string, update, condition, body AnyNode, opts ...LoopOption) *ForLoop {
	l := &ForLoop{
		variable:      variable,
		update:        update,
		condition:     condition,
		body:          body,
		maxIterations: config.DefaultMaxLoopIterations,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *ForLoop) Name() string { return "for(" + l.variable + ")" }

func (l *ForLoop) ResultType() reflect.Type { return supply.TypeOf[any]() }

func (l *ForLoop) IsContextual() bool { return true }

func (l *ForLoop) Children() []AnyNode { return []AnyNode{l.update, l.condition, l.body} }

// EvaluateWith returns a supplier running the loop in ctx. It supplies the
// last body result, or nothing when the body never ran.
func (l *ForLoop) EvaluateWith(ctx *Context) (supply.Supplier[any], error) {
	if ctx == nil {
		return nil, &EvaluationError{Node: l.Name(), Cause: supply.ContextRequired(contextType)}
	}
	for i, n := range l.Children() {
		if n == nil {
			return nil, &EvaluationError{Node: l.Name(), Cause: fmt.Errorf("child %d is nil", i)}
		}
	}
	return supply.Optional(func() (any, bool, error) {
		return l.run(ctx)
	}), nil
}

func (l *ForLoop) EvaluateAny(ctx *Context) (supply.AnySupplier, error) {
	return erase[any](l.EvaluateWith(ctx))
}

func (l *ForLoop) run(ctx *Context) (any, bool, error) {
	var last any
	for range l.maxIterations {
		cond, err := l.step(l.condition, ctx)
		if err != nil {
			return nil, false, err
		}
		if ok, _ := cond.(bool); !ok {
			return last, last != nil, nil
		}
		if last, err = l.step(l.body, ctx); err != nil {
			return nil, false, err
		}
		next, err := l.step(l.update, ctx)
		if err != nil {
			return nil, false, err
		}
		ctx.Set(l.variable, next)
	}
	return nil, false, supply.NewSupplyError(fmt.Sprintf("for loop exceeded maximum iterations (%d)", l.maxIterations), nil)
}

func (l *ForLoop) step(n AnyNode, ctx *Context) (any, error) {
	s, err := n.EvaluateAny(ctx)
	if err == nil {
		var v any
		if v, err = resolve(s, ctx); err == nil {
			return v, nil
		}
	}
	var supplyErr *supply.SupplyError
	if errors.As(err, &supplyErr) {
		return nil, err
	}
	return nil, supply.NewSupplyError("for loop execution failed", err)
}

// Variable reads name from the evaluation Context when supplied. A missing
// or nil variable supplies nothing.
func Variable[T any](name string) *ContextualNode[T] {
	return NewContextualNode("$"+name, func(ctx *Context, _ ...supply.AnySupplier) (supply.Supplier[T], error) {
		return supply.Optional(func() (T, bool, error) {
			var zero T
			v, ok := ctx.Lookup(name)
			if !ok || v == nil {
				return zero, false, nil
			}
			t, ok := v.(T)
			if !ok {
				return zero, false, supply.NewSupplyError(
					fmt.Sprintf("variable %s holds %T, not %s", name, v, supply.TypeName(supply.TypeOf[T]())), nil)
			}
			return t, true, nil
		}), nil
	})
}
