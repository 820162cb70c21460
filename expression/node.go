package expression

import (
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
)

// AnyNode is the type-erased view of a tree element.
type AnyNode interface {
	Name() string
	// ResultType is the type supplied by the supplier the node evaluates to.
	ResultType() reflect.Type
	// IsContextual reports whether the node or any descendant needs an
	// evaluation Context.
	IsContextual() bool
	Children() []AnyNode
	EvaluateAny(ctx *Context) (supply.AnySupplier, error)
}

// TypedNode is a tree element evaluating to a Supplier[T].
type TypedNode[T any] interface {
	AnyNode
	EvaluateWith(ctx *Context) (supply.Supplier[T], error)
}

// EvaluationError reports a node that could not build its supplier.
type EvaluationError struct {
	Node  string
	Cause error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating node %q: %v", e.Node, e.Cause)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

var (
	_ TypedNode[int] = (*Leaf[int])(nil)
	_ TypedNode[int] = (*Node[int])(nil)
	_ TypedNode[int] = (*ContextualNode[int])(nil)
)

// Leaf is a node without children. Its builder receives the arguments given
// at construction.
type Leaf[T any] struct {
	name  string
	build func(args ...any) (supply.Supplier[T], error)
	args  []any
}

// NewLeaf creates a leaf building its supplier from args.
func NewLeaf[T any](name string, build func(args ...any) (supply.Supplier[T], error), args ...any) *Leaf[T] {
	return &Leaf[T]{name: name, build: build, args: args}
}

func (l *Leaf[T]) Name() string { return l.name }

func (l *Leaf[T]) ResultType() reflect.Type { return supply.TypeOf[T]() }

func (l *Leaf[T]) IsContextual() bool { return false }

func (l *Leaf[T]) Children() []AnyNode { return nil }

// Args returns the arguments handed to the builder.
func (l *Leaf[T]) Args() []any { return append([]any(nil), l.args...) }

func (l *Leaf[T]) EvaluateWith(_ *Context) (supply.Supplier[T], error) {
	return built[T](l.name)(l.build(l.args...))
}

func (l *Leaf[T]) EvaluateAny(ctx *Context) (supply.AnySupplier, error) {
	return erase[T](l.EvaluateWith(ctx))
}

// Node is an interior node whose builder receives the suppliers produced by
// its children, in order.
type Node[T any] struct {
	name     string
	build    func(children ...supply.AnySupplier) (supply.Supplier[T], error)
	children []AnyNode
}

// NewNode creates a plain node over children.
func NewNode[T any](name string, build func(children ...supply.AnySupplier) (supply.Supplier[T], error), children ...AnyNode) *Node[T] {
	return &Node[T]{name: name, build: build, children: children}
}

func (n *Node[T]) Name() string { return n.name }

func (n *Node[T]) ResultType() reflect.Type { return supply.TypeOf[T]() }

func (n *Node[T]) IsContextual() bool { return anyContextual(n.children) }

func (n *Node[T]) Children() []AnyNode { return append([]AnyNode(nil), n.children...) }

// EvaluateWith evaluates the children with ctx, then builds the node's
// supplier from theirs.
func (n *Node[T]) EvaluateWith(ctx *Context) (supply.Supplier[T], error) {
	children, err := evaluateChildren(n.name, n.children, ctx)
	if err != nil {
		return nil, err
	}
	return built[T](n.name)(n.build(children...))
}

func (n *Node[T]) EvaluateAny(ctx *Context) (supply.AnySupplier, error) {
	return erase[T](n.EvaluateWith(ctx))
}

// ContextualNode is a Node whose builder also receives the evaluation
// Context. It cannot be evaluated without one.
type ContextualNode[T any] struct {
	name     string
	build    func(ctx *Context, children ...supply.AnySupplier) (supply.Supplier[T], error)
	children []AnyNode
}

// NewContextualNode creates a contextual node over children.
func NewContextualNode[T any](name string, build func(ctx *Context, children ...supply.AnySupplier) (supply.Supplier[T], error), children ...AnyNode) *ContextualNode[T] {
	return &ContextualNode[T]{name: name, build: build, children: children}
}

func (n *ContextualNode[T]) Name() string { return n.name }

func (n *ContextualNode[T]) ResultType() reflect.Type { return supply.TypeOf[T]() }

func (n *ContextualNode[T]) IsContextual() bool { return true }

func (n *ContextualNode[T]) Children() []AnyNode { return append([]AnyNode(nil), n.children...) }

func (n *ContextualNode[T]) EvaluateWith(ctx *Context) (supply.Supplier[T], error) {
	if ctx == nil {
		return nil, &EvaluationError{Node: n.name, Cause: supply.ContextRequired(contextType)}
	}
	children, err := evaluateChildren(n.name, n.children, ctx)
	if err != nil {
		return nil, err
	}
	return built[T](n.name)(n.build(ctx, children...))
}

func (n *ContextualNode[T]) EvaluateAny(ctx *Context) (supply.AnySupplier, error) {
	return erase[T](n.EvaluateWith(ctx))
}

var contextType = supply.TypeOf[*Context]()

func anyContextual(nodes []AnyNode) bool {
	for _, n := range nodes {
		if n != nil && n.IsContextual() {
			return true
		}
	}
	return false
}

func evaluateChildren(parent string, children []AnyNode, ctx *Context) ([]supply.AnySupplier, error) {
	out := make([]supply.AnySupplier, len(children))
	for i, child := range children {
		if child == nil {
			return nil, &EvaluationError{Node: parent, Cause: fmt.Errorf("child %d is nil", i)}
		}
		s, err := child.EvaluateAny(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// built checks a builder's result.
func built[T any](name string) func(supply.Supplier[T], error) (supply.Supplier[T], error) {
	return func(s supply.Supplier[T], err error) (supply.Supplier[T], error) {
		if err != nil {
			return nil, &EvaluationError{Node: name, Cause: err}
		}
		if supply.IsNil(s) {
			return nil, &EvaluationError{Node: name, Cause: fmt.Errorf("builder returned no supplier")}
		}
		return s, nil
	}
}

func erase[T any](s supply.Supplier[T], err error) (supply.AnySupplier, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
