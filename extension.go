package supply

import "context"

// Extension provides hooks into supplier resolution
type Extension interface {
	// Name returns the extension's name
	Name() string

	// Order determines extension execution order (lower = earlier)
	Order() int

	// Init is called when the extension is registered to a resolver
	Init(r *Resolver) error

	// Wrap intercepts resolution operations
	Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error)

	// OnError handles errors during resolution
	OnError(err error, op *Operation, r *Resolver)
}

// BaseExtension provides default implementations for Extension methods
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Init(r *Resolver) error {
	return nil
}

func (e *BaseExtension) Wrap(ctx context.Context, next func() (any, error), op *Operation) (any, error) {
	return next()
}

func (e *BaseExtension) OnError(err error, op *Operation, r *Resolver) {
}

// Operation describes what operation is happening
type Operation struct {
	Kind     OperationKind
	Supplier AnySupplier
	Contexts []any
	Resolver *Resolver
}

// OperationKind represents the type of operation
type OperationKind string

const (
	// OpSupply indicates a single contextual supply
	OpSupply OperationKind = "supply"
	// OpSupplyRecursive indicates a supply that unwraps nested suppliers
	OpSupplyRecursive OperationKind = "supply-recursive"
)
