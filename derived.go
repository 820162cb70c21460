package supply

import (
	"reflect"
)

//go:generate go run codegen/main.go -w

// Derived combines the values of other suppliers. It propagates the contexts
// it is supplied with to its dependencies, so a derived value over
// contextual suppliers resolves through ContextualRecursiveSupply. When any
// dependency is empty the derived supplier is empty too. Dependencies are
// resolved with the default resolver unless WithResolver names another.
type Derived[T any] struct {
	deps     []AnySupplier
	combine  func(values []any) (T, error)
	typ      reflect.Type
	resolver *Resolver
}

func newDerived[T any](deps []AnySupplier, combine func(values []any) (T, error)) *Derived[T] {
	return &Derived[T]{deps: deps, combine: combine, typ: TypeOf[T]()}
}

// WithResolver returns a copy of d that resolves its dependencies with r, so
// r's extensions and limits apply to them.
func (d *Derived[T]) WithResolver(r *Resolver) *Derived[T] {
	c := *d
	c.resolver = r
	return &c
}

func (d *Derived[T]) SuppliedType() reflect.Type { return d.typ }

func (d *Derived[T]) ContextType() reflect.Type { return UnitType }

func (d *Derived[T]) AcceptsContext(candidate any) bool { return true }

func (d *Derived[T]) SupplyWith(_ Unit, contexts ...any) (T, bool, error) {
	var zero T
	r := d.resolver
	if r == nil {
		r = defaultResolver
	}
	values := make([]any, len(d.deps))
	for i, dep := range d.deps {
		v, err := r.Supply(dep, contexts...)
		if err != nil {
			return zero, false, ParameterError(i, err)
		}
		if v == nil {
			return zero, false, nil
		}
		values[i] = v
	}

	v, err := d.combine(values)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func (d *Derived[T]) SupplyAnyWith(_ any, contexts ...any) (any, bool, error) {
	v, ok, err := d.SupplyWith(Unit{}, contexts...)
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}

func (d *Derived[T]) Supply() (T, bool, error) {
	return d.SupplyWith(Unit{})
}

func (d *Derived[T]) SupplyAny() (any, bool, error) {
	return d.SupplyAnyWith(Unit{})
}

// Dependencies returns the supplied types of the dependencies, deduplicated
// in declaration order.
func (d *Derived[T]) Dependencies() []reflect.Type {
	return SuppliedTypes(d.deps)
}

func (d *Derived[T]) Suppliers() []AnySupplier {
	out := make([]AnySupplier, len(d.deps))
	copy(out, d.deps)
	return out
}

// SuppliedTypes returns the supplied types of suppliers, deduplicated in
// order. Nil suppliers are skipped.
func SuppliedTypes(suppliers []AnySupplier) []reflect.Type {
	types := make([]reflect.Type, 0, len(suppliers))
	for _, s := range suppliers {
		if IsNil(s) {
			continue
		}
		types = appendUnique(types, s.SuppliedType())
	}
	return types
}
