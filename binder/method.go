package binder

import (
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/pkg/meta"
)

var (
	_ Executable[int]           = (*Method[int])(nil)
	_ ContextualExecutable[int] = (*ContextualMethod[int])(nil)
)

// method is shared by Method and ContextualMethod.
type method[R any] struct {
	executable
	owner     supply.AnySupplier
	broadcast bool
	typ       reflect.Type
}

func newMethod[R any](owner supply.AnySupplier, address string, params []supply.AnySupplier, opts []Option) (method[R], error) {
	if supply.IsNil(owner) {
		return method[R]{}, &supply.ReflectionError{Message: fmt.Sprintf("owner supplier of method %s cannot be nil", address)}
	}
	o := applyOptions(opts)
	typ := supply.TypeOf[R]()

	lookup := owner.SuppliedType()
	if o.broadcast && lookup != nil && (lookup.Kind() == reflect.Slice || lookup.Kind() == reflect.Array) {
		lookup = lookup.Elem()
	}

	m, err := meta.MethodOf(lookup, address)
	if err != nil {
		return method[R]{}, &supply.ReflectionError{Message: fmt.Sprintf("cannot bind method %s", address), Cause: err}
	}
	if result := m.ResultType(); result != nil && typ != supply.UnitType && !mayProduce(result, typ) {
		return method[R]{}, &supply.ReflectionError{
			Message: fmt.Sprintf("method %s returns %s but expected %s", m.Pretty(), meta.TypeName(result), meta.TypeName(typ)),
		}
	}

	exec, err := newExecutable(m, params, o)
	if err != nil {
		return method[R]{}, err
	}
	return method[R]{executable: exec, owner: owner, broadcast: o.broadcast, typ: typ}, nil
}

func (b *method[R]) SuppliedType() reflect.Type { return b.typ }

func (b *method[R]) Describe() string { return b.ExecutableReference() }

func (b *method[R]) Suppliers() []supply.AnySupplier {
	out := make([]supply.AnySupplier, 0, len(b.params)+1)
	out = append(out, b.owner)
	return append(out, b.params...)
}

// call invokes the method on the resolved owner, once per element in
// broadcast mode.
func (b *method[R]) call(owner any, args []any) (R, bool, error) {
	var zero R
	if owner == nil {
		return zero, false, &supply.ReflectionError{
			Message: fmt.Sprintf("owner supplier did not supply any object for %s", b.ExecutableReference()),
		}
	}

	if b.broadcast {
		if elements, ok := collection(owner); ok {
			for _, element := range elements {
				if _, err := b.invoke(element, args); err != nil {
					return zero, false, err
				}
			}
			return zero, false, nil
		}
	}

	out, err := b.invoke(owner, args)
	if err != nil {
		return zero, false, err
	}
	if b.typ == supply.UnitType {
		return zero, false, nil
	}
	return typed[R](out, func(got any) string {
		return fmt.Sprintf("method %s returned type %T but expected %s", b.exec.Name(), got, meta.TypeName(b.typ))
	})
}

func collection(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Method calls a method on the value of an owner supplier. Parameters and
// owner are resolved without contexts.
type Method[R any] struct {
	method[R]
}

// NewMethod binds the method at address ("Name" or "Field.Name") of the
// owner's supplied type. R is the declared return type; use supply.Unit for
// methods whose result is ignored.
func NewMethod[R any](owner supply.AnySupplier, address string, params []supply.AnySupplier, opts ...Option) (*Method[R], error) {
	m, err := newMethod[R](owner, address, params, opts)
	if err != nil {
		return nil, err
	}
	return &Method[R]{method: m}, nil
}

// Execute resolves the arguments and the owner, then calls the method.
func (b *Method[R]) Execute() (R, bool, error) {
	var zero R
	args, err := b.buildArguments()
	if err != nil {
		return zero, false, err
	}
	owner, err := b.resolver.Supply(b.owner)
	if err != nil {
		return zero, false, err
	}
	return b.call(owner, args)
}

func (b *Method[R]) Supply() (R, bool, error) { return b.Execute() }

func (b *Method[R]) SupplyAny() (any, bool, error) { return anyResult(b.Execute()) }

// ContextualMethod calls a method with an owner context. Its context type is
// the owner supplier's context type, or supply.Unit when the owner supplier
// needs none. Parameters are resolved against the owner context followed by
// the auxiliary contexts.
type ContextualMethod[R any] struct {
	method[R]
}

// NewContextualMethod binds a method like NewMethod, resolving contextually.
func NewContextualMethod[R any](owner supply.AnySupplier, address string, params []supply.AnySupplier, opts ...Option) (*ContextualMethod[R], error) {
	m, err := newMethod[R](owner, address, params, opts)
	if err != nil {
		return nil, err
	}
	return &ContextualMethod[R]{method: m}, nil
}

func (b *ContextualMethod[R]) ContextType() reflect.Type { return contextTypeOf(b.owner) }

func (b *ContextualMethod[R]) AcceptsContext(candidate any) bool {
	return acceptsContext(b.owner, candidate)
}

// ExecuteWith resolves the arguments against [owner, contexts...] and the
// owner object against owner, then calls the method.
func (b *ContextualMethod[R]) ExecuteWith(owner any, contexts ...any) (R, bool, error) {
	var zero R
	args, err := b.buildArguments(supply.MergeContexts(owner, contexts)...)
	if err != nil {
		return zero, false, err
	}
	target, err := b.resolver.Supply(b.owner, owner)
	if err != nil {
		return zero, false, err
	}
	return b.call(target, args)
}

func (b *ContextualMethod[R]) SupplyWith(owner any, contexts ...any) (R, bool, error) {
	return b.ExecuteWith(owner, contexts...)
}

func (b *ContextualMethod[R]) SupplyAnyWith(owner any, contexts ...any) (any, bool, error) {
	return anyResult(b.ExecuteWith(owner, contexts...))
}

// Supply calls the method without context, which only works when the owner
// needs none.
func (b *ContextualMethod[R]) Supply() (R, bool, error) {
	if ct := b.ContextType(); ct != supply.UnitType {
		var zero R
		return zero, false, supply.ContextRequired(ct)
	}
	return b.ExecuteWith(supply.Unit{})
}

func (b *ContextualMethod[R]) SupplyAny() (any, bool, error) { return anyResult(b.Supply()) }
