package binder

import (
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/pkg/meta"
)

var (
	_ supply.Supplier[int]                = (*Field[any, int])(nil)
	_ supply.ContextualSupplier[int, any] = (*ContextualField[any, int])(nil)
)

// field is shared by Field and ContextualField.
type field[O, F any] struct {
	owner     supply.AnySupplier
	value     supply.AnySupplier
	accessor  meta.FieldAccessor
	ownerType reflect.Type
	typ       reflect.Type
	resolver  *supply.Resolver
}

func newField[O, F any](owner supply.AnySupplier, address string, value supply.AnySupplier, opts []Option) (field[O, F], error) {
	if supply.IsNil(owner) {
		return field[O, F]{}, &supply.ReflectionError{Message: fmt.Sprintf("owner supplier of field %s cannot be nil", address)}
	}
	if supply.IsNil(value) {
		value = nil
	}
	ownerType := supply.TypeOf[O]()
	typ := supply.TypeOf[F]()

	accessor, err := meta.FieldOf(ownerType, address)
	if err != nil {
		return field[O, F]{}, &supply.ReflectionError{Message: fmt.Sprintf("cannot bind field %s", address), Cause: err}
	}
	if !accessor.Type().AssignableTo(typ) {
		return field[O, F]{}, &supply.ReflectionError{
			Message: fmt.Sprintf("field %s is %s but expected %s", accessor.Pretty(), meta.TypeName(accessor.Type()), meta.TypeName(typ)),
		}
	}

	return field[O, F]{
		owner:     owner,
		value:     value,
		accessor:  accessor,
		ownerType: ownerType,
		typ:       typ,
		resolver:  applyOptions(opts).resolver,
	}, nil
}

func (b *field[O, F]) SuppliedType() reflect.Type { return b.typ }

func (b *field[O, F]) Describe() string { return b.accessor.Pretty() }

// Dependencies returns the value supplier's type, if one is bound.
func (b *field[O, F]) Dependencies() []reflect.Type {
	if b.value == nil {
		return nil
	}
	return []reflect.Type{b.value.SuppliedType()}
}

func (b *field[O, F]) Suppliers() []supply.AnySupplier {
	out := []supply.AnySupplier{b.owner}
	if b.value != nil {
		out = append(out, b.value)
	}
	return out
}

func (b *field[O, F]) resolveOwner(contexts ...any) (any, error) {
	owner, err := b.resolver.Supply(b.owner, contexts...)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &supply.ReflectionError{Message: "owner supplier did not supply any object"}
	}
	if !reflect.TypeOf(owner).AssignableTo(b.ownerType) {
		return nil, &supply.ReflectionError{
			Message: fmt.Sprintf("owner of type %T is not assignable to %s", owner, meta.TypeName(b.ownerType)),
		}
	}
	return owner, nil
}

func (b *field[O, F]) set(ownerContexts, valueContexts []any) error {
	owner, err := b.resolveOwner(ownerContexts...)
	if err != nil {
		return err
	}
	if b.value == nil {
		return &supply.ReflectionError{Message: fmt.Sprintf("no value supplier bound to %s", b.accessor.Pretty())}
	}
	value, err := b.resolver.Supply(b.value, valueContexts...)
	if err != nil {
		return err
	}
	if value == nil {
		return &supply.ReflectionError{Message: "value supplier did not supply any value"}
	}
	if err := b.accessor.Set(owner, value); err != nil {
		return &supply.ReflectionError{Message: fmt.Sprintf("cannot set %s", b.accessor.Pretty()), Cause: err}
	}
	return nil
}

func (b *field[O, F]) get(ownerContexts []any) (F, bool, error) {
	var zero F
	owner, err := b.resolveOwner(ownerContexts...)
	if err != nil {
		return zero, false, err
	}
	v, err := b.accessor.Get(owner)
	if err != nil {
		return zero, false, &supply.ReflectionError{Message: fmt.Sprintf("cannot get %s", b.accessor.Pretty()), Cause: err}
	}
	return typed[F](v, func(got any) string {
		return fmt.Sprintf("field %s holds %T but expected %s", b.accessor.Name(), got, meta.TypeName(b.typ))
	})
}

// Field reads and writes a field of the object supplied by an owner
// supplier. As a supplier it supplies the field's current value.
type Field[O, F any] struct {
	field[O, F]
}

// NewField binds the field at address ("Name" or "Inner.Name") of O. value
// may be nil for a read-only binding.
func NewField[O, F any](owner supply.AnySupplier, address string, value supply.AnySupplier, opts ...Option) (*Field[O, F], error) {
	f, err := newField[O, F](owner, address, value, opts)
	if err != nil {
		return nil, err
	}
	return &Field[O, F]{field: f}, nil
}

// Set assigns the supplied value to the supplied owner's field.
func (b *Field[O, F]) Set() error { return b.set(nil, nil) }

// Get reads the field from the supplied owner.
func (b *Field[O, F]) Get() (F, bool, error) { return b.get(nil) }

func (b *Field[O, F]) Supply() (F, bool, error) { return b.Get() }

func (b *Field[O, F]) SupplyAny() (any, bool, error) { return anyResult(b.Get()) }

// ContextualField is a Field whose owner and value are resolved with two
// independent contexts. Each context type is the corresponding supplier's
// context type, or supply.Unit when that supplier needs none.
type ContextualField[O, F any] struct {
	field[O, F]
}

// NewContextualField binds a field like NewField, resolving contextually.
func NewContextualField[O, F any](owner supply.AnySupplier, address string, value supply.AnySupplier, opts ...Option) (*ContextualField[O, F], error) {
	f, err := newField[O, F](owner, address, value, opts)
	if err != nil {
		return nil, err
	}
	return &ContextualField[O, F]{field: f}, nil
}

// OwnerContextType is the context type needed to resolve the owner.
func (b *ContextualField[O, F]) OwnerContextType() reflect.Type { return contextTypeOf(b.owner) }

// ValueContextType is the context type needed to resolve the value.
func (b *ContextualField[O, F]) ValueContextType() reflect.Type {
	if b.value == nil {
		return supply.UnitType
	}
	return contextTypeOf(b.value)
}

// SetWith resolves the owner with ownerContext and the value with
// valueContext, then assigns the field.
func (b *ContextualField[O, F]) SetWith(ownerContext, valueContext any) error {
	return b.set([]any{ownerContext}, []any{valueContext})
}

// GetWith reads the field of the owner resolved with ownerContext.
func (b *ContextualField[O, F]) GetWith(ownerContext any) (F, bool, error) {
	return b.get([]any{ownerContext})
}

func (b *ContextualField[O, F]) ContextType() reflect.Type { return b.OwnerContextType() }

func (b *ContextualField[O, F]) AcceptsContext(candidate any) bool {
	return acceptsContext(b.owner, candidate)
}

func (b *ContextualField[O, F]) SupplyWith(owner any, contexts ...any) (F, bool, error) {
	return b.get(supply.MergeContexts(owner, contexts))
}

func (b *ContextualField[O, F]) SupplyAnyWith(owner any, contexts ...any) (any, bool, error) {
	return anyResult(b.SupplyWith(owner, contexts...))
}

func (b *ContextualField[O, F]) Supply() (F, bool, error) {
	if ct := b.ContextType(); ct != supply.UnitType {
		var zero F
		return zero, false, supply.ContextRequired(ct)
	}
	return b.GetWith(supply.Unit{})
}

func (b *ContextualField[O, F]) SupplyAny() (any, bool, error) { return anyResult(b.Supply()) }
