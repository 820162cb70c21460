package supply

import (
	"fmt"
	"reflect"
)

// Unit is the context type of suppliers that need no owner context.
type Unit struct{}

// UnitType is the type token of Unit.
var UnitType = reflect.TypeOf(Unit{})

// TypeOf returns the type token for T. Interface types are preserved.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AnySupplier is the type-erased view every supplier exposes.
//
// SupplyAny reports presence with its boolean result: (nil, false, nil) means
// the supplier deliberately produced no value, which is not an error.
type AnySupplier interface {
	SuppliedType() reflect.Type
	SupplyAny() (any, bool, error)
}

// Supplier produces an optional value of type T.
type Supplier[T any] interface {
	AnySupplier
	Supply() (T, bool, error)
}

// AnyContextual is the type-erased view of a supplier that needs an owner
// context to produce its value.
type AnyContextual interface {
	AnySupplier
	// ContextType is the declared owner context type. UnitType means no
	// context is required.
	ContextType() reflect.Type
	// AcceptsContext reports whether candidate can be used as owner context.
	AcceptsContext(candidate any) bool
	SupplyAnyWith(owner any, contexts ...any) (any, bool, error)
}

// ContextualSupplier produces an optional T from an owner context of type C
// plus auxiliary contexts.
type ContextualSupplier[T, C any] interface {
	Supplier[T]
	AnyContextual
	SupplyWith(owner C, contexts ...any) (T, bool, error)
}

// Dependent reports the types it needs available to operate.
type Dependent interface {
	Dependencies() []reflect.Type
}

// Composite exposes the suppliers a supplier is built from.
type Composite interface {
	Suppliers() []AnySupplier
}

// Describer renders a human readable description of a supplier.
type Describer interface {
	Describe() string
}

// IsContextual reports whether s needs a non-unit owner context.
func IsContextual(s AnySupplier) bool {
	c, ok := s.(AnyContextual)
	return ok && c.ContextType() != UnitType
}

// IsNil reports whether s is missing: a nil interface or an interface
// holding a nil pointer, map, slice, func or channel.
func IsNil(s AnySupplier) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Describe renders s for diagnostics.
func Describe(s AnySupplier) string {
	if IsNil(s) {
		return "<nil>"
	}
	if d, ok := s.(Describer); ok {
		return d.Describe()
	}
	if c, ok := s.(AnyContextual); ok && c.ContextType() != UnitType {
		return fmt.Sprintf("%T<%s, %s>", s, TypeName(s.SuppliedType()), TypeName(c.ContextType()))
	}
	return fmt.Sprintf("%T<%s>", s, TypeName(s.SuppliedType()))
}

// TypeName renders a type token, "<nil>" for a nil token.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
