package supply

import (
	"reflect"
)

// FixedSupplier always supplies the value it was built with.
type FixedSupplier[T any] struct {
	value T
	typ   reflect.Type
}

// Fixed creates a supplier of value.
func Fixed[T any](value T) *FixedSupplier[T] {
	return &FixedSupplier[T]{value: value, typ: TypeOf[T]()}
}

func (s *FixedSupplier[T]) SuppliedType() reflect.Type { return s.typ }

func (s *FixedSupplier[T]) Supply() (T, bool, error) { return s.value, true, nil }

func (s *FixedSupplier[T]) SupplyAny() (any, bool, error) { return s.value, true, nil }

// EmptySupplier never has a value.
type EmptySupplier[T any] struct {
	typ reflect.Type
}

// Empty creates a supplier that deliberately supplies nothing.
func Empty[T any]() *EmptySupplier[T] {
	return &EmptySupplier[T]{typ: TypeOf[T]()}
}

func (s *EmptySupplier[T]) SuppliedType() reflect.Type { return s.typ }

func (s *EmptySupplier[T]) Supply() (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *EmptySupplier[T]) SupplyAny() (any, bool, error) { return nil, false, nil }

// FuncSupplier calls a function on every Supply.
type FuncSupplier[T any] struct {
	fn  func() (T, bool, error)
	typ reflect.Type
}

// Func creates a supplier backed by fn. Every call to Supply calls fn again.
func Func[T any](fn func() (T, error)) *FuncSupplier[T] {
	return Optional(func() (T, bool, error) {
		v, err := fn()
		if err != nil {
			return v, false, err
		}
		return v, true, nil
	})
}

// Optional creates a supplier backed by fn, which reports presence itself.
func Optional[T any](fn func() (T, bool, error)) *FuncSupplier[T] {
	return &FuncSupplier[T]{fn: fn, typ: TypeOf[T]()}
}

func (s *FuncSupplier[T]) SuppliedType() reflect.Type { return s.typ }

func (s *FuncSupplier[T]) Supply() (T, bool, error) { return s.fn() }

func (s *FuncSupplier[T]) SupplyAny() (any, bool, error) {
	v, ok, err := s.fn()
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}

// ContextualFunc is a contextual supplier backed by a function of the owner
// context.
type ContextualFunc[T, C any] struct {
	fn      func(owner C, contexts ...any) (T, bool, error)
	typ     reflect.Type
	ctxType reflect.Type
}

// Contextual creates a supplier that needs an owner context of type C. With C
// set to Unit the supplier can be called without any context.
func Contextual[T, C any](fn func(owner C, contexts ...any) (T, bool, error)) *ContextualFunc[T, C] {
	return &ContextualFunc[T, C]{fn: fn, typ: TypeOf[T](), ctxType: TypeOf[C]()}
}

func (s *ContextualFunc[T, C]) SuppliedType() reflect.Type { return s.typ }

func (s *ContextualFunc[T, C]) ContextType() reflect.Type { return s.ctxType }

func (s *ContextualFunc[T, C]) AcceptsContext(candidate any) bool {
	_, ok := candidate.(C)
	return ok
}

func (s *ContextualFunc[T, C]) SupplyWith(owner C, contexts ...any) (T, bool, error) {
	return s.fn(owner, contexts...)
}

func (s *ContextualFunc[T, C]) SupplyAnyWith(owner any, contexts ...any) (any, bool, error) {
	var typed C
	if s.ctxType != UnitType {
		var ok bool
		if typed, ok = owner.(C); !ok {
			return nil, false, ContextMismatch(s.ctxType, owner)
		}
	}
	v, ok, err := s.fn(typed, contexts...)
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}

func (s *ContextualFunc[T, C]) Supply() (T, bool, error) {
	if s.ctxType != UnitType {
		var zero T
		return zero, false, ContextRequired(s.ctxType)
	}
	var unit C
	return s.fn(unit)
}

func (s *ContextualFunc[T, C]) SupplyAny() (any, bool, error) {
	v, ok, err := s.Supply()
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}
