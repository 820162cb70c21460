package binder

import (
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/pkg/meta"
)

var (
	_ Executable[int]           = (*Constructor[int])(nil)
	_ ContextualExecutable[int] = (*ContextualConstructor[int])(nil)
)

// Constructor builds a T by invoking a constructor descriptor (a function
// such as NewFoo, or a meta.Struct literal) with supplied arguments.
type Constructor[T any] struct {
	executable
	typ reflect.Type
}

// NewConstructor binds ctor to one supplier per formal parameter. ctor must
// produce a value assignable to T.
func NewConstructor[T any](ctor meta.Executable, params []supply.AnySupplier, opts ...Option) (*Constructor[T], error) {
	typ := supply.TypeOf[T]()
	exec, err := newConstructorExecutable(typ, ctor, params, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Constructor[T]{executable: exec, typ: typ}, nil
}

func newConstructorExecutable(typ reflect.Type, ctor meta.Executable, params []supply.AnySupplier, o options) (executable, error) {
	if ctor != nil {
		result := ctor.ResultType()
		if result == nil || !mayProduce(result, typ) {
			return executable{}, &supply.ReflectionError{
				Message: fmt.Sprintf("%s does not produce %s", ctor.Pretty(), meta.TypeName(typ)),
			}
		}
	}
	return newExecutable(ctor, params, o)
}

func (b *Constructor[T]) SuppliedType() reflect.Type { return b.typ }

// Execute builds the arguments and constructs a new T.
func (b *Constructor[T]) Execute() (T, bool, error) {
	return construct[T](&b.executable, b.typ)
}

func (b *Constructor[T]) Supply() (T, bool, error) { return b.Execute() }

func (b *Constructor[T]) SupplyAny() (any, bool, error) { return anyResult(b.Execute()) }

func (b *Constructor[T]) Suppliers() []supply.AnySupplier {
	return append([]supply.AnySupplier(nil), b.params...)
}

func (b *Constructor[T]) Describe() string { return "new " + b.ExecutableReference() }

// ContextualConstructor builds a T with arguments resolved against an owner
// context followed by auxiliary contexts. It needs no owner context itself.
type ContextualConstructor[T any] struct {
	executable
	typ reflect.Type
}

// NewContextualConstructor binds ctor like NewConstructor, resolving
// parameters contextually.
func NewContextualConstructor[T any](ctor meta.Executable, params []supply.AnySupplier, opts ...Option) (*ContextualConstructor[T], error) {
	typ := supply.TypeOf[T]()
	exec, err := newConstructorExecutable(typ, ctor, params, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &ContextualConstructor[T]{executable: exec, typ: typ}, nil
}

func (b *ContextualConstructor[T]) SuppliedType() reflect.Type { return b.typ }

func (b *ContextualConstructor[T]) ContextType() reflect.Type { return supply.UnitType }

func (b *ContextualConstructor[T]) AcceptsContext(candidate any) bool { return true }

// ExecuteWith constructs a new T, resolving parameters against owner and
// contexts.
func (b *ContextualConstructor[T]) ExecuteWith(owner any, contexts ...any) (T, bool, error) {
	return construct[T](&b.executable, b.typ, supply.MergeContexts(owner, contexts)...)
}

func (b *ContextualConstructor[T]) SupplyWith(owner any, contexts ...any) (T, bool, error) {
	return b.ExecuteWith(owner, contexts...)
}

func (b *ContextualConstructor[T]) SupplyAnyWith(owner any, contexts ...any) (any, bool, error) {
	return anyResult(b.ExecuteWith(owner, contexts...))
}

func (b *ContextualConstructor[T]) Supply() (T, bool, error) {
	return b.ExecuteWith(supply.Unit{})
}

func (b *ContextualConstructor[T]) SupplyAny() (any, bool, error) { return anyResult(b.Supply()) }

func (b *ContextualConstructor[T]) Suppliers() []supply.AnySupplier {
	return append([]supply.AnySupplier(nil), b.params...)
}

func (b *ContextualConstructor[T]) Describe() string { return "new " + b.ExecutableReference() }

func construct[T any](e *executable, typ reflect.Type, contexts ...any) (T, bool, error) {
	var zero T
	args, err := e.buildArguments(contexts...)
	if err != nil {
		return zero, false, err
	}

	out, err := e.invoke(nil, args)
	if err != nil {
		return zero, false, &supply.ReflectionError{
			Message: fmt.Sprintf("error creating instance of type %s", meta.TypeName(typ)),
			Cause:   err,
		}
	}

	return typed[T](out, func(got any) string {
		return fmt.Sprintf("constructor %s returned type %T but expected %s", e.exec.Pretty(), got, meta.TypeName(typ))
	})
}

// InstanceSupplier supplies a new instance on every call by running a
// contextual constructor. It needs no owner context and hands the contexts
// it receives to the constructor's parameters.
type InstanceSupplier[T any] struct {
	ctor *ContextualConstructor[T]
}

// NewInstance wraps ctor.
func NewInstance[T any](ctor *ContextualConstructor[T]) *InstanceSupplier[T] {
	return &InstanceSupplier[T]{ctor: ctor}
}

func (s *InstanceSupplier[T]) SuppliedType() reflect.Type { return s.ctor.SuppliedType() }

func (s *InstanceSupplier[T]) ContextType() reflect.Type { return supply.UnitType }

func (s *InstanceSupplier[T]) AcceptsContext(candidate any) bool { return true }

func (s *InstanceSupplier[T]) SupplyWith(_ supply.Unit, contexts ...any) (T, bool, error) {
	return s.ctor.ExecuteWith(supply.Unit{}, contexts...)
}

func (s *InstanceSupplier[T]) SupplyAnyWith(_ any, contexts ...any) (any, bool, error) {
	return anyResult(s.SupplyWith(supply.Unit{}, contexts...))
}

func (s *InstanceSupplier[T]) Supply() (T, bool, error) { return s.SupplyWith(supply.Unit{}) }

func (s *InstanceSupplier[T]) SupplyAny() (any, bool, error) { return anyResult(s.Supply()) }

func (s *InstanceSupplier[T]) Dependencies() []reflect.Type { return s.ctor.Dependencies() }

func (s *InstanceSupplier[T]) Suppliers() []supply.AnySupplier {
	return []supply.AnySupplier{s.ctor}
}
