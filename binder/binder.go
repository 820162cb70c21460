package binder

import (
	"errors"
	"fmt"
	"reflect"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/pkg/meta"
)

// Executable is a binder invoked without an owner context.
type Executable[R any] interface {
	supply.Supplier[R]
	supply.Dependent
	Execute() (R, bool, error)
	ExecutableReference() string
}

// ContextualExecutable is a binder that threads an owner context and
// auxiliary contexts to its suppliers.
type ContextualExecutable[R any] interface {
	supply.ContextualSupplier[R, any]
	supply.Dependent
	ExecuteWith(owner any, contexts ...any) (R, bool, error)
	ExecutableReference() string
}

// Option is a modifier for binders
type Option func(*options)

type options struct {
	resolver  *supply.Resolver
	broadcast bool
}

// WithResolver resolves parameters, owners and values with r instead of the
// default resolver.
func WithResolver(r *supply.Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}

// Broadcast makes a method binder invoke its method on every element when
// the owner is a slice or array. Nothing is returned in that case.
func Broadcast() Option {
	return func(o *options) {
		o.broadcast = true
	}
}

func applyOptions(opts []Option) options {
	o := options{resolver: supply.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// executable holds what every invoking binder shares: the member, one
// supplier per formal parameter and the resolver used to run them.
type executable struct {
	exec     meta.Executable
	params   []supply.AnySupplier
	resolver *supply.Resolver
}

func newExecutable(exec meta.Executable, params []supply.AnySupplier, o options) (executable, error) {
	if exec == nil {
		return executable{}, &supply.ReflectionError{Message: "executable descriptor cannot be nil"}
	}
	if want := len(exec.ParamTypes()); want != len(params) {
		return executable{}, &supply.ReflectionError{
			Message: fmt.Sprintf("%s expects %d parameters, got %d suppliers", exec.Pretty(), want, len(params)),
		}
	}
	for i, p := range params {
		if supply.IsNil(p) {
			return executable{}, &supply.ReflectionError{
				Message: fmt.Sprintf("parameter supplier %d of %s is nil", i, exec.Pretty()),
			}
		}
	}
	return executable{
		exec:     exec,
		params:   append([]supply.AnySupplier(nil), params...),
		resolver: o.resolver,
	}, nil
}

// buildArguments supplies every parameter against contexts.
func (e *executable) buildArguments(contexts ...any) ([]any, error) {
	args := make([]any, len(e.params))
	for i, p := range e.params {
		v, err := e.resolver.Supply(p, contexts...)
		if err != nil {
			return nil, supply.ParameterError(i, err)
		}
		args[i] = v
	}
	return args, nil
}

func (e *executable) invoke(target any, args []any) (any, error) {
	out, err := e.exec.Invoke(target, args)
	if err != nil {
		return nil, invocationError(e.exec.Pretty(), err)
	}
	return out, nil
}

// ExecutableReference describes what the binder invokes.
func (e *executable) ExecutableReference() string {
	return e.exec.Pretty()
}

// Dependencies returns the supplied types of the parameter suppliers.
func (e *executable) Dependencies() []reflect.Type {
	return supply.SuppliedTypes(e.params)
}

func invocationError(target string, err error) error {
	var targetErr *meta.TargetError
	if errors.As(err, &targetErr) {
		return supply.CreateInvocationError(target, targetErr.Err)
	}
	var panicErr *meta.PanicError
	if errors.As(err, &panicErr) {
		return &supply.InvocationError{
			Target:     target,
			Cause:      panicErr,
			Panic:      panicErr.Value,
			StackTrace: panicErr.Stack,
		}
	}
	return &supply.ReflectionError{Message: fmt.Sprintf("cannot invoke %s", target), Cause: err}
}

// mayProduce reports whether a member declared to return result can produce
// a value of type want. Interface results are checked when they are produced.
func mayProduce(result, want reflect.Type) bool {
	if result.AssignableTo(want) {
		return true
	}
	if result.Kind() == reflect.Interface {
		return want.Kind() == reflect.Interface || want.Implements(result)
	}
	return false
}

func typed[R any](v any, describe func(got any) string) (R, bool, error) {
	var zero R
	if v == nil {
		return zero, false, nil
	}
	r, ok := v.(R)
	if !ok {
		return zero, false, &supply.ReflectionError{Message: describe(v)}
	}
	return r, true, nil
}

func contextTypeOf(s supply.AnySupplier) reflect.Type {
	if c, ok := s.(supply.AnyContextual); ok {
		return c.ContextType()
	}
	return supply.UnitType
}

func acceptsContext(s supply.AnySupplier, candidate any) bool {
	if c, ok := s.(supply.AnyContextual); ok && c.ContextType() != supply.UnitType {
		return c.AcceptsContext(candidate)
	}
	return true
}

func anyResult[R any](v R, ok bool, err error) (any, bool, error) {
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}
