// Package meta describes invocable members (functions, methods, struct
// literals) and struct fields through reflection, for use by binders.
package meta

import (
	"errors"
	"fmt"
	"math"
	"path"
	"reflect"
	"runtime/debug"
	"strings"
	"sync"
)

// Executable describes something that can be invoked with positional
// arguments.
type Executable interface {
	// Name returns the short name of the member
	Name() string
	// ParamTypes returns the formal parameter types in order
	ParamTypes() []reflect.Type
	// ResultType returns the produced type, nil when nothing is produced
	ResultType() reflect.Type
	// Pretty renders the member for diagnostics
	Pretty() string
	// Invoke calls the member on target (ignored by functions) with args
	Invoke(target any, args []any) (any, error)
}

// FieldAccessor describes a readable and writable struct field.
type FieldAccessor interface {
	Name() string
	Type() reflect.Type
	OwnerType() reflect.Type
	Pretty() string
	Get(owner any) (any, error)
	Set(owner any, value any) error
}

// TargetError wraps an error returned by an invoked member.
type TargetError struct {
	Err error
}

func (e *TargetError) Error() string { return e.Err.Error() }

func (e *TargetError) Unwrap() error { return e.Err }

// PanicError reports a panic raised by an invoked member.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// signature is the supported shape of an invocable: any parameters, and
// either nothing, a value, an error, or a value and an error as results.
type signature struct {
	params     []reflect.Type
	result     reflect.Type
	returnsErr bool
}

func newSignature(fnType reflect.Type, skip int) (signature, error) {
	if fnType.IsVariadic() {
		return signature{}, errors.New("variadic members are not supported")
	}

	sig := signature{params: make([]reflect.Type, 0, fnType.NumIn()-skip)}
	for i := skip; i < fnType.NumIn(); i++ {
		sig.params = append(sig.params, fnType.In(i))
	}

	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) == errorType {
			sig.returnsErr = true
		} else {
			sig.result = fnType.Out(0)
		}
	case 2:
		if fnType.Out(1) != errorType {
			return signature{}, fmt.Errorf("second result must be error, got %s", fnType.Out(1))
		}
		sig.result = fnType.Out(0)
		sig.returnsErr = true
	default:
		return signature{}, fmt.Errorf("unsupported result count %d", fnType.NumOut())
	}
	return sig, nil
}

func (s signature) pretty(name string) string {
	params := make([]string, len(s.params))
	for i, p := range s.params {
		params[i] = TypeName(p)
	}
	out := name + "(" + strings.Join(params, ", ") + ")"
	switch {
	case s.result != nil && s.returnsErr:
		out += " (" + TypeName(s.result) + ", error)"
	case s.result != nil:
		out += " " + TypeName(s.result)
	case s.returnsErr:
		out += " error"
	}
	return out
}

func (s signature) arguments(args []any) ([]reflect.Value, error) {
	if len(args) != len(s.params) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(s.params), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := Convert(arg, s.params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

func (s signature) call(fn reflect.Value, in []reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	out := fn.Call(in)
	if s.returnsErr {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return nil, &TargetError{Err: errVal.Interface().(error)}
		}
	}
	if s.result == nil {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// Convert adapts value to t: assignable values pass through, nil becomes the
// zero value of nilable types and numbers convert between numeric kinds when
// no precision, range or sign is lost.
func Convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		if c, ok := convertNumber(v, t); ok {
			return c, nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use %s %v as %s", v.Type(), value, t)
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

// convertNumber converts v to t and accepts the result only if it keeps the
// sign of v and converts back to v unchanged.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	c := v.Convert(t)
	if isNaN(v) {
		return c, isNaN(c)
	}
	if negative(v) != negative(c) {
		return reflect.Value{}, false
	}
	if c.Convert(v.Type()).Interface() != v.Interface() {
		return reflect.Value{}, false
	}
	return c, true
}

func negative(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() < 0
	case reflect.Float32, reflect.Float64:
		return v.Float() < 0
	}
	return false
}

func isNaN(v reflect.Value) bool {
	k := v.Kind()
	return (k == reflect.Float32 || k == reflect.Float64) && math.IsNaN(v.Float())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Indirect follows pointers from v until a non-pointer value, failing on nil.
func Indirect(v reflect.Value, what string) (reflect.Value, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil %s", what)
		}
		v = v.Elem()
	}
	return v, nil
}

var typeNameCache sync.Map // key: reflect.Type, val: string

// TypeName renders t as "pkg.Name" with pointer, slice and array markers and
// without type arguments. Unnamed types render as reflect does.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	var name string
	switch {
	case t.Kind() == reflect.Pointer:
		name = "*" + TypeName(t.Elem())
	case t.Kind() == reflect.Slice:
		name = "[]" + TypeName(t.Elem())
	case t.Kind() == reflect.Array:
		name = fmt.Sprintf("[%d]%s", t.Len(), TypeName(t.Elem()))
	case t.Name() != "" && t.PkgPath() != "":
		name = path.Base(t.PkgPath()) + "." + stripTypeParams(t.Name())
	default:
		name = t.String()
	}

	typeNameCache.Store(t, name)
	return name
}

func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
