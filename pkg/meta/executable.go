package meta

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

// Func describes a plain function, typically a constructor such as NewFoo.
type Func struct {
	name string
	fn   reflect.Value
	sig  signature
}

var _ Executable = (*Func)(nil)

// FuncOf describes fn. Its name is taken from the runtime symbol table.
func FuncOf(fn any) (*Func, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("meta: %T is not a function", fn)
	}
	name := "func"
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		name = path.Base(rf.Name())
	}
	return NamedFunc(name, fn)
}

// NamedFunc describes fn under an explicit name.
func NamedFunc(name string, fn any) (*Func, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("meta: %T is not a function", fn)
	}
	sig, err := newSignature(v.Type(), 0)
	if err != nil {
		return nil, fmt.Errorf("meta: %s: %w", name, err)
	}
	return &Func{name: name, fn: v, sig: sig}, nil
}

func (f *Func) Name() string               { return f.name }
func (f *Func) ParamTypes() []reflect.Type { return append([]reflect.Type(nil), f.sig.params...) }
func (f *Func) ResultType() reflect.Type   { return f.sig.result }
func (f *Func) Pretty() string             { return f.sig.pretty(f.name) }

// Invoke calls the function. target is ignored.
func (f *Func) Invoke(_ any, args []any) (any, error) {
	in, err := f.sig.arguments(args)
	if err != nil {
		return nil, err
	}
	return f.sig.call(f.fn, in)
}

// Method describes a method reached from an owner type through an optional
// dotted field path, e.g. "Greet" or "Inner.Greet".
type Method struct {
	owner   reflect.Type
	address string
	fields  []reflect.StructField
	name    string
	sig     signature
}

var _ Executable = (*Method)(nil)

// MethodOf resolves address against owner.
func MethodOf(owner reflect.Type, address string) (*Method, error) {
	if owner == nil {
		return nil, fmt.Errorf("meta: nil owner type for method %q", address)
	}
	parts := strings.Split(address, ".")
	name := parts[len(parts)-1]
	if name == "" {
		return nil, fmt.Errorf("meta: empty method name in %q", address)
	}

	fields, holder, err := fieldPath(owner, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}

	m, ok := holder.MethodByName(name)
	if !ok {
		if holder.Kind() != reflect.Pointer && holder.Kind() != reflect.Interface {
			if _, onPtr := reflect.PointerTo(holder).MethodByName(name); onPtr {
				return nil, fmt.Errorf("meta: method %s of %s has a pointer receiver", name, TypeName(holder))
			}
		}
		return nil, fmt.Errorf("meta: %s has no method %s", TypeName(holder), name)
	}

	skip := 1
	if holder.Kind() == reflect.Interface {
		skip = 0
	}
	sig, err := newSignature(m.Type, skip)
	if err != nil {
		return nil, fmt.Errorf("meta: %s.%s: %w", TypeName(holder), name, err)
	}

	return &Method{owner: owner, address: address, fields: fields, name: name, sig: sig}, nil
}

func (m *Method) Name() string               { return m.name }
func (m *Method) OwnerType() reflect.Type    { return m.owner }
func (m *Method) ParamTypes() []reflect.Type { return append([]reflect.Type(nil), m.sig.params...) }
func (m *Method) ResultType() reflect.Type   { return m.sig.result }
func (m *Method) Pretty() string             { return m.sig.pretty(TypeName(m.owner) + "." + m.address) }

// Invoke calls the method on target.
func (m *Method) Invoke(target any, args []any) (any, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() {
		return nil, fmt.Errorf("nil owner for %s", m.Pretty())
	}

	v, err := walk(v, m.fields)
	if err != nil {
		return nil, err
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, fmt.Errorf("nil receiver for %s", m.Pretty())
	}

	fn := v.MethodByName(m.name)
	if !fn.IsValid() && v.CanAddr() {
		fn = v.Addr().MethodByName(m.name)
	}
	if !fn.IsValid() {
		return nil, fmt.Errorf("%s has no method %s", TypeName(v.Type()), m.name)
	}

	in, err := m.sig.arguments(args)
	if err != nil {
		return nil, err
	}
	return m.sig.call(fn, in)
}

// Struct describes a struct literal built from positional field values. It
// is the constructor of types that have no constructor function.
type Struct struct {
	typ    reflect.Type
	base   reflect.Type
	fields []reflect.StructField
}

var _ Executable = (*Struct)(nil)

// StructOf describes a literal of t (a struct or pointer to struct) whose
// named fields are set from the arguments in order.
func StructOf(t reflect.Type, fields ...string) (*Struct, error) {
	if t == nil {
		return nil, fmt.Errorf("meta: nil struct type")
	}
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return nil, fmt.Errorf("meta: %s is not a struct", TypeName(t))
	}

	s := &Struct{typ: t, base: base, fields: make([]reflect.StructField, 0, len(fields))}
	for _, name := range fields {
		sf, ok := base.FieldByName(name)
		if !ok {
			return nil, fmt.Errorf("meta: %s has no field %s", TypeName(base), name)
		}
		if !sf.IsExported() {
			return nil, fmt.Errorf("meta: field %s of %s is unexported", name, TypeName(base))
		}
		s.fields = append(s.fields, sf)
	}
	return s, nil
}

func (s *Struct) Name() string { return TypeName(s.typ) }

func (s *Struct) ParamTypes() []reflect.Type {
	types := make([]reflect.Type, len(s.fields))
	for i, f := range s.fields {
		types[i] = f.Type
	}
	return types
}

func (s *Struct) ResultType() reflect.Type { return s.typ }

func (s *Struct) Pretty() string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return TypeName(s.typ) + "{" + strings.Join(names, ", ") + "}"
}

// Invoke builds the literal. target is ignored.
func (s *Struct) Invoke(_ any, args []any) (any, error) {
	if len(args) != len(s.fields) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(s.fields), len(args))
	}
	ptr := reflect.New(s.base)
	for i, f := range s.fields {
		v, err := Convert(args[i], f.Type)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		target, err := ptr.Elem().FieldByIndexErr(f.Index)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		target.Set(v)
	}
	if s.typ.Kind() == reflect.Pointer {
		return ptr.Interface(), nil
	}
	return ptr.Elem().Interface(), nil
}
