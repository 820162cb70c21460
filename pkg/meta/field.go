package meta

import (
	"fmt"
	"reflect"
	"strings"
)

// Field describes a struct field reached from an owner type through a
// dotted path, e.g. "Name" or "Address.City".
type Field struct {
	owner   reflect.Type
	address string
	fields  []reflect.StructField
	typ     reflect.Type
}

var _ FieldAccessor = (*Field)(nil)

// FieldOf resolves address against owner.
func FieldOf(owner reflect.Type, address string) (*Field, error) {
	if owner == nil {
		return nil, fmt.Errorf("meta: nil owner type for field %q", address)
	}
	if address == "" {
		return nil, fmt.Errorf("meta: empty field address")
	}
	fields, typ, err := fieldPath(owner, strings.Split(address, "."))
	if err != nil {
		return nil, err
	}
	return &Field{owner: owner, address: address, fields: fields, typ: typ}, nil
}

func (f *Field) Name() string            { return f.fields[len(f.fields)-1].Name }
func (f *Field) Type() reflect.Type      { return f.typ }
func (f *Field) OwnerType() reflect.Type { return f.owner }
func (f *Field) Pretty() string {
	return TypeName(f.owner) + "." + f.address + " " + TypeName(f.typ)
}

// Get reads the field from owner.
func (f *Field) Get(owner any) (any, error) {
	v, err := f.locate(owner)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Set writes value into the field of owner. owner must be a pointer so the
// field is addressable.
func (f *Field) Set(owner any, value any) error {
	v, err := f.locate(owner)
	if err != nil {
		return err
	}
	if !v.CanSet() {
		return fmt.Errorf("field %s of %T is not settable", f.address, owner)
	}
	cv, err := Convert(value, f.typ)
	if err != nil {
		return fmt.Errorf("field %s: %w", f.address, err)
	}
	v.Set(cv)
	return nil
}

func (f *Field) locate(owner any) (reflect.Value, error) {
	v := reflect.ValueOf(owner)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("nil owner for %s", f.Pretty())
	}
	return walk(v, f.fields)
}

// fieldPath resolves names one field at a time, following pointers.
func fieldPath(owner reflect.Type, names []string) ([]reflect.StructField, reflect.Type, error) {
	fields := make([]reflect.StructField, 0, len(names))
	current := owner
	for _, name := range names {
		base := current
		for base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if base.Kind() != reflect.Struct {
			return nil, nil, fmt.Errorf("meta: %s is not a struct, cannot reach %s", TypeName(current), name)
		}
		sf, ok := base.FieldByName(name)
		if !ok {
			return nil, nil, fmt.Errorf("meta: %s has no field %s", TypeName(base), name)
		}
		if !sf.IsExported() {
			return nil, nil, fmt.Errorf("meta: field %s of %s is unexported", name, TypeName(base))
		}
		fields = append(fields, sf)
		current = sf.Type
	}
	return fields, current, nil
}

// walk follows fields from v, dereferencing pointers on the way.
func walk(v reflect.Value, fields []reflect.StructField) (reflect.Value, error) {
	for _, sf := range fields {
		base, err := Indirect(v, "value before field "+sf.Name)
		if err != nil {
			return reflect.Value{}, err
		}
		if base.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%s is not a struct, cannot reach %s", TypeName(base.Type()), sf.Name)
		}
		if v, err = base.FieldByIndexErr(sf.Index); err != nil {
			return reflect.Value{}, fmt.Errorf("field %s: %w", sf.Name, err)
		}
	}
	return v, nil
}
