// Package schema validates and coerces loosely typed values, such as literal
// strings, into Go types. Conversions go through cty so that "42" becomes an
// int, "true" a bool and []string{"1", "2"} a []int.
package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidationError represents a validation error
type ValidationError struct {
	Message string
	Path    []string
	Cause   error
}

// Error returns the error message
func (e *ValidationError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("%s at path %v", e.Message, e.Path)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Schema defines validation rules
type Schema interface {
	// Validate validates a value against the schema, returning the coerced value
	Validate(value any) (any, error)
}

// TypeSchema coerces values into a single Go type.
type TypeSchema struct {
	target  reflect.Type
	ctyType cty.Type
}

var ctyValueType = reflect.TypeOf(cty.Value{})

// For creates the schema of Go type t. t must be expressible in cty:
// strings, numbers, bools, slices, maps and structs with cty tags.
func For(t reflect.Type) (*TypeSchema, error) {
	if t == nil {
		return nil, errors.New("schema: nil type")
	}
	ct, err := gocty.ImpliedType(reflect.Zero(t).Interface())
	if err != nil {
		return nil, fmt.Errorf("schema: %s has no cty equivalent: %w", t, err)
	}
	return &TypeSchema{target: t, ctyType: ct}, nil
}

// Of creates the schema of T.
func Of[T any]() (*TypeSchema, error) {
	return For(reflect.TypeOf((*T)(nil)).Elem())
}

// Type returns the Go type values are coerced to.
func (s *TypeSchema) Type() reflect.Type { return s.target }

// CtyType returns the cty type used for conversion.
func (s *TypeSchema) CtyType() cty.Type { return s.ctyType }

// Validate coerces value into the schema's Go type.
func (s *TypeSchema) Validate(value any) (any, error) {
	if value == nil {
		return nil, &ValidationError{Message: fmt.Sprintf("cannot convert nil to %s", s.target)}
	}
	if reflect.TypeOf(value) == s.target {
		return value, nil
	}

	in, err := toCty(value)
	if err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("cannot convert '%v' to %s: %v", value, s.target, err),
			Cause:   err,
		}
	}

	out, err := convert.Convert(in, s.ctyType)
	if err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("cannot convert '%v' to %s: %v", value, s.target, err),
			Path:    errorPath(err),
			Cause:   err,
		}
	}
	if out.IsNull() {
		return nil, &ValidationError{Message: fmt.Sprintf("cannot convert '%v' to %s: null value", value, s.target)}
	}

	ptr := reflect.New(s.target)
	if err := gocty.FromCtyValue(out, ptr.Interface()); err != nil {
		return nil, &ValidationError{
			Message: fmt.Sprintf("cannot convert '%v' to %s: %v", value, s.target, err),
			Path:    errorPath(err),
			Cause:   err,
		}
	}
	return ptr.Elem().Interface(), nil
}

// Convert coerces value into T.
func Convert[T any](value any) (T, error) {
	var zero T
	s, err := Of[T]()
	if err != nil {
		return zero, err
	}
	out, err := s.Validate(value)
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

func toCty(value any) (cty.Value, error) {
	if reflect.TypeOf(value) == ctyValueType {
		return value.(cty.Value), nil
	}
	it, err := gocty.ImpliedType(value)
	if err != nil {
		return cty.NilVal, err
	}
	return gocty.ToCtyValue(value, it)
}

func errorPath(err error) []string {
	var pathErr cty.PathError
	if !errors.As(err, &pathErr) {
		return nil
	}
	steps := make([]string, 0, len(pathErr.Path))
	for _, step := range pathErr.Path {
		switch st := step.(type) {
		case cty.GetAttrStep:
			steps = append(steps, st.Name)
		case cty.IndexStep:
			steps = append(steps, indexKey(st.Key))
		}
	}
	return steps
}

func indexKey(key cty.Value) string {
	if !key.IsKnown() || key.IsNull() {
		return "?"
	}
	switch key.Type() {
	case cty.String:
		return key.AsString()
	case cty.Number:
		return key.AsBigFloat().Text('f', -1)
	}
	return key.GoString()
}
