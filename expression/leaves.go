package expression

import (
	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/pkg/schema"
)

// Literal is a leaf converting value to T when evaluated. Conversions follow
// pkg/schema: "42" becomes 42 for an int, 1 becomes "1" for a string.
func Literal[T any](value any) *Leaf[T] {
	name := supply.TypeName(supply.TypeOf[T]())
	return NewLeaf(name, func(args ...any) (supply.Supplier[T], error) {
		v, err := schema.Convert[T](args[0])
		if err != nil {
			return nil, err
		}
		return supply.Fixed(v), nil
	}, value)
}

// String is a string literal leaf.
func String(value any) *Leaf[string] { return Literal[string](value) }

// Int is an int literal leaf.
func Int(value any) *Leaf[int] { return Literal[int](value) }

// Float is a float64 literal leaf.
func Float(value any) *Leaf[float64] { return Literal[float64](value) }

// Bool is a bool literal leaf.
func Bool(value any) *Leaf[bool] { return Literal[bool](value) }

// Fixed is a leaf always supplying s.
func Fixed[T any](s supply.Supplier[T]) *Leaf[T] {
	return NewLeaf(supply.Describe(s), func(...any) (supply.Supplier[T], error) {
		return s, nil
	})
}
