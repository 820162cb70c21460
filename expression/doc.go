// Package expression composes suppliers into trees.
//
// A tree is made of leaves, plain nodes and contextual nodes. Evaluating a
// tree walks it depth-first, post-order: every node builds its supplier from
// the suppliers its children produced, never from their values. Values are
// pulled later, when the resulting supplier is resolved.
//
// A contextual node also receives the evaluation Context at build time, so
// its shape may depend on it. Plain nodes pass the Context down to their
// children but never forward contexts to the suppliers they build: a plain
// link in a chain of contextual suppliers stops context propagation.
//
//	hello := expression.String("Hello")
//	greet := expression.NewNode("greet", func(children ...supply.AnySupplier) (supply.Supplier[string], error) {
//		return supply.Derive1(children[0].(supply.Supplier[string]), func(s string) (string, error) {
//			return s + " world", nil
//		}), nil
//	}, hello)
//
//	s, err := expression.New[string](greet).Evaluate()
package expression
