// Package supply resolves typed values from suppliers and candidate contexts.
//
// # Overview
//
// Supply organizes code around three concepts:
//
//  1. Suppliers: lazy producers of optional typed values
//  2. Contextual suppliers: suppliers that need an owner context to produce
//  3. Resolvers: pick the owner context among candidates and unwrap nested
//     suppliers
//
// # Basic Usage
//
// Plain suppliers need nothing:
//
//	port := supply.Fixed(8080)
//	v, err := supply.Resolve[int](port)
//
// A contextual supplier declares the type of its owner context:
//
//	user := supply.Contextual(func(s *Session, _ ...any) (string, bool, error) {
//	    return s.User, true, nil
//	})
//
//	name, err := supply.Resolve[string](user, "ignored", &Session{User: "ada"})
//
// # Context Selection
//
// Candidates are scanned in order and the first one the supplier accepts
// becomes the owner context; nil candidates are skipped. Acceptance is a Go
// type assertion, so a supplier declaring an interface accepts every
// candidate implementing it. The full candidate list is handed over as
// auxiliary contexts.
//
// A supplier whose context type is Unit needs no context: it is always
// satisfied, and its Supply method works without any.
//
// # Recursive Resolution
//
// ContextualRecursiveSupply keeps resolving while the produced value is
// itself a supplier, offering the same candidates at every level:
//
//	v, err := supply.ContextualRecursiveSupply(expr, ctx, &Session{})
//
// The number of levels is bounded by the resolver's max depth (64 unless
// configured with WithMaxDepth or pkg/config).
//
// # Composition
//
// Derive1..Derive5 combine suppliers with a function. Derived suppliers pass
// their contexts on to their dependencies:
//
//	greeting := supply.Derive1(user, func(name string) (string, error) {
//	    return "hi " + name, nil
//	})
//
// Cached memoizes a supplier until released. DependencyGraph orders
// suppliers by the types they depend on.
//
// # Extensions
//
// Extensions wrap every resolution:
//
//	r := supply.NewResolver(
//	    supply.WithExtension(extensions.NewLoggingExtension(slog.LevelDebug)),
//	)
//
// See the binder and expression packages for reflective invocation and
// supplier trees.
package supply
