// Package binder performs bound invocations: constructing values, calling
// methods and reading or writing fields, with every argument, owner and
// value produced by a supplier.
//
// A binder resolves its parameter suppliers through the resolution
// algorithm of package supply, then invokes a member described by package
// meta. Plain binders resolve parameters without contexts; contextual
// binders thread an owner context plus auxiliary contexts to each
// parameter, so contextual parameters find their owner among them.
//
// Binders are suppliers themselves, so they nest: a method binder may take
// another binder as a parameter or as its owner.
//
//	greeter := supply.Fixed(&Greeter{Prefix: "Hello"})
//	greet, err := binder.NewMethod[string](greeter, "Greet",
//	    []supply.AnySupplier{supply.Fixed("world")})
//	msg, ok, err := greet.Execute() // "Hello world", true, nil
//
// Failures to produce an argument are reported as *supply.SupplyError with
// the message "Error on parameter N"; failures of the invoked member are
// *supply.ReflectionError or *supply.InvocationError.
package binder
