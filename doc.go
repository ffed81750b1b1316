// Package dispatch provides runtime multiple dispatch for Go.
//
// A dispatcher wraps a default implementation of a function and lets further
// implementations be registered against argument signatures. Each call
// inspects the dynamic types of its arguments and runs the implementation
// that fits, or the default when none does.
//
// # Quick Start
//
// Create a dispatcher around a default handler and register implementations:
//
//	concat := dispatch.New(func(args ...any) (string, error) {
//	    return fmt.Sprint(args...), nil
//	})
//	concat.Register(dispatch.Of[int](), dispatch.Of[int]())(addInts)
//	s, err := concat.Call(1, 3)
//
// # Two Strategies
//
// Dispatcher matches structurally. Entries are tried in registration order
// and the first match wins. Signatures may contain the Any wildcard and
// nested signatures, and a type matches any value assignable to it, so an
// interface type matches every implementation.
//
//	d.Register(dispatch.Of[int](), dispatch.Nested(dispatch.Any, dispatch.Of[string]()))(h)
//	d.Call(3, []any{1.5, "x"}) // runs h
//
// TypeDispatcher looks up the exact dynamic types of the arguments. There is
// no wildcard, no nesting and no assignability; registering the same types
// twice keeps only the second handler.
//
//	t := dispatch.NewTyped(fallback)
//	t.Register(reflect.TypeFor[int](), reflect.TypeFor[int]())(h)
//
// # Stacking
//
// Register returns a function that installs a handler and hands it back, so
// one handler can serve several signatures:
//
//	concat.Register(dispatch.Of[string](), dispatch.Of[int]())(
//	    concat.Register(dispatch.Of[int](), dispatch.Of[string]())(mixed))
//
// # Plain Functions
//
// AddFunc derives the signature from a typed function's parameters:
//
//	distance.AddFunc(func(p, q Point) (float64, error) {
//	    return distance.Call(p.X, p.Y, q.X, q.Y)
//	})
//
// # Error Handling
//
// Finding no match is not an error: the default handler runs. Errors and
// panics from a handler reach the caller unchanged. Malformed signatures are
// rejected at registration, by Add returning *InvalidSignatureError or by
// Register panicking with it.
//
// # Thread Safety
//
// Registration and dispatch may run concurrently. Registries are
// copy-on-write, so every call resolves against one consistent snapshot.
package dispatch
