package dispatch

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/toutaio/toutago-dispatch/registry"
)

// TypeDispatcher selects an implementation by the exact dynamic types of the
// arguments. Lookup costs one map access per argument.
//
// Unlike Dispatcher there are no wildcards, no nesting and no assignability:
// a handler registered for an interface type never runs, because a dynamic
// type is always concrete, and a handler registered for int does not accept
// a value of a named type defined as int. Registering the same types again
// replaces the previous handler.
//
// A TypeDispatcher is safe for concurrent use.
type TypeDispatcher[R any] struct {
	name     string
	logger   *slog.Logger
	fallback Handler[R]
	entries  *registry.Exact[Handler[R]]
}

// NewTyped creates an exact-type dispatcher around a default handler.
// It panics if fallback is nil or an option fails.
func NewTyped[R any](fallback Handler[R], opts ...Option) *TypeDispatcher[R] {
	if fallback == nil {
		panic("dispatch: default handler cannot be nil")
	}
	o := newOptions(opts)

	return &TypeDispatcher[R]{
		name:     o.name,
		logger:   o.logger,
		fallback: fallback,
		entries:  registry.NewExact[Handler[R]](),
	}
}

// Add installs h for exactly types, replacing any handler already installed
// for the same types.
func (d *TypeDispatcher[R]) Add(types []reflect.Type, h Handler[R]) error {
	if h == nil {
		return &InvalidHandlerError{Reason: "handler cannot be nil"}
	}

	replaced, err := d.entries.Set(types, h)
	if err != nil {
		var keyErr *registry.InvalidKeyError
		if errors.As(err, &keyErr) {
			return &InvalidSignatureError{
				Signature: typeSignature(types),
				Path:      []int{keyErr.Position},
				Reason:    keyErr.Reason,
			}
		}
		return err
	}

	d.logger.Debug("dispatch: handler registered",
		slog.String("dispatcher", d.name),
		slog.String("signature", typeSignature(types).String()),
		slog.Bool("replaced", replaced),
	)
	return nil
}

// Register returns a function that installs its handler for types and
// returns the handler unchanged, so registrations can be stacked.
// A nil type panics as soon as Register is called.
//
// Example:
//
//	d.Register(reflect.TypeFor[int](), reflect.TypeFor[string]())(handler)
func (d *TypeDispatcher[R]) Register(types ...reflect.Type) func(Handler[R]) Handler[R] {
	key := make([]reflect.Type, len(types))
	copy(key, types)
	for i, t := range key {
		if t == nil {
			panic(&InvalidSignatureError{Signature: typeSignature(key), Path: []int{i}, Reason: "type cannot be nil"})
		}
	}
	return func(h Handler[R]) Handler[R] {
		if err := d.Add(key, h); err != nil {
			panic(err)
		}
		return h
	}
}

// AddFunc registers an ordinary Go function under its exact parameter types.
// See Func for the supported function shapes.
func (d *TypeDispatcher[R]) AddFunc(fn any) error {
	info, err := parseFunc(fn, reflect.TypeFor[R]())
	if err != nil {
		return &InvalidHandlerError{Reason: "invalid function", Cause: err}
	}
	return d.Add(info.params, adaptFunc[R](info))
}

// Resolve returns the handler installed for the dynamic types of args.
// When none is installed, or an argument is nil, it returns the default
// handler and false.
func (d *TypeDispatcher[R]) Resolve(args ...any) (Handler[R], bool) {
	key := make([]reflect.Type, len(args))
	for i, a := range args {
		key[i] = reflect.TypeOf(a)
		if key[i] == nil {
			return d.fallback, false
		}
	}
	if h, ok := d.entries.Get(key...); ok {
		return h, true
	}
	return d.fallback, false
}

// Call resolves a handler for args and invokes it with the same args.
// Errors and panics raised by the handler reach the caller untouched.
func (d *TypeDispatcher[R]) Call(args ...any) (R, error) {
	h, _ := d.Resolve(args...)
	return h(args...)
}

// Func returns the dispatcher as a plain function value.
func (d *TypeDispatcher[R]) Func() Handler[R] {
	return d.Call
}

// Default returns the default handler.
func (d *TypeDispatcher[R]) Default() Handler[R] {
	return d.fallback
}

// Name returns the name set with WithName.
func (d *TypeDispatcher[R]) Name() string {
	return d.name
}

// Len returns the number of distinct registered type tuples.
func (d *TypeDispatcher[R]) Len() int {
	return d.entries.Len()
}

// Keys returns the registered type tuples in deterministic order.
func (d *TypeDispatcher[R]) Keys() [][]reflect.Type {
	return d.entries.Keys()
}

func typeSignature(types []reflect.Type) Signature {
	sig := make(Signature, len(types))
	for i, t := range types {
		sig[i] = Type(t)
	}
	return sig
}
