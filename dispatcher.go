package dispatch

import (
	"log/slog"

	"github.com/toutaio/toutago-dispatch/registry"
)

// Handler is an implementation selected by a dispatcher.
// It receives the call's arguments unchanged and its result and error are
// returned to the caller unchanged.
type Handler[R any] func(args ...any) (R, error)

type entry[R any] struct {
	sig     Signature
	handler Handler[R]
}

// Dispatcher selects an implementation by structural pattern matching.
//
// Entries are tried in registration order and the first whose signature
// matches the arguments wins; if none match, the default handler runs.
// Registering the same signature twice keeps both entries, so the later one
// is shadowed by the earlier.
//
// A Dispatcher is safe for concurrent use. Registration may run while calls
// are in flight; each call resolves against one consistent snapshot.
type Dispatcher[R any] struct {
	name     string
	logger   *slog.Logger
	fallback Handler[R]
	entries  *registry.Ordered[entry[R]]
}

// New creates a pattern-matching dispatcher around a default handler.
// It panics if fallback is nil or an option fails.
//
// Example:
//
//	concat := dispatch.New(func(args ...any) (string, error) {
//	    return fmt.Sprint(args...), nil
//	})
//	concat.Register(dispatch.Of[int](), dispatch.Of[int]())(sumInts)
//	s, err := concat.Call(1, 3)
func New[R any](fallback Handler[R], opts ...Option) *Dispatcher[R] {
	if fallback == nil {
		panic("dispatch: default handler cannot be nil")
	}
	o := newOptions(opts)

	return &Dispatcher[R]{
		name:     o.name,
		logger:   o.logger,
		fallback: fallback,
		entries:  registry.NewOrdered[entry[R]](),
	}
}

// Add appends a handler for sig after every existing entry.
//
// Returns an error if:
//   - The handler is nil
//   - The signature contains a nil descriptor or a nil type
func (d *Dispatcher[R]) Add(sig Signature, h Handler[R]) error {
	if h == nil {
		return &InvalidHandlerError{Reason: "handler cannot be nil"}
	}
	if err := sig.Validate(); err != nil {
		return err
	}

	sig = sig.clone()
	pos := d.entries.Append(entry[R]{sig: sig, handler: h})

	d.logger.Debug("dispatch: handler registered",
		slog.String("dispatcher", d.name),
		slog.String("signature", sig.String()),
		slog.Int("position", pos),
	)
	return nil
}

// Register returns a function that appends its handler under sig and returns
// the handler unchanged, so one handler can be registered several times:
//
//	stacked := concat.Register(dispatch.Of[string](), dispatch.Of[int]())(
//	    concat.Register(dispatch.Of[int](), dispatch.Of[string]())(handler))
//
// A malformed signature panics as soon as Register is called, and a nil
// handler panics when applied. Use Add to receive errors instead.
func (d *Dispatcher[R]) Register(sig ...Descriptor) func(Handler[R]) Handler[R] {
	s := Signature(sig).clone()
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return func(h Handler[R]) Handler[R] {
		if err := d.Add(s, h); err != nil {
			panic(err)
		}
		return h
	}
}

// AddFunc registers an ordinary Go function under the signature formed by its
// parameter types. See Func for the supported function shapes.
//
// Example:
//
//	_ = d.AddFunc(func(a int, b string) (string, error) { ... })
func (d *Dispatcher[R]) AddFunc(fn any) error {
	sig, h, err := Func[R](fn)
	if err != nil {
		return err
	}
	return d.Add(sig, h)
}

// Resolve returns the handler of the first entry matching args. When nothing
// matches it returns the default handler and false.
func (d *Dispatcher[R]) Resolve(args ...any) (Handler[R], bool) {
	for _, e := range d.entries.Snapshot() {
		if Matches(e.sig, args) {
			return e.handler, true
		}
	}
	return d.fallback, false
}

// Call resolves a handler for args and invokes it with the same args.
// Errors and panics raised by the handler reach the caller untouched.
func (d *Dispatcher[R]) Call(args ...any) (R, error) {
	h, _ := d.Resolve(args...)
	return h(args...)
}

// Func returns the dispatcher as a plain function value, so it can be
// passed around, or called from its own handlers, like any single function.
func (d *Dispatcher[R]) Func() Handler[R] {
	return d.Call
}

// Default returns the default handler.
func (d *Dispatcher[R]) Default() Handler[R] {
	return d.fallback
}

// Name returns the name set with WithName.
func (d *Dispatcher[R]) Name() string {
	return d.name
}

// Len returns the number of registered entries.
func (d *Dispatcher[R]) Len() int {
	return d.entries.Len()
}

// Signatures returns the registered signatures in resolution order,
// duplicates included.
func (d *Dispatcher[R]) Signatures() []Signature {
	snapshot := d.entries.Snapshot()
	sigs := make([]Signature, len(snapshot))
	for i, e := range snapshot {
		sigs[i] = e.sig.clone()
	}
	return sigs
}
