// Package registry provides thread-safe storage for dispatch entries.
//
// Both registries are copy-on-write: writers serialize on a mutex, build a new
// immutable snapshot and publish it atomically, while readers load the current
// snapshot without taking a lock. A reader therefore never observes a
// partially applied write.
package registry

import (
	"sync"
	"sync/atomic"
)

// Ordered is an append-only list that preserves insertion order.
// There is no deletion primitive; entries live as long as the registry.
type Ordered[E any] struct {
	mu   sync.Mutex
	snap atomic.Pointer[[]E]
}

// NewOrdered creates an empty ordered registry.
func NewOrdered[E any]() *Ordered[E] {
	o := &Ordered[E]{}
	empty := make([]E, 0)
	o.snap.Store(&empty)
	return o
}

// Append stores e after every entry committed so far and returns its position.
//
// This method is goroutine-safe.
func (o *Ordered[E]) Append(e E) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	cur := *o.snap.Load()
	next := make([]E, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, e)

	o.snap.Store(&next)
	return len(cur)
}

// Snapshot returns the entries committed so far, in insertion order.
// The returned slice is shared and must be treated as read-only; later
// appends never change it.
//
// This method is goroutine-safe.
func (o *Ordered[E]) Snapshot() []E {
	s := *o.snap.Load()
	return s[:len(s):len(s)]
}

// Entries returns a private copy of the current snapshot.
func (o *Ordered[E]) Entries() []E {
	s := o.Snapshot()
	out := make([]E, len(s))
	copy(out, s)
	return out
}

// Len returns the number of committed entries.
func (o *Ordered[E]) Len() int {
	return len(*o.snap.Load())
}
