package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// InvalidKeyError is returned when a key contains an unusable element.
type InvalidKeyError struct {
	Position int
	Reason   string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key element at position %d: %s", e.Position, e.Reason)
}

// node is one level of the type trie. A value stored at depth n belongs to a
// key of length n, so keys of different arity never collide.
type node[V any] struct {
	value V
	set   bool
	next  map[reflect.Type]*node[V]
}

func (n *node[V]) clone() *node[V] {
	c := &node[V]{next: make(map[reflect.Type]*node[V])}
	if n == nil {
		return c
	}
	c.value, c.set = n.value, n.set
	for t, child := range n.next {
		c.next[t] = child
	}
	return c
}

type exactSnapshot[V any] struct {
	root *node[V]
	size int
}

// Exact maps a tuple of reflect.Type values to a value.
// It uses a persistent trie keyed on reflect.Type, so a lookup costs one map
// access per key element. Setting an existing key replaces its value.
type Exact[V any] struct {
	mu   sync.Mutex
	snap atomic.Pointer[exactSnapshot[V]]
}

// NewExact creates an empty exact registry.
func NewExact[V any]() *Exact[V] {
	x := &Exact[V]{}
	x.snap.Store(&exactSnapshot[V]{root: (*node[V])(nil).clone()})
	return x
}

// Set stores v under key, replacing any previous value.
// It reports whether an existing value was replaced. Only the nodes on the
// key's path are copied; the previous snapshot stays intact for readers.
//
// This method is goroutine-safe.
func (x *Exact[V]) Set(key []reflect.Type, v V) (replaced bool, err error) {
	for i, t := range key {
		if t == nil {
			return false, &InvalidKeyError{Position: i, Reason: "type cannot be nil"}
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	cur := x.snap.Load()
	root, replaced := insert(cur.root, key, v)
	size := cur.size
	if !replaced {
		size++
	}
	x.snap.Store(&exactSnapshot[V]{root: root, size: size})
	return replaced, nil
}

func insert[V any](n *node[V], key []reflect.Type, v V) (*node[V], bool) {
	c := n.clone()
	if len(key) == 0 {
		replaced := c.set
		c.value, c.set = v, true
		return c, replaced
	}
	var child *node[V]
	if n != nil {
		child = n.next[key[0]]
	}
	updated, replaced := insert(child, key[1:], v)
	c.next[key[0]] = updated
	return c, replaced
}

// Get returns the value stored under exactly key.
//
// This method is goroutine-safe.
func (x *Exact[V]) Get(key ...reflect.Type) (V, bool) {
	n := x.snap.Load().root
	for _, t := range key {
		n = n.next[t]
		if n == nil {
			var zero V
			return zero, false
		}
	}
	return n.value, n.set
}

// Len returns the number of distinct keys.
func (x *Exact[V]) Len() int {
	return x.snap.Load().size
}

// Keys returns all stored keys in deterministic order: shorter keys first,
// then lexicographically by their type names.
func (x *Exact[V]) Keys() [][]reflect.Type {
	var keys [][]reflect.Type
	var walk func(n *node[V], prefix []reflect.Type)
	walk = func(n *node[V], prefix []reflect.Type) {
		if n.set {
			k := make([]reflect.Type, len(prefix))
			copy(k, prefix)
			keys = append(keys, k)
		}
		for t, child := range n.next {
			walk(child, append(prefix, t))
		}
	}
	walk(x.snap.Load().root, nil)

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keyString(keys[i]) < keyString(keys[j])
	})
	return keys
}

func keyString(key []reflect.Type) string {
	names := make([]string, len(key))
	for i, t := range key {
		names[i] = t.PkgPath() + "." + t.String()
	}
	return strings.Join(names, ",")
}
