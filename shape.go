package dispatch

import (
	"reflect"
	"sync"
)

// shapeCache caches the positional field layout of struct types so nested
// signatures can match structs without re-walking their fields on every call.
type shapeCache struct {
	mu sync.RWMutex

	// Field indices that take part in positional matching, per struct type.
	fields map[reflect.Type][]int
}

// shapes is shared by every dispatcher; it only memoizes immutable type metadata.
var shapes = newShapeCache()

func newShapeCache() *shapeCache {
	return &shapeCache{
		fields: make(map[reflect.Type][]int),
	}
}

// positions returns the indices of typ's fields in declaration order,
// skipping blank "_" padding fields.
func (sc *shapeCache) positions(typ reflect.Type) []int {
	// Fast path: check cache with read lock
	sc.mu.RLock()
	fields, exists := sc.fields[typ]
	sc.mu.RUnlock()

	if exists {
		return fields
	}

	// Slow path: compute and cache with write lock
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Double-check after acquiring write lock
	if fields, exists = sc.fields[typ]; exists {
		return fields
	}

	numFields := typ.NumField()
	fields = make([]int, 0, numFields)
	for i := 0; i < numFields; i++ {
		if typ.Field(i).Name == "_" {
			continue
		}
		fields = append(fields, i)
	}

	sc.fields[typ] = fields
	return fields
}

// clear drops all cached layouts.
func (sc *shapeCache) clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.fields = make(map[reflect.Type][]int)
}
