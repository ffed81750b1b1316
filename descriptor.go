package dispatch

import (
	"reflect"
	"strings"
)

// Descriptor describes what a single argument position accepts.
//
// A Descriptor is one of three forms:
//   - a concrete type, built with Type, Of or TypeOf;
//   - the Any wildcard;
//   - a nested signature, built with Nested.
//
// The set is closed: no other implementations exist.
type Descriptor interface {
	String() string
	descriptor()
}

type typeDescriptor struct {
	t reflect.Type
}

type anyDescriptor struct{}

type nestedDescriptor struct {
	elems Signature
}

func (typeDescriptor) descriptor()   {}
func (anyDescriptor) descriptor()    {}
func (nestedDescriptor) descriptor() {}

func (d typeDescriptor) String() string {
	if d.t == nil {
		return "<nil>"
	}
	return d.t.String()
}

func (anyDescriptor) String() string { return "Any" }

func (d nestedDescriptor) String() string { return d.elems.String() }

// Any matches any single value at its position, including nil and nested
// collections of any shape.
var Any Descriptor = anyDescriptor{}

// Type returns a descriptor matching values whose dynamic type is assignable
// to t: t itself, or any type implementing t when t is an interface.
func Type(t reflect.Type) Descriptor {
	return typeDescriptor{t: t}
}

// Of returns the descriptor for the type parameter T.
//
// Example:
//
//	d.Register(dispatch.Of[int](), dispatch.Of[fmt.Stringer]())
func Of[T any]() Descriptor {
	return typeDescriptor{t: reflect.TypeFor[T]()}
}

// TypeOf returns the descriptor for the dynamic type of v.
func TypeOf(v any) Descriptor {
	return typeDescriptor{t: reflect.TypeOf(v)}
}

// Nested returns a descriptor matching an array, slice or struct whose
// elements (or fields, positionally) match elems.
//
// Example:
//
//	// matches (3, []any{"a", "b"})
//	d.Register(dispatch.Of[int](), dispatch.Nested(dispatch.Of[string](), dispatch.Of[string]()))
func Nested(elems ...Descriptor) Descriptor {
	return nestedDescriptor{elems: Signature(elems).clone()}
}

// Signature is an ordered, fixed-length sequence of descriptors.
// Its length is the arity it matches.
type Signature []Descriptor

// String renders the signature as a parenthesised list, e.g. "(int, Any, (string, string))".
func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		if d == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = d.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Validate reports the first malformed element of s: a nil descriptor or a
// type descriptor without a type, at any nesting depth.
func (s Signature) Validate() error {
	return s.validate(nil)
}

func (s Signature) validate(path []int) error {
	for i, d := range s {
		at := append(append([]int(nil), path...), i)
		switch d := d.(type) {
		case nil:
			return &InvalidSignatureError{Signature: s, Path: at, Reason: "descriptor cannot be nil"}
		case typeDescriptor:
			if d.t == nil {
				return &InvalidSignatureError{Signature: s, Path: at, Reason: "type cannot be nil"}
			}
		case nestedDescriptor:
			if err := d.elems.validate(at); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Signature) clone() Signature {
	out := make(Signature, len(s))
	copy(out, s)
	return out
}
