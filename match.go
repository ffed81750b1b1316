package dispatch

import "reflect"

// Matches reports whether sig structurally matches args.
//
// Lengths must agree. Each position then matches according to its descriptor:
// Any always matches, a type matches when the argument's dynamic type is
// assignable to it, and a nested signature recurses into an array, slice or
// struct of the same length. The first failing position ends the match.
// A nil argument has no dynamic type and matches only Any.
func Matches(sig Signature, args []any) bool {
	if len(sig) != len(args) {
		return false
	}
	for i, expected := range sig {
		if !matchValue(expected, reflect.ValueOf(args[i])) {
			return false
		}
	}
	return true
}

func matchValue(expected Descriptor, actual reflect.Value) bool {
	// Elements of []any and interface-typed fields carry their dynamic value one level down.
	for actual.Kind() == reflect.Interface {
		actual = actual.Elem()
	}

	switch d := expected.(type) {
	case anyDescriptor:
		return true
	case nestedDescriptor:
		return matchNested(d.elems, actual)
	case typeDescriptor:
		return d.t != nil && actual.IsValid() && actual.Type().AssignableTo(d.t)
	default:
		return false
	}
}

func matchNested(sig Signature, actual reflect.Value) bool {
	switch actual.Kind() {
	case reflect.Array, reflect.Slice:
		if actual.Len() != len(sig) {
			return false
		}
		for i, expected := range sig {
			if !matchValue(expected, actual.Index(i)) {
				return false
			}
		}
		return true

	case reflect.Struct:
		fields := shapes.positions(actual.Type())
		if len(fields) != len(sig) {
			return false
		}
		for i, expected := range sig {
			if !matchValue(expected, actual.Field(fields[i])) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
