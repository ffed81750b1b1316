package dispatch

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// funcInfo holds metadata about a function adapted into a Handler.
type funcInfo struct {
	fn           reflect.Value
	params       []reflect.Type
	returnsError bool
}

// parseFunc analyzes fn and checks that it can back a Handler returning result.
func parseFunc(fn any, result reflect.Type) (*funcInfo, error) {
	if fn == nil {
		return nil, fmt.Errorf("function cannot be nil")
	}

	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %v", fnType.Kind())
	}
	if fnValue.IsNil() {
		return nil, fmt.Errorf("function cannot be nil")
	}
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("variadic functions are not supported")
	}

	// Validate return values
	numOut := fnType.NumOut()
	if numOut == 0 || numOut > 2 {
		return nil, fmt.Errorf("function must return (R) or (R, error), got %d return values", numOut)
	}
	if !fnType.Out(0).AssignableTo(result) {
		return nil, fmt.Errorf("function returns %v, not assignable to %v", fnType.Out(0), result)
	}

	returnsError := false
	if numOut == 2 {
		if fnType.Out(1) != errorType {
			return nil, fmt.Errorf("function's second return value must be error, got %v", fnType.Out(1))
		}
		returnsError = true
	}

	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	return &funcInfo{
		fn:           fnValue,
		params:       params,
		returnsError: returnsError,
	}, nil
}

// Func adapts an ordinary Go function into a Handler and derives its flat
// signature from the parameter types.
//
// Supported shapes:
//   - func(A, B, ...) R
//   - func(A, B, ...) (R, error)
//
// where the first result is assignable to R. Variadic functions are rejected.
// The returned handler checks its arguments before calling fn and reports
// unsuitable ones with *ArgumentError rather than panicking.
//
// Example:
//
//	sig, h, err := dispatch.Func[float64](func(p, q Point) float64 { ... })
//	// sig is (Point, Point)
func Func[R any](fn any) (Signature, Handler[R], error) {
	info, err := parseFunc(fn, reflect.TypeFor[R]())
	if err != nil {
		return nil, nil, &InvalidHandlerError{Reason: "invalid function", Cause: err}
	}
	return typeSignature(info.params), adaptFunc[R](info), nil
}

// adaptFunc wraps the analyzed function as a Handler.
func adaptFunc[R any](info *funcInfo) Handler[R] {
	return func(args ...any) (R, error) {
		var result R

		if len(args) != len(info.params) {
			return result, &ArgumentError{Index: -1, Expected: len(info.params), Received: len(args)}
		}

		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			want := info.params[i]
			if arg == nil {
				if !nillable(want) {
					return result, &ArgumentError{Index: i, Want: want}
				}
				in[i] = reflect.Zero(want)
				continue
			}
			v := reflect.ValueOf(arg)
			if !v.Type().AssignableTo(want) {
				return result, &ArgumentError{Index: i, Want: want, Got: v.Type()}
			}
			in[i] = v
		}

		out := info.fn.Call(in)

		reflect.ValueOf(&result).Elem().Set(out[0])
		if info.returnsError {
			if errValue := out[1]; !errValue.IsNil() {
				return result, errValue.Interface().(error)
			}
		}
		return result, nil
	}
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
