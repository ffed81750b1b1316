package dispatch

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InvalidSignatureError is returned when a signature cannot be registered.
// Path locates the offending descriptor; nested positions are joined with dots.
type InvalidSignatureError struct {
	Signature Signature
	Path      []int
	Reason    string
}

func (e *InvalidSignatureError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("invalid signature %v: %s", e.Signature, e.Reason)
	}
	path := make([]string, len(e.Path))
	for i, p := range e.Path {
		path[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("invalid signature %v at position %s: %s", e.Signature, strings.Join(path, "."), e.Reason)
}

// InvalidHandlerError is returned when a handler or function cannot be registered.
type InvalidHandlerError struct {
	Reason string
	Cause  error
}

func (e *InvalidHandlerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid handler: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid handler: %s", e.Reason)
}

// Unwrap returns the underlying cause error.
func (e *InvalidHandlerError) Unwrap() error {
	return e.Cause
}

// ArgumentError is returned by handlers built with Func when they are called
// with arguments the wrapped function cannot accept.
// Index is -1 when the argument count is wrong; Expected and Received then
// hold the counts.
type ArgumentError struct {
	Index int
	Want  reflect.Type
	Got   reflect.Type

	Expected int
	Received int
}

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("argument count mismatch: function takes %d, got %d", e.Expected, e.Received)
	}
	got := "nil"
	if e.Got != nil {
		got = e.Got.String()
	}
	return fmt.Sprintf("argument %d: cannot use %s as %v", e.Index, got, e.Want)
}
