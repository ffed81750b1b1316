package dispatch

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_String(t *testing.T) {
	sig := Signature{Of[int](), Any, Nested(Of[string](), Of[float64]()), TypeOf(Point{})}
	assert.Equal(t, "(int, Any, (string, float64), dispatch.Point)", sig.String())

	assert.Equal(t, "()", Signature{}.String())
	assert.Equal(t, "(<nil>, <nil>)", Signature{nil, Type(nil)}.String())
}

func TestDescriptorConstructorsAgree(t *testing.T) {
	assert.Equal(t, Of[Point](), TypeOf(Point{}))
	assert.Equal(t, Of[Point](), Type(reflect.TypeOf(Point{})))
	assert.Equal(t, Of[Shape](), Type(reflect.TypeFor[Shape]()))
}

func TestNested_CopiesElements(t *testing.T) {
	elems := []Descriptor{Of[int]()}
	n := Nested(elems...)
	elems[0] = Of[string]()

	assert.Equal(t, "(int)", n.String())
}

func TestSignature_Validate(t *testing.T) {
	require.NoError(t, Signature{}.Validate())
	require.NoError(t, Signature{Of[int](), Any, Nested(Any, Nested())}.Validate())

	cases := []struct {
		name   string
		sig    Signature
		path   []int
		reason string
	}{
		{"nil descriptor", Signature{Of[int](), nil}, []int{1}, "descriptor cannot be nil"},
		{"nil type", Signature{Type(nil)}, []int{0}, "type cannot be nil"},
		{"TypeOf nil", Signature{Any, TypeOf(nil)}, []int{1}, "type cannot be nil"},
		{"deep nested", Signature{Nested(Of[int](), Nested(Type(nil)))}, []int{0, 1, 0}, "type cannot be nil"},
		{"nil inside nested", Signature{Any, Nested(nil)}, []int{1, 0}, "descriptor cannot be nil"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.sig.Validate()
			require.Error(t, err)

			var sigErr *InvalidSignatureError
			require.True(t, errors.As(err, &sigErr), "expected InvalidSignatureError, got %T", err)
			assert.Equal(t, c.path, sigErr.Path)
			assert.Equal(t, c.reason, sigErr.Reason)
		})
	}
}

func TestInvalidSignatureError_Message(t *testing.T) {
	err := Signature{Nested(Of[int](), Nested(Type(nil)))}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at position 0.1.0")
	assert.Contains(t, err.Error(), "type cannot be nil")
}
