package dispatch

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc_Signature(t *testing.T) {
	sig, h, err := Func[string](func(a int, b string) string {
		return strconv.Itoa(a) + b
	})
	require.NoError(t, err)
	assert.Equal(t, "(int, string)", sig.String())

	got, err := h(1, "x")
	require.NoError(t, err)
	assert.Equal(t, "1x", got)
}

func TestFunc_ErrorResult(t *testing.T) {
	errBoom := errors.New("boom")
	_, h, err := Func[int](func(n int) (int, error) {
		if n < 0 {
			return n, errBoom
		}
		return n * 2, nil
	})
	require.NoError(t, err)

	got, err := h(2)
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = h(-1)
	assert.True(t, err == errBoom, "error must not be wrapped, got %v", err)
	assert.Equal(t, -1, got)
}

func TestFunc_InterfaceResult(t *testing.T) {
	_, h, err := Func[any](func() *Point { return nil })
	require.NoError(t, err)

	got, err := h()
	require.NoError(t, err)
	assert.Equal(t, (*Point)(nil), got)

	_, h2, err := Func[Shape](func(side float64) Square { return Square{side} })
	require.NoError(t, err)
	shape, err := h2(2.0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, shape.Area())
}

func TestFunc_Invalid(t *testing.T) {
	cases := []struct {
		name string
		fn   any
	}{
		{"nil", nil},
		{"typed nil", (func(int) string)(nil)},
		{"not a function", 5},
		{"variadic", func(xs ...int) string { return "" }},
		{"no results", func(int) {}},
		{"three results", func() (string, int, error) { return "", 0, nil }},
		{"wrong result type", func() int { return 0 }},
		{"second result not error", func() (string, string) { return "", "" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := Func[string](c.fn)
			require.Error(t, err)
			var handlerErr *InvalidHandlerError
			require.True(t, errors.As(err, &handlerErr), "expected InvalidHandlerError, got %T", err)
			require.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestFunc_ArgumentErrors(t *testing.T) {
	_, h, err := Func[string](func(a int, p *Point) string { return "ok" })
	require.NoError(t, err)

	_, err = h(1)
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, -1, argErr.Index)
	assert.Equal(t, 2, argErr.Expected)
	assert.Equal(t, 1, argErr.Received)

	_, err = h("x", nil)
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, 0, argErr.Index)
	assert.Equal(t, reflect.TypeFor[int](), argErr.Want)
	assert.Equal(t, reflect.TypeFor[string](), argErr.Got)
	assert.Contains(t, err.Error(), "cannot use string as int")

	_, err = h(nil, nil)
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, 0, argErr.Index)
	assert.Contains(t, err.Error(), "cannot use nil as int")

	got, err := h(1, nil)
	require.NoError(t, err, "nil is accepted for pointer parameters")
	assert.Equal(t, "ok", got)
}

func TestDispatcher_AddFunc(t *testing.T) {
	var distance *Dispatcher[float64]
	distance = New(euclid)
	require.NoError(t, distance.AddFunc(func(p, q Point) (float64, error) {
		return distance.Call(p.X, p.Y, q.X, q.Y)
	}))
	require.NoError(t, distance.AddFunc(func(s Shape) float64 { return s.Area() }))

	assert.Equal(t, "(dispatch.Point, dispatch.Point)", distance.Signatures()[0].String())

	direct, _ := distance.Call(1, 2, 3, 4)
	viaPoints, err := distance.Call(Point{1, 2}, Point{3, 4})
	require.NoError(t, err)
	assert.Equal(t, direct, viaPoints)

	area, err := distance.Call(Square{3})
	require.NoError(t, err)
	assert.Equal(t, 9.0, area, "interface parameters match implementations")

	err = distance.AddFunc(func(p Point) string { return "" })
	var handlerErr *InvalidHandlerError
	assert.True(t, errors.As(err, &handlerErr))
	assert.Equal(t, 2, distance.Len())
}

func TestTypeDispatcher_AddFunc(t *testing.T) {
	d := NewTyped(tag("default"))
	require.NoError(t, d.AddFunc(func(a, b int) string { return strconv.Itoa(a + b) }))
	require.NoError(t, d.AddFunc(func(s Shape) string { return "shape" }))

	got, err := d.Call(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	got, _ = d.Call(Square{1})
	assert.Equal(t, "default", got, "interface parameters are exact keys too")

	err = d.AddFunc("nope")
	var handlerErr *InvalidHandlerError
	assert.True(t, errors.As(err, &handlerErr))
}
