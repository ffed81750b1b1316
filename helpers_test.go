package dispatch

import (
	"fmt"
	"math"
)

// Test value types
type Point struct {
	X, Y float64
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 { return s.Side * s.Side }

// Count is a named integer type; it is not assignable to int.
type Count int

type padded struct {
	A int
	_ int
	B string
}

type pair struct {
	a int
	b string
}

type holder struct {
	S Shape
}

// tag returns a handler that reports its own name.
func tag(name string) Handler[string] {
	return func(args ...any) (string, error) {
		return name, nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// euclid is the default distance handler over four numeric coordinates.
func euclid(args ...any) (float64, error) {
	if len(args) != 4 {
		return 0, fmt.Errorf("distance takes 4 coordinates, got %d", len(args))
	}
	c := make([]float64, 4)
	for i, a := range args {
		f, err := toFloat(a)
		if err != nil {
			return 0, err
		}
		c[i] = f
	}
	return math.Sqrt((c[2]-c[0])*(c[2]-c[0]) + (c[3]-c[1])*(c[3]-c[1])), nil
}
