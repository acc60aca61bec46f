// Package vector provides fixed-dimension float vectors for positions and velocities.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimension is matched by errors produced when vectors of
// different lengths meet in an arithmetic operation.
var ErrInvalidDimension = errors.New("invalid vector dimension")

// DimensionError describes a length mismatch between two operands.
type DimensionError struct {
	Op    string
	Left  int
	Right int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("vector %s: length %d does not match length %d", e.Op, e.Left, e.Right)
}

// Unwrap makes errors.Is(err, ErrInvalidDimension) hold.
func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}

// Vector is an ordered sequence of scalars.
// Operations never mutate their operands; they return new vectors.
type Vector []float64

// New creates a vector from the given components.
func New(values ...float64) Vector {
	v := make(Vector, len(values))
	copy(v, values)
	return v
}

// Zero returns the zero vector of dimension n.
func Zero(n int) Vector {
	return make(Vector, n)
}

// Len returns the dimension of the vector.
func (v Vector) Len() int {
	return len(v)
}

// At returns the i-th component.
func (v Vector) At(i int) float64 {
	return v[i]
}

// X returns the first component.
func (v Vector) X() float64 {
	return v[0]
}

// Y returns the second component.
func (v Vector) Y() float64 {
	return v[1]
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return New(v...)
}

// Compatible returns a DimensionError if a and b differ in length.
func Compatible(a, b Vector) error {
	return check("compatible", a, b)
}

// Add returns a + b. Panics with a *DimensionError on length mismatch.
func (v Vector) Add(u Vector) Vector {
	mustMatch("add", v, u)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + u[i]
	}
	return out
}

// Sub returns v - u. Panics with a *DimensionError on length mismatch.
func (v Vector) Sub(u Vector) Vector {
	mustMatch("subtract", v, u)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - u[i]
	}
	return out
}

// Dot returns the sum of elementwise products. Panics with a *DimensionError
// on length mismatch.
func (v Vector) Dot(u Vector) float64 {
	mustMatch("dot", v, u)
	var sum float64
	for i := range v {
		sum += v[i] * u[i]
	}
	return sum
}

// Scale returns v with every component multiplied by k.
func (v Vector) Scale(k float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * k
	}
	return out
}

// Magnitude returns the Euclidean norm of v.
func (v Vector) Magnitude() float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// Add is the function form of Vector.Add.
func Add(a, b Vector) Vector { return a.Add(b) }

// Sub is the function form of Vector.Sub.
func Sub(a, b Vector) Vector { return a.Sub(b) }

// Dot is the function form of Vector.Dot.
func Dot(a, b Vector) float64 { return a.Dot(b) }

// Scale is the function form of Vector.Scale.
func Scale(v Vector, k float64) Vector { return v.Scale(k) }

// Magnitude is the function form of Vector.Magnitude.
func Magnitude(v Vector) float64 { return v.Magnitude() }

// ApproxEqual reports whether a and b have the same length and every
// component differs by at most eps.
func ApproxEqual(a, b Vector, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func check(op string, a, b Vector) error {
	if len(a) != len(b) {
		return &DimensionError{Op: op, Left: len(a), Right: len(b)}
	}
	return nil
}

func mustMatch(op string, a, b Vector) {
	if err := check(op, a, b); err != nil {
		panic(err)
	}
}
