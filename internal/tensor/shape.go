// Package tensor holds the dense array helpers shared by the layers: shape
// bookkeeping, rank-1 to batch normalization, reductions and initializers.
// Arrays are gonum matrices of float64.
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Shape represents the dimensions of an array.
//
// Arrays in this package are rank 1 (a mat.Vector, Shape{n}) or
// rank 2 (any other mat.Matrix, Shape{rows, cols}).
type Shape []int

// ShapeOf returns the shape of m, reporting vectors as rank 1.
func ShapeOf(m mat.Matrix) Shape {
	if v, ok := m.(mat.Vector); ok {
		return Shape{v.Len()}
	}
	r, c := m.Dims()
	return Shape{r, c}
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String formats the shape as (d0, d1, ...).
func (s Shape) String() string {
	if len(s) == 1 {
		return fmt.Sprintf("(%d,)", s[0])
	}
	out := "("
	for i, dim := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(dim)
	}
	return out + ")"
}

// ShapeError reports a dimension mismatch. It wraps mat.ErrShape so callers
// can match it with errors.Is the same way they match gonum's own panics.
func ShapeError(op string, got, want Shape) error {
	return fmt.Errorf("%s: got shape %v, want %v: %w", op, got, want, mat.ErrShape)
}

// MustMatch panics with a ShapeError unless a and b have identical dims.
func MustMatch(op string, a, b mat.Matrix) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(ShapeError(op, Shape{ar, ac}, Shape{br, bc}))
	}
}
