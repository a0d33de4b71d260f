package tensor

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Zeros creates a (rows, cols) matrix filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(3, 4)
func Zeros(rows, cols int) *mat.Dense {
	// Data is zero-initialized by gonum.
	return mat.NewDense(rows, cols, nil)
}

// ZerosLike creates a zero matrix with the dims of m.
func ZerosLike(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	return Zeros(r, c)
}

// Randn creates a (rows, cols) matrix with values drawn from N(0, std²).
//
// A nil src draws from the global math/rand/v2 source.
//
// Example:
//
//	w := tensor.Randn(784, 128, 0.001, rand.NewPCG(1, 2))
func Randn(rows, cols int, std float64, src rand.Source) *mat.Dense {
	dist := distuv.Normal{Mu: 0, Sigma: std, Src: src}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}

// FromRows builds a dense matrix from equal-length rows.
//
// Example:
//
//	x := tensor.FromRows([]float64{1, 2}, []float64{3, 4}) // dims (2, 2)
func FromRows(rows ...[]float64) *mat.Dense {
	if len(rows) == 0 {
		panic("tensor.FromRows: at least one row required")
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			panic(ShapeError(fmt.Sprintf("tensor.FromRows: row %d", i), Shape{len(row)}, Shape{c}))
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data)
}

// OneHot builds the (len(targets), classes) indicator matrix with a 1 at
// (i, targets[i]) and 0 elsewhere.
//
// Target values are not validated; an index outside [0, classes) panics
// with gonum's index error.
func OneHot(targets []int, classes int) *mat.Dense {
	out := Zeros(len(targets), classes)
	for i, t := range targets {
		out.Set(i, t, 1)
	}
	return out
}
