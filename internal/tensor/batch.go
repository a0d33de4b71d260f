package tensor

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AsBatch normalizes m to a (batch, features) matrix.
//
// A rank-1 input (any mat.Vector) of length n becomes a (1, n) row view that
// shares storage with the vector. Every other matrix is returned unchanged.
//
// Example:
//
//	v := mat.NewVecDense(3, []float64{1, 2, 3})
//	b := tensor.AsBatch(v) // dims (1, 3)
func AsBatch(m mat.Matrix) mat.Matrix {
	if v, ok := m.(mat.Vector); ok {
		return v.T()
	}
	return m
}

// Batch returns a dense copy of AsBatch(m).
//
// Layers use it to cache their forward input independently of the caller's
// storage.
func Batch(m mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(AsBatch(m))
}

// RowMax returns the maximum of every row of a.
func RowMax(a *mat.Dense) []float64 {
	r, _ := a.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = floats.Max(a.RawRowView(i))
	}
	return out
}

// ArgMaxRows returns the column index of the largest value in every row.
// Ties resolve to the lowest index.
func ArgMaxRows(a mat.Matrix) []int {
	d := Batch(a)
	r, _ := d.Dims()
	out := make([]int, r)
	for i := range out {
		out[i] = floats.MaxIdx(d.RawRowView(i))
	}
	return out
}

// ColSum sums a over its rows and returns a (1, cols) matrix.
func ColSum(a mat.Matrix) *mat.Dense {
	r, c := a.Dims()
	out := mat.NewDense(1, c, nil)
	sums := out.RawRowView(0)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		floats.Add(sums, mat.Row(row, i, a))
	}
	return out
}

// RowSum sums a over its columns, one value per row.
func RowSum(a mat.Matrix) []float64 {
	r, c := a.Dims()
	out := make([]float64, r)
	row := make([]float64, c)
	for i := range out {
		out[i] = floats.Sum(mat.Row(row, i, a))
	}
	return out
}

// AddRow adds the single-row matrix row to every row of dst in place.
//
// This is the (batch, n) + (1, n) broadcast used by bias addition.
func AddRow(dst *mat.Dense, row mat.Matrix) {
	_, c := dst.Dims()
	rr, rc := row.Dims()
	if rr != 1 || rc != c {
		panic(ShapeError("tensor.AddRow", Shape{rr, rc}, Shape{1, c}))
	}
	b := mat.Row(nil, 0, row)
	r, _ := dst.Dims()
	for i := 0; i < r; i++ {
		floats.Add(dst.RawRowView(i), b)
	}
}

// SumSquares returns the sum of squared elements of a.
func SumSquares(a mat.Matrix) float64 {
	d := mat.DenseCopyOf(a)
	data := d.RawMatrix().Data
	return floats.Dot(data, data)
}
