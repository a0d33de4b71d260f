// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array helpers used with the nn package.
//
// Arrays are gonum matrices of float64. Rank-1 arrays are mat.Vector values
// and are treated as a single-row batch.
//
// Example:
//
//	x := tensor.FromRows([]float64{1, 2}, []float64{3, 4})
//	w := tensor.Randn(2, 3, 0.001, nil)
package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Shape represents the dimensions of an array.
type Shape = tensor.Shape

// ShapeOf returns the shape of m, reporting vectors as rank 1.
func ShapeOf(m mat.Matrix) Shape {
	return tensor.ShapeOf(m)
}

// AsBatch normalizes m to a (batch, features) matrix.
func AsBatch(m mat.Matrix) mat.Matrix {
	return tensor.AsBatch(m)
}

// Zeros creates a (rows, cols) matrix filled with zeros.
func Zeros(rows, cols int) *mat.Dense {
	return tensor.Zeros(rows, cols)
}

// Randn creates a (rows, cols) matrix drawn from N(0, std²).
func Randn(rows, cols int, std float64, src rand.Source) *mat.Dense {
	return tensor.Randn(rows, cols, std, src)
}

// FromRows builds a dense matrix from equal-length rows.
func FromRows(rows ...[]float64) *mat.Dense {
	return tensor.FromRows(rows...)
}

// OneHot builds the (len(targets), classes) indicator matrix.
func OneHot(targets []int, classes int) *mat.Dense {
	return tensor.OneHot(targets, classes)
}
