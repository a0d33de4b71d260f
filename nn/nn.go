// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// Layer is the forward/backward contract shared by all layers.
type Layer = nn.Layer

// Param is a trainable value paired with an accumulating gradient.
type Param = nn.Param

// NewParam creates a parameter around value with a zero gradient.
func NewParam(value *mat.Dense) *Param {
	return nn.NewParam(value)
}

// ErrNoPendingForward is returned by Backward when Forward was never called.
var ErrNoPendingForward = nn.ErrNoPendingForward

// InitStd is the standard deviation of FullyConnected initialization.
const InitStd = nn.InitStd

// Layers

// FullyConnected represents a fully connected (dense) layer.
type FullyConnected = nn.FullyConnected

// NewFullyConnected creates a new fully connected layer with N(0, 0.001²)
// weights and bias.
//
// Example:
//
//	layer := nn.NewFullyConnected(784, 128, rand.NewPCG(1, 2))
func NewFullyConnected(nInput, nOutput int, src rand.Source) *FullyConnected {
	return nn.NewFullyConnected(nInput, nOutput, src)
}

// Activations

// ReLU represents the Rectified Linear Unit activation layer.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Loss Functions

// Softmax computes class probabilities from raw scores.
func Softmax(predictions mat.Matrix) *mat.Dense {
	return nn.Softmax(predictions)
}

// CrossEntropyLoss computes the mean cross-entropy of probs against targets.
func CrossEntropyLoss(probs mat.Matrix, targets []int) float64 {
	return nn.CrossEntropyLoss(probs, targets)
}

// SoftmaxWithCrossEntropy computes the loss of raw scores and its gradient
// with respect to the scores.
//
// Example:
//
//	loss, d := nn.SoftmaxWithCrossEntropy(scores, labels)
func SoftmaxWithCrossEntropy(predictions mat.Matrix, targets []int) (float64, *mat.Dense) {
	return nn.SoftmaxWithCrossEntropy(predictions, targets)
}

// L2Regularization computes the L2 weight penalty and its gradient.
func L2Regularization(w mat.Matrix, regStrength float64) (float64, *mat.Dense) {
	return nn.L2Regularization(w, regStrength)
}

// Metrics

// Predict returns the highest scoring class of every row.
func Predict(scores mat.Matrix) []int {
	return nn.Predict(scores)
}

// Accuracy returns the fraction of rows whose highest score is the target.
func Accuracy(scores mat.Matrix, targets []int) float64 {
	return nn.Accuracy(scores, targets)
}
