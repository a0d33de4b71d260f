// Package nn implements the layers and losses of the backprop toolkit.
//
// This package provides:
//   - Layer interface: the forward/backward contract shared by all layers
//   - Param: a trainable value paired with an accumulating gradient
//   - FullyConnected: linear layer y = x·W + B
//   - ReLU: rectified linear activation
//   - Softmax, CrossEntropyLoss, SoftmaxWithCrossEntropy: classification loss
//   - L2Regularization: weight decay loss and gradient
//
// Every gradient is derived by hand; there is no tape or graph.
package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Layer is the forward/backward contract implemented by every layer.
//
// A layer remembers the input of its most recent Forward call and uses it in
// Backward. Only one pending input is kept: a second Forward overwrites the
// first. Backward does not consume the cached input, so it may be called
// again with the same cache.
//
// Training loops drive layers explicitly:
//
//	h := fc1.Forward(x)
//	h = relu.Forward(h)
//	scores := fc2.Forward(h)
//	loss, d := nn.SoftmaxWithCrossEntropy(scores, targets)
//	d, _ = fc2.Backward(d)
//	d, _ = relu.Backward(d)
//	_, _ = fc1.Backward(d)
type Layer interface {
	// Forward computes the layer output for a (batch, features) input.
	//
	// A rank-1 input (mat.Vector) is treated as a batch of one.
	Forward(x mat.Matrix) *mat.Dense

	// Backward takes the gradient of the loss with respect to the layer
	// output and returns the gradient with respect to the layer input.
	//
	// Parameter gradients are accumulated into the layer's Params.
	// Returns ErrNoPendingForward when Forward has not been called.
	Backward(dOut mat.Matrix) (*mat.Dense, error)

	// Params returns the trainable parameters by name.
	//
	// Layers without parameters return an empty map.
	Params() map[string]*Param
}

// forwardState tags whether a layer holds a cached forward input.
type forwardState int

const (
	noPendingForward forwardState = iota
	pendingForward
)
