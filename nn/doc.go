// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and losses of the backprop toolkit.
//
// # Overview
//
// This package contains:
//   - Layers: FullyConnected, ReLU
//   - Loss functions: Softmax, CrossEntropyLoss, SoftmaxWithCrossEntropy
//   - Regularization: L2Regularization
//   - Utilities: Layer interface, Param, Predict, Accuracy
//
// Arrays are gonum matrices. Inputs are accepted as mat.Matrix and results
// are returned as *mat.Dense with a leading batch dimension. A mat.Vector
// input is treated as a batch of one.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/nn"
//	    "github.com/born-ml/backprop/optim"
//	)
//
//	func main() {
//	    fc1 := nn.NewFullyConnected(784, 128, nil)
//	    relu := nn.NewReLU()
//	    fc2 := nn.NewFullyConnected(128, 10, nil)
//	    params := optim.Collect(fc1, relu, fc2)
//
//	    for _, p := range params {
//	        p.ZeroGrad()
//	    }
//	    scores := fc2.Forward(relu.Forward(fc1.Forward(x)))
//	    loss, d := nn.SoftmaxWithCrossEntropy(scores, labels)
//	    d, _ = fc2.Backward(d)
//	    d, _ = relu.Backward(d)
//	    _, _ = fc1.Backward(d)
//	}
//
// # Gradients
//
// Backward accumulates parameter gradients into Param.Grad and never clears
// them. Zero them before every optimization step.
package nn
