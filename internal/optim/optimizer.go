// Package optim implements update rules for training with the nn layers.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - ApplyL2: adds the L2 penalty gradient to every parameter
//
// Optimizers read Param.Grad, which the layers fill during Backward.
//
// Example usage:
//
//	params := optim.Collect(fc1, relu, fc2)
//	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    scores := fc2.Forward(relu.Forward(fc1.Forward(x)))
//	    loss, d := nn.SoftmaxWithCrossEntropy(scores, y)
//	    // ... Backward through fc2, relu, fc1 ...
//	    loss += optim.ApplyL2(params, 1e-3)
//	    optimizer.Step()
//	}
package optim

import (
	"sort"

	"github.com/born-ml/backprop/internal/nn"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - LR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step updates every parameter value from its accumulated gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// Layers only ever add into Param.Grad, so this must run before each
	// fresh forward/backward pass.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// Collect returns the parameters of layers in a stable order: layer order,
// then parameter name.
func Collect(layers ...nn.Layer) []*nn.Param {
	var params []*nn.Param
	for _, layer := range layers {
		named := layer.Params()
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			params = append(params, named[name])
		}
	}
	return params
}

// zeroGrad clears the gradient of every parameter.
func zeroGrad(params []*nn.Param) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
