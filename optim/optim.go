// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides update rules for parameters trained with the nn
// package.
//
// Example:
//
//	params := optim.Collect(fc1, relu, fc2)
//	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
//
//	optimizer.ZeroGrad()
//	// forward, loss, backward ...
//	loss += optim.ApplyL2(params, 1e-3)
//	optimizer.Step()
package optim

import (
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*nn.Param, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(params []*nn.Param, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// Collect returns the parameters of layers in layer order, then by name.
func Collect(layers ...nn.Layer) []*nn.Param {
	return optim.Collect(layers...)
}

// ApplyL2 adds the L2 penalty gradient to every parameter and returns the
// total penalty.
func ApplyL2(params []*nn.Param, regStrength float64) float64 {
	return optim.ApplyL2(params, regStrength)
}
