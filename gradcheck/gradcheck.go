// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gradcheck compares analytic gradients with finite differences.
//
// Example:
//
//	layer := nn.NewFullyConnected(3, 4, nil)
//	if err := gradcheck.CheckLayerGradient(layer, x, nil); err != nil {
//	    log.Fatal(err)
//	}
package gradcheck

import (
	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// Settings configures a gradient check.
type Settings = gradcheck.Settings

// MismatchError reports the first element outside tolerance.
type MismatchError = gradcheck.MismatchError

// Func returns a scalar value and its analytic gradient.
type Func = gradcheck.Func

// ErrUnknownParam is returned for a parameter name the layer does not have.
var ErrUnknownParam = gradcheck.ErrUnknownParam

// CheckGradient compares the analytic gradient of f at x with a central
// finite difference estimate.
func CheckGradient(f Func, x *mat.Dense, s *Settings) error {
	return gradcheck.CheckGradient(f, x, s)
}

// CheckLayerGradient checks the input gradient returned by layer.Backward.
func CheckLayerGradient(layer nn.Layer, x *mat.Dense, s *Settings) error {
	return gradcheck.CheckLayerGradient(layer, x, s)
}

// CheckLayerParamGradient checks the gradient of the named parameter.
func CheckLayerParamGradient(layer nn.Layer, x *mat.Dense, name string, s *Settings) error {
	return gradcheck.CheckLayerParamGradient(layer, x, name, s)
}
