package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// reluEpsilon keeps the ReLU backward denominator away from zero at x = 0.
const reluEpsilon = 1e-7

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x), computed as
// (|x| + x) / 2.
//
// Example:
//
//	relu := nn.NewReLU()
//	out := relu.Forward(x)        // negatives become 0
//	dx, err := relu.Backward(dOut) // dOut where x > 0, 0 elsewhere
type ReLU struct {
	x     *mat.Dense // Input of the pending forward call
	state forwardState
}

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation and caches x for Backward.
//
// Input shape: [batch_size, features] or [features]
// Output shape: [batch_size, features]
func (r *ReLU) Forward(x mat.Matrix) *mat.Dense {
	r.x = tensor.Batch(x)
	r.state = pendingForward

	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 {
		return (math.Abs(v) + v) / 2
	}, r.x)
	return &out
}

// Backward passes dOut through where the cached input is positive.
//
// Computes dOut * (|x| + x) / (2|x| + 1e-7). The epsilon only matters at
// x = 0, where the numerator is 0 and the result is exactly 0. For x > 0 the
// factor is x/(x + 5e-8), which is indistinguishable from 1 unless x is tiny.
//
// Backward leaves the cached input in place.
func (r *ReLU) Backward(dOut mat.Matrix) (*mat.Dense, error) {
	if r.state != pendingForward {
		return nil, fmt.Errorf("relu: %w", ErrNoPendingForward)
	}

	d := tensor.AsBatch(dOut)
	tensor.MustMatch("nn.ReLU.Backward", d, r.x)

	var dx mat.Dense
	dx.Apply(func(i, j int, g float64) float64 {
		x := r.x.At(i, j)
		return g * (math.Abs(x) + x) / (2*math.Abs(x) + reluEpsilon)
	}, d)
	return &dx, nil
}

// Params returns an empty map (ReLU has no trainable parameters).
func (r *ReLU) Params() map[string]*Param {
	return map[string]*Param{}
}
