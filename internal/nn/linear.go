package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// FullyConnected implements a fully connected (dense) layer.
//
// Performs the transformation: y = x·W + B
// where:
//   - x is the input with shape [batch_size, n_input]
//   - W is the weight matrix with shape [n_input, n_output]
//   - B is the bias row with shape [1, n_output], broadcast over the batch
//   - y is the output with shape [batch_size, n_output]
//
// W and B are both drawn from N(0, 0.001²).
//
// Example:
//
//	layer := nn.NewFullyConnected(784, 128, nil)
//	out := layer.Forward(x)          // shape: [32, 128] for a batch of 32
//	dx, err := layer.Backward(dOut)  // accumulates into W and B grads
type FullyConnected struct {
	nInput  int
	nOutput int
	w       *Param     // [n_input, n_output]
	b       *Param     // [1, n_output]
	x       *mat.Dense // Input of the pending forward call
	state   forwardState
}

// NewFullyConnected creates a new FullyConnected layer.
//
// Parameters:
//   - nInput: Number of input features
//   - nOutput: Number of output features
//   - src: Random source for initialization; nil uses the global source
//
// Returns a new FullyConnected layer.
func NewFullyConnected(nInput, nOutput int, src rand.Source) *FullyConnected {
	return &FullyConnected{
		nInput:  nInput,
		nOutput: nOutput,
		w:       NewParam(Normal(nInput, nOutput, src)),
		b:       NewParam(Normal(1, nOutput, src)),
	}
}

// Forward computes x·W + B and caches x for Backward.
//
// Input shape: [batch_size, n_input] or [n_input]
// Output shape: [batch_size, n_output]
func (l *FullyConnected) Forward(x mat.Matrix) *mat.Dense {
	l.x = tensor.Batch(x)
	l.state = pendingForward

	var out mat.Dense
	out.Mul(l.x, l.w.Value())
	tensor.AddRow(&out, l.b.Value())
	return &out
}

// Backward computes the input gradient and accumulates parameter gradients.
//
//	dx = dOut·Wᵀ           [batch_size, n_input], returned
//	dW = Xᵀ·dOut           [n_input, n_output], added to W.Grad
//	dB = Σ_batch dOut      [1, n_output], added to B.Grad
//
// Gradients are added, not assigned, so several Backward calls within one
// step sum up. Callers zero the grads before a fresh step.
func (l *FullyConnected) Backward(dOut mat.Matrix) (*mat.Dense, error) {
	if l.state != pendingForward {
		return nil, fmt.Errorf("fully connected: %w", ErrNoPendingForward)
	}

	d := tensor.AsBatch(dOut)

	var dx mat.Dense
	dx.Mul(d, l.w.Value().T())

	var dw mat.Dense
	dw.Mul(l.x.T(), d)

	l.w.Accumulate(&dw)
	l.b.Accumulate(tensor.ColSum(d))

	return &dx, nil
}

// Params returns the trainable parameters: {"W": weights, "B": bias}.
func (l *FullyConnected) Params() map[string]*Param {
	return map[string]*Param{
		"W": l.w,
		"B": l.b,
	}
}

// Weight returns the weight parameter.
func (l *FullyConnected) Weight() *Param {
	return l.w
}

// Bias returns the bias parameter.
func (l *FullyConnected) Bias() *Param {
	return l.b
}

// InFeatures returns the number of input features.
func (l *FullyConnected) InFeatures() int {
	return l.nInput
}

// OutFeatures returns the number of output features.
func (l *FullyConnected) OutFeatures() int {
	return l.nOutput
}
