package nn_test

import (
	"testing"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// TestParam tests construction, accumulation and reset.
func TestParam(t *testing.T) {
	value := tensor.FromRows([]float64{1, 2}, []float64{3, 4})
	p := nn.NewParam(value)

	assert.Same(t, value, p.Value())
	assert.Equal(t, tensor.Shape{2, 2}, p.Shape())
	assert.True(t, mat.Equal(tensor.Zeros(2, 2), p.Grad()))

	g := tensor.FromRows([]float64{1, 1}, []float64{1, 1})
	p.Accumulate(g)
	p.Accumulate(g)
	assert.True(t, mat.Equal(tensor.FromRows([]float64{2, 2}, []float64{2, 2}), p.Grad()))

	grad := p.Grad()
	p.ZeroGrad()
	assert.Same(t, grad, p.Grad(), "ZeroGrad must reset in place")
	assert.True(t, mat.Equal(tensor.Zeros(2, 2), p.Grad()))
}

// TestParam_AccumulateShapeMismatch tests that the grad is never reshaped.
func TestParam_AccumulateShapeMismatch(t *testing.T) {
	p := nn.NewParam(tensor.Zeros(1, 3))
	assert.Panics(t, func() { p.Accumulate(tensor.Zeros(3, 1)) })
	assert.Equal(t, tensor.Shape{1, 3}, tensor.ShapeOf(p.Grad()))
}
