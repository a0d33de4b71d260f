package nn_test

import (
	"testing"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestReLUForward tests ReLU on a rank-1 input.
func TestReLUForward(t *testing.T) {
	relu := nn.NewReLU()

	out := relu.Forward(mat.NewVecDense(3, []float64{-2, 0, 3}))

	require.Equal(t, tensor.Shape{1, 3}, tensor.ShapeOf(out))
	assert.Equal(t, []float64{0, 0, 3}, out.RawRowView(0))
}

// TestReLU_VectorInputIsBatchOfOne tests that a rank-1 input yields a
// (1, N) output and gradient.
func TestReLU_VectorInputIsBatchOfOne(t *testing.T) {
	relu := nn.NewReLU()
	out := relu.Forward(mat.NewVecDense(2, []float64{4, -1}))

	require.Equal(t, tensor.Shape{1, 2}, tensor.ShapeOf(out))
	assert.Equal(t, []float64{4, 0}, mat.Col(nil, 0, out.RowView(0)))

	dx, err := relu.Backward(tensor.FromRows([]float64{2, 2}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2}, tensor.ShapeOf(dx))
	assert.Equal(t, 0.0, dx.At(0, 1))
}

// TestReLUBackward tests the epsilon-stabilized mask.
func TestReLUBackward(t *testing.T) {
	relu := nn.NewReLU()
	relu.Forward(mat.NewVecDense(3, []float64{-2, 0, 3}))

	dx, err := relu.Backward(mat.NewVecDense(3, []float64{1, 1, 1}))
	require.NoError(t, err)

	// x = 0 has a zero numerator, so the epsilon yields exactly 0 there.
	assert.Equal(t, 0.0, dx.At(0, 0))
	assert.Equal(t, 0.0, dx.At(0, 1))
	assert.InDelta(t, 1.0, dx.At(0, 2), 1e-7)
}

// TestReLUBackward_ScalesUpstream tests that dOut passes through unchanged
// where the input is positive.
func TestReLUBackward_ScalesUpstream(t *testing.T) {
	relu := nn.NewReLU()
	relu.Forward(tensor.FromRows(
		[]float64{1, -1},
		[]float64{-0.5, 2},
	))

	dx, err := relu.Backward(tensor.FromRows(
		[]float64{3, 4},
		[]float64{5, -6},
	))
	require.NoError(t, err)

	assert.InDelta(t, 3, dx.At(0, 0), 1e-6)
	assert.Equal(t, 0.0, dx.At(0, 1))
	assert.Equal(t, 0.0, dx.At(1, 0))
	assert.InDelta(t, -6, dx.At(1, 1), 1e-6)
}

// TestReLUBackward_BeforeForward tests the precondition error.
func TestReLUBackward_BeforeForward(t *testing.T) {
	relu := nn.NewReLU()

	dx, err := relu.Backward(tensor.Zeros(1, 3))

	assert.Nil(t, dx)
	assert.ErrorIs(t, err, nn.ErrNoPendingForward)
}

// TestReLUBackward_Repeatable tests that Backward does not consume the
// cached input.
func TestReLUBackward_Repeatable(t *testing.T) {
	relu := nn.NewReLU()
	relu.Forward(tensor.FromRows([]float64{-1, 2, 0.5}))
	d := tensor.FromRows([]float64{1, 2, 3})

	first, err := relu.Backward(d)
	require.NoError(t, err)
	second, err := relu.Backward(d)
	require.NoError(t, err)

	assert.True(t, mat.Equal(first, second))
}

// TestReLUForward_OverwritesCache tests that only the latest input is kept.
func TestReLUForward_OverwritesCache(t *testing.T) {
	relu := nn.NewReLU()
	relu.Forward(tensor.FromRows([]float64{1, 1}))
	relu.Forward(tensor.FromRows([]float64{-1, 1}))

	dx, err := relu.Backward(tensor.FromRows([]float64{1, 1}))
	require.NoError(t, err)

	assert.Equal(t, 0.0, dx.At(0, 0))
	assert.InDelta(t, 1, dx.At(0, 1), 1e-6)
}

// TestReLUForward_DoesNotAliasInput tests that mutating the input after
// Forward does not change Backward.
func TestReLUForward_DoesNotAliasInput(t *testing.T) {
	relu := nn.NewReLU()
	x := tensor.FromRows([]float64{1, -1})
	relu.Forward(x)
	x.Set(0, 0, -1)

	dx, err := relu.Backward(tensor.FromRows([]float64{1, 1}))
	require.NoError(t, err)
	assert.InDelta(t, 1, dx.At(0, 0), 1e-6)
}

// TestReLUBackward_ShapeMismatch tests that a wrongly shaped gradient panics.
func TestReLUBackward_ShapeMismatch(t *testing.T) {
	relu := nn.NewReLU()
	relu.Forward(tensor.Zeros(2, 3))

	assert.Panics(t, func() { _, _ = relu.Backward(tensor.Zeros(3, 2)) })
}

// TestReLUParams tests that ReLU has no parameters.
func TestReLUParams(t *testing.T) {
	params := nn.NewReLU().Params()
	assert.NotNil(t, params)
	assert.Empty(t, params)
}

// TestReLUGradient tests ReLU backward using gradient checking.
func TestReLUGradient(t *testing.T) {
	relu := nn.NewReLU()
	// Keep away from 0, where ReLU is not differentiable.
	x := tensor.FromRows(
		[]float64{1.0, -2.0, 0.5},
		[]float64{-0.3, 0.7, -1.5},
	)

	require.NoError(t, gradcheck.CheckLayerGradient(relu, x, nil))
}

var _ nn.Layer = (*nn.ReLU)(nil)
