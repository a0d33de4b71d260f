package gradcheck_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// square returns Σx² and its gradient 2x.
func square(x *mat.Dense) (float64, *mat.Dense) {
	var g mat.Dense
	g.Scale(2, x)
	return tensor.SumSquares(x), &g
}

func TestCheckGradient_Correct(t *testing.T) {
	x := tensor.FromRows([]float64{3, -1}, []float64{0.5, 2})
	require.NoError(t, gradcheck.CheckGradient(square, x, nil))
}

func TestCheckGradient_Wrong(t *testing.T) {
	x := tensor.FromRows([]float64{3, -1}, []float64{0.5, 2})
	wrong := func(x *mat.Dense) (float64, *mat.Dense) {
		v, g := square(x)
		g.Set(1, 0, g.At(1, 0)+0.5)
		return v, g
	}

	err := gradcheck.CheckGradient(wrong, x, nil)

	var mismatch *gradcheck.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Row)
	assert.Equal(t, 0, mismatch.Col)
	assert.InDelta(t, 1.5, mismatch.Analytic, 1e-12)
	assert.InDelta(t, 1.0, mismatch.Numeric, 1e-6)
	assert.Contains(t, err.Error(), "gradient mismatch at (1, 0)")
}

func TestCheckGradient_DoesNotModifyInput(t *testing.T) {
	x := tensor.FromRows([]float64{1, 2, 3})
	before := mat.DenseCopyOf(x)

	require.NoError(t, gradcheck.CheckGradient(square, x, &gradcheck.Settings{Step: 1e-4}))
	assert.True(t, mat.Equal(before, x))
}

func TestCheckGradient_ShapeMismatchPanics(t *testing.T) {
	bad := func(x *mat.Dense) (float64, *mat.Dense) {
		return 0, tensor.Zeros(1, 1)
	}
	assert.Panics(t, func() { _ = gradcheck.CheckGradient(bad, tensor.Zeros(2, 2), nil) })
}

func TestCheckLayerParamGradient_UnknownParam(t *testing.T) {
	err := gradcheck.CheckLayerParamGradient(nn.NewReLU(), tensor.Zeros(1, 2), "W", nil)
	assert.ErrorIs(t, err, gradcheck.ErrUnknownParam)
}

func TestCheckLayerParamGradient_RestoresParam(t *testing.T) {
	layer := nn.NewFullyConnected(3, 2, rand.NewPCG(1, 1))
	before := mat.DenseCopyOf(layer.Weight().Value())
	x := tensor.FromRows([]float64{1, 2, 3})

	require.NoError(t, gradcheck.CheckLayerParamGradient(layer, x, "W", nil))

	assert.True(t, mat.Equal(before, layer.Weight().Value()))
	assert.True(t, mat.Equal(tensor.Zeros(3, 2), layer.Weight().Grad()))
}

// brokenLayer scales its input by 2 but reports the gradient of identity.
type brokenLayer struct{}

func (brokenLayer) Forward(x mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Scale(2, tensor.AsBatch(x))
	return &out
}

func (brokenLayer) Backward(dOut mat.Matrix) (*mat.Dense, error) {
	return mat.DenseCopyOf(dOut), nil
}

func (brokenLayer) Params() map[string]*nn.Param { return map[string]*nn.Param{} }

func TestCheckLayerGradient_DetectsWrongBackward(t *testing.T) {
	err := gradcheck.CheckLayerGradient(brokenLayer{}, tensor.FromRows([]float64{1, 2}), &gradcheck.Settings{Seed: 3})

	var mismatch *gradcheck.MismatchError
	assert.ErrorAs(t, err, &mismatch)
}
