package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/backprop/nn"
	"github.com/born-ml/backprop/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestPublicAPI exercises the documented collaborator loop through the
// public package.
func TestPublicAPI(t *testing.T) {
	fc := nn.NewFullyConnected(3, 2, rand.NewPCG(1, 1))
	relu := nn.NewReLU()
	layers := []nn.Layer{fc, relu}

	x := mat.NewVecDense(3, []float64{1, -1, 2})
	scores := relu.Forward(fc.Forward(x))
	require.Equal(t, tensor.Shape{1, 2}, tensor.ShapeOf(scores))

	loss, d := nn.SoftmaxWithCrossEntropy(scores, []int{1})
	assert.InDelta(t, nn.CrossEntropyLoss(nn.Softmax(scores), []int{1}), loss, 0)
	assert.False(t, math.IsNaN(loss))

	for i := len(layers) - 1; i >= 0; i-- {
		var err error
		d, err = layers[i].Backward(d)
		require.NoError(t, err)
	}
	assert.Equal(t, tensor.Shape{1, 3}, tensor.ShapeOf(d))

	reg, grad := nn.L2Regularization(fc.Weight().Value(), 0)
	assert.Equal(t, 0.0, reg)
	assert.Equal(t, tensor.Shape{3, 2}, tensor.ShapeOf(grad))

	_, err := nn.NewReLU().Backward(d)
	assert.ErrorIs(t, err, nn.ErrNoPendingForward)
}

func TestPredict(t *testing.T) {
	scores := tensor.FromRows([]float64{1, 3, 2})
	assert.Equal(t, []int{1}, nn.Predict(scores))
	assert.Equal(t, 1.0, nn.Accuracy(scores, []int{1}))
}
