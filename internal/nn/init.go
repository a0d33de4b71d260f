package nn

import (
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// InitStd is the standard deviation of the normal distribution used to
// initialize FullyConnected weights and biases.
//
// Small values keep initial activations close to linear.
const InitStd = 0.001

// Normal draws a (rows, cols) matrix from N(0, InitStd²).
//
// Parameters:
//   - rows, cols: Shape of the result
//   - src: Random source; nil uses the global math/rand/v2 source
//
// Returns the initialized matrix.
func Normal(rows, cols int, src rand.Source) *mat.Dense {
	return tensor.Randn(rows, cols, InitStd, src)
}

