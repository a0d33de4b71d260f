package nn

import (
	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// L2Regularization computes the L2 weight penalty and its gradient.
//
//	loss = regStrength * Σ W²
//	grad = 2 * regStrength * W
//
// grad has the dims of w. regStrength is not validated; a negative value
// gives a negative loss.
//
// Example:
//
//	loss, grad := nn.L2Regularization(fc.Weight().Value(), 1e-3)
//	fc.Weight().Accumulate(grad)
func L2Regularization(w mat.Matrix, regStrength float64) (float64, *mat.Dense) {
	loss := regStrength * tensor.SumSquares(w)

	var grad mat.Dense
	grad.Scale(2*regStrength, w)

	return loss, &grad
}
