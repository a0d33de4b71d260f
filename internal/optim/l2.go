package optim

import (
	"github.com/born-ml/backprop/internal/nn"
)

// ApplyL2 adds the L2 regularization gradient of every parameter's value to
// its gradient and returns the summed regularization loss.
//
// Call it after Backward and before Step. A zero strength is a no-op that
// returns 0.
func ApplyL2(params []*nn.Param, regStrength float64) float64 {
	if regStrength == 0 {
		return 0
	}

	var total float64
	for _, p := range params {
		loss, grad := nn.L2Regularization(p.Value(), regStrength)
		p.Accumulate(grad)
		total += loss
	}
	return total
}
