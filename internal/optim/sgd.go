package optim

import (
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	params     []*nn.Param
	lr         float64
	momentum   float64
	velocities map[*nn.Param]*mat.Dense
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
//
// Parameters:
//   - params: Parameters to optimize
//   - config: SGD configuration (LR, Momentum)
//
// Returns a new SGD optimizer.
func NewSGD(params []*nn.Param, config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Param]*mat.Dense),
	}
}

// Step performs a single optimization step.
//
// Applies gradient descent update to all parameters:
//   - Without momentum: param -= lr * grad
//   - With momentum: velocity = momentum * velocity + grad, param -= lr * velocity
func (s *SGD) Step() {
	for _, param := range s.params {
		step := param.Grad()

		if s.momentum != 0 {
			velocity, exists := s.velocities[param]
			if !exists {
				velocity = tensor.ZerosLike(param.Value())
				s.velocities[param] = velocity
			}
			velocity.Scale(s.momentum, velocity)
			velocity.Add(velocity, param.Grad())
			step = velocity
		}

		value := param.Value()
		var scaled mat.Dense
		scaled.Scale(s.lr, step)
		value.Sub(value, &scaled)
	}
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
