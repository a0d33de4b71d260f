package optim

import (
	"math"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	params []*nn.Param
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int                      // Timestep for bias correction
	m      map[*nn.Param]*mat.Dense // First moment estimates
	v      map[*nn.Param]*mat.Dense // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset hyperparameters with
// LR 0.001, betas (0.9, 0.999) and eps 1e-8.
func NewAdam(params []*nn.Param, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make(map[*nn.Param]*mat.Dense),
		v:      make(map[*nn.Param]*mat.Dense),
	}
}

// Step performs a single optimization step using Adam algorithm.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, param := range a.params {
		m, ok := a.m[param]
		if !ok {
			m = tensor.ZerosLike(param.Value())
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = tensor.ZerosLike(param.Value())
			a.v[param] = v
		}

		grad := param.Grad()
		value := param.Value()
		r, c := value.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				g := grad.At(i, j)
				mij := a.beta1*m.At(i, j) + (1-a.beta1)*g
				vij := a.beta2*v.At(i, j) + (1-a.beta2)*g*g
				m.Set(i, j, mij)
				v.Set(i, j, vij)

				mHat := mij / biasCorrection1
				vHat := vij / biasCorrection2
				value.Set(i, j, value.At(i, j)-a.lr*mHat/(math.Sqrt(vHat)+a.eps))
			}
		}
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// LR returns the current learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}
