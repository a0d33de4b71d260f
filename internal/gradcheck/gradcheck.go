// Package gradcheck verifies hand-derived gradients against central finite
// differences computed with gonum's diff/fd package.
package gradcheck

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Default settings.
const (
	DefaultStep = 1e-5
	DefaultTol  = 1e-4
)

// ErrUnknownParam is returned when a layer has no parameter with the
// requested name.
var ErrUnknownParam = errors.New("unknown parameter")

// Settings configures a gradient check.
type Settings struct {
	Step float64 // Finite difference step (default: 1e-5)
	Tol  float64 // Allowed |analytic - numeric| / max(1, |numeric|) (default: 1e-4)
	Seed uint64  // Seed for the random output weights used by layer checks
}

// MismatchError reports the first element whose analytic gradient disagrees
// with the numeric estimate.
type MismatchError struct {
	Row, Col int
	Analytic float64
	Numeric  float64
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("gradient mismatch at (%d, %d): analytic %g, numeric %g",
		e.Row, e.Col, e.Analytic, e.Numeric)
}

// Func returns a scalar value at x and its analytic gradient with the dims
// of x. It must not keep or modify x.
type Func func(x *mat.Dense) (float64, *mat.Dense)

// CheckGradient compares the analytic gradient of f at x with a central
// finite difference estimate.
//
// x is not modified. Returns a *MismatchError for the first element out of
// tolerance, or nil when all elements agree.
//
// Example:
//
//	err := gradcheck.CheckGradient(func(x *mat.Dense) (float64, *mat.Dense) {
//	    return nn.SoftmaxWithCrossEntropy(x, targets)
//	}, scores, nil)
func CheckGradient(f Func, x *mat.Dense, s *Settings) error {
	s = withDefaults(s)

	point := mat.DenseCopyOf(x)
	r, c := point.Dims()

	_, analytic := f(mat.DenseCopyOf(point))
	tensor.MustMatch("gradcheck.CheckGradient", analytic, point)

	scratch := mat.NewDense(r, c, nil)
	numeric := fd.Gradient(nil, func(flat []float64) float64 {
		copy(scratch.RawMatrix().Data, flat)
		v, _ := f(mat.DenseCopyOf(scratch))
		return v
	}, point.RawMatrix().Data, &fd.Settings{
		Formula: fd.Central,
		Step:    s.Step,
	})

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			a := analytic.At(i, j)
			n := numeric[i*c+j]
			if !within(a, n, s.Tol) {
				return &MismatchError{Row: i, Col: j, Analytic: a, Numeric: n}
			}
		}
	}
	return nil
}

// CheckLayerGradient checks the input gradient returned by layer.Backward.
//
// The layer output is reduced to a scalar with fixed random weights R:
// loss = Σ(Forward(x) ⊙ R), so dloss/doutput = R. Parameter gradients of
// the layer keep whatever Backward accumulated during the check.
func CheckLayerGradient(layer nn.Layer, x *mat.Dense, s *Settings) error {
	s = withDefaults(s)
	weights := outputWeights(layer, x, s.Seed)

	return CheckGradient(func(in *mat.Dense) (float64, *mat.Dense) {
		loss := weightedSum(layer.Forward(in), weights)
		dx, err := layer.Backward(weights)
		if err != nil {
			panic(err) // Forward was just called
		}
		return loss, dx
	}, x, s)
}

// CheckLayerParamGradient checks the gradient accumulated into the named
// parameter by layer.Backward.
//
// The parameter's gradient is zeroed before every analytic evaluation. Its
// value is restored and its gradient zeroed when the check returns.
func CheckLayerParamGradient(layer nn.Layer, x *mat.Dense, name string, s *Settings) error {
	param, ok := layer.Params()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}

	s = withDefaults(s)
	weights := outputWeights(layer, x, s.Seed)
	initial := mat.DenseCopyOf(param.Value())
	defer func() {
		param.Value().Copy(initial)
		param.ZeroGrad()
	}()

	return CheckGradient(func(w *mat.Dense) (float64, *mat.Dense) {
		param.Value().Copy(w)
		param.ZeroGrad()

		loss := weightedSum(layer.Forward(x), weights)
		if _, err := layer.Backward(weights); err != nil {
			panic(err)
		}
		return loss, mat.DenseCopyOf(param.Grad())
	}, initial, s)
}

// outputWeights draws the reduction weights R with the dims of the layer
// output for x.
func outputWeights(layer nn.Layer, x *mat.Dense, seed uint64) *mat.Dense {
	r, c := layer.Forward(x).Dims()
	return tensor.Randn(r, c, 1, rand.NewPCG(seed, seed))
}

func weightedSum(out, weights *mat.Dense) float64 {
	var prod mat.Dense
	prod.MulElem(out, weights)
	return mat.Sum(&prod)
}

func within(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b))
}

func withDefaults(s *Settings) *Settings {
	out := Settings{}
	if s != nil {
		out = *s
	}
	if out.Step == 0 {
		out.Step = DefaultStep
	}
	if out.Tol == 0 {
		out.Tol = DefaultTol
	}
	return &out
}
