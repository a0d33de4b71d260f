package nn

import (
	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Param is a trainable parameter of the model.
//
// It pairs a value with a gradient of the same shape. Layers only ever add
// into the gradient during Backward; clearing it between optimization steps
// is the job of whoever owns the training loop (see ZeroGrad).
//
// Example:
//
//	w := nn.NewParam(tensor.Randn(2, 3, 0.001, nil))
//	w.Accumulate(dw)
//	w.ZeroGrad()
type Param struct {
	value *mat.Dense // The parameter value
	grad  *mat.Dense // Accumulated gradient, same dims as value
}

// NewParam creates a parameter around value with a zero gradient.
//
// The parameter keeps a reference to value; updates through Value() are
// visible to the caller and vice versa.
func NewParam(value *mat.Dense) *Param {
	return &Param{
		value: value,
		grad:  tensor.ZerosLike(value),
	}
}

// Value returns the parameter value.
func (p *Param) Value() *mat.Dense {
	return p.value
}

// Grad returns the accumulated gradient.
func (p *Param) Grad() *mat.Dense {
	return p.grad
}

// Shape returns the shape of the value (and of the gradient).
func (p *Param) Shape() tensor.Shape {
	return tensor.ShapeOf(p.value)
}

// Accumulate adds g into the gradient.
//
// g must have the same dims as the value.
func (p *Param) Accumulate(g mat.Matrix) {
	tensor.MustMatch("nn.Param.Accumulate", g, p.grad)
	p.grad.Add(p.grad, g)
}

// ZeroGrad resets the gradient to zeros in place.
//
// Layers never call this. Call it before every fresh optimization step.
func (p *Param) ZeroGrad() {
	p.grad.Zero()
}
