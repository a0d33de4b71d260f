package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/backprop/internal/tensor"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestShapeOf(t *testing.T) {
	assert.Equal(t, tensor.Shape{4}, tensor.ShapeOf(mat.NewVecDense(4, nil)))
	assert.Equal(t, tensor.Shape{2, 3}, tensor.ShapeOf(mat.NewDense(2, 3, nil)))
}

func TestShape_Methods(t *testing.T) {
	s := tensor.Shape{2, 3}

	assert.True(t, s.Equal(tensor.Shape{2, 3}))
	assert.False(t, s.Equal(tensor.Shape{3, 2}))
	assert.False(t, s.Equal(tensor.Shape{2, 3, 1}))
	assert.Equal(t, "(2, 3)", s.String())
	assert.Equal(t, "(5,)", tensor.Shape{5}.String())
}

func TestShapeError_WrapsErrShape(t *testing.T) {
	err := tensor.ShapeError("op", tensor.Shape{1, 2}, tensor.Shape{1, 3})
	assert.True(t, errors.Is(err, mat.ErrShape))
	assert.Contains(t, err.Error(), "op: got shape (1, 2), want (1, 3)")
}

func TestMustMatch(t *testing.T) {
	assert.NotPanics(t, func() { tensor.MustMatch("op", mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil)) })
	assert.Panics(t, func() { tensor.MustMatch("op", mat.NewDense(2, 2, nil), mat.NewDense(2, 3, nil)) })
}
