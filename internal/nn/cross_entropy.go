package nn

import (
	"math"

	"github.com/born-ml/backprop/internal/tensor"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax computes class probabilities from raw scores.
//
// Input shape: [batch_size, num_classes] or [num_classes]
// Output shape: [batch_size, num_classes], every row sums to 1
//
// The row maximum is subtracted before exponentiating so large scores do
// not overflow:
//
//	Softmax(z)[i] = exp(z[i] - max(z)) / Σ exp(z[j] - max(z))
func Softmax(predictions mat.Matrix) *mat.Dense {
	probs := tensor.Batch(predictions)
	for i, m := range tensor.RowMax(probs) {
		row := probs.RawRowView(i)
		floats.AddConst(-m, row)
		for j, v := range row {
			row[j] = math.Exp(v)
		}
		floats.Scale(1/floats.Sum(row), row)
	}
	return probs
}

// CrossEntropyLoss computes the mean cross-entropy of probs against targets.
//
//	Loss = mean_i(-log(probs[i, targets[i]]))
//
// Parameters:
//   - probs: Probabilities with shape [batch_size, num_classes] or [num_classes]
//   - targets: True class index per row, len(targets) == batch_size
//
// A selected probability of exactly 0 yields +Inf. Target indices are not
// range checked here; gonum panics on an out-of-range index.
func CrossEntropyLoss(probs mat.Matrix, targets []int) float64 {
	p := tensor.AsBatch(probs)
	checkTargets("nn.CrossEntropyLoss", p, targets)

	var loss float64
	for i, t := range targets {
		loss -= math.Log(p.At(i, t))
	}
	return loss / float64(len(targets))
}

// SoftmaxWithCrossEntropy computes the cross-entropy loss of raw scores and
// its gradient with respect to those scores.
//
// Parameters:
//   - predictions: Raw scores with shape [batch_size, num_classes] or [num_classes]
//   - targets: True class index per row, len(targets) == batch_size
//
// Returns:
//   - loss: CrossEntropyLoss(Softmax(predictions), targets)
//   - dprediction: (Softmax(predictions) - one_hot(targets)) / batch_size,
//     shape [batch_size, num_classes]
//
// The loss is a batch mean, hence the division by batch_size. Every row of
// dprediction sums to 0.
func SoftmaxWithCrossEntropy(predictions mat.Matrix, targets []int) (float64, *mat.Dense) {
	probs := Softmax(predictions)
	checkTargets("nn.SoftmaxWithCrossEntropy", probs, targets)

	loss := CrossEntropyLoss(probs, targets)

	r, c := probs.Dims()
	var d mat.Dense
	d.Sub(probs, tensor.OneHot(targets, c))
	d.Scale(1/float64(r), &d)

	return loss, &d
}

// Predict returns the highest scoring class of every row.
func Predict(scores mat.Matrix) []int {
	return tensor.ArgMaxRows(scores)
}

// Accuracy computes classification accuracy for a batch.
//
// Parameters:
//   - scores: Model output [batch_size, num_classes]
//   - targets: Ground truth class indices [batch_size]
//
// Returns the fraction of rows whose highest score is the target class.
func Accuracy(scores mat.Matrix, targets []int) float64 {
	checkTargets("nn.Accuracy", tensor.AsBatch(scores), targets)

	correct := 0
	for i, p := range Predict(scores) {
		if p == targets[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(targets))
}

// checkTargets panics unless there is exactly one target per row of m.
func checkTargets(op string, m mat.Matrix, targets []int) {
	r, _ := m.Dims()
	if len(targets) != r {
		panic(tensor.ShapeError(op, tensor.Shape{len(targets)}, tensor.Shape{r}))
	}
}
