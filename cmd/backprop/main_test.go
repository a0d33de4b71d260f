package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/born-ml/backprop/internal/serialization"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "backprop "+version+"\n", out)
}

func TestTrainCmd(t *testing.T) {
	out, err := execute(t, "train", "--epochs", "150", "--log-every", "50", "--seed", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "training on 150 samples, 3 classes, hidden 16")
	assert.Contains(t, out, "epoch    1")
	assert.Contains(t, out, "epoch  150")
	assert.Contains(t, out, "final loss")
}

func TestTrainCmd_InvalidFlags(t *testing.T) {
	_, err := execute(t, "train", "--epochs", "0")
	assert.Error(t, err)

	_, err = execute(t, "train", "--classes", "1")
	assert.Error(t, err)

	_, err = execute(t, "train", "--samples", "-1")
	assert.ErrorContains(t, err, "sample")

	_, err = execute(t, "train", "--unknown")
	assert.Error(t, err)
}

func TestTrain_LearnsBlobs(t *testing.T) {
	var out bytes.Buffer
	res, err := train(&out, trainConfig{
		Epochs:   200,
		Hidden:   16,
		Classes:  3,
		Samples:  40,
		LR:       0.5,
		Momentum: 0.9,
		Reg:      1e-4,
		Seed:     11,
	})
	require.NoError(t, err)

	assert.Greater(t, res.Accuracy, 0.9)
	assert.Less(t, res.Loss, 0.5)
}

func TestGradcheckCmd(t *testing.T) {
	out, err := execute(t, "gradcheck", "--seed", "5")
	require.NoError(t, err, out)

	for _, name := range []string{
		"softmax_with_cross_entropy",
		"l2_regularization",
		"relu",
		"fully_connected",
		"fully_connected.W",
		"fully_connected.B",
	} {
		assert.Contains(t, out, "ok   "+name+"\n")
	}
}

func TestGradcheckCmd_FailsWithZeroTolerance(t *testing.T) {
	out, err := execute(t, "gradcheck", "--tol", "1e-300")
	assert.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, out, "FAIL")
}

func TestTrainSave_Eval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobs.bprp")

	out, err := execute(t, "train", "--epochs", "200", "--log-every", "0", "--seed", "4", "--save", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "saved "+path)

	ckpt, err := serialization.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "classifier", ckpt.Header.ModelType)
	require.NotNil(t, ckpt.Header.CheckpointMeta)
	assert.Equal(t, 200, ckpt.Header.CheckpointMeta.Epoch)
	assert.Len(t, ckpt.Tensors, 4)

	var buf bytes.Buffer
	acc, err := evaluate(&buf, evalConfig{Model: path, Samples: 30, Seed: 99})
	require.NoError(t, err)
	assert.Greater(t, acc, 0.9)
	assert.Contains(t, buf.String(), "on 90 samples")
}

func TestEvalCmd_Errors(t *testing.T) {
	_, err := execute(t, "eval")
	assert.Error(t, err, "--model is required")

	_, err = execute(t, "eval", "--model", filepath.Join(t.TempDir(), "missing.bprp"))
	assert.Error(t, err)
}
