package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/gradcheck"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/tensor"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// errChecksFailed is returned when at least one gradient check fails.
var errChecksFailed = errors.New("gradient checks failed")

func newGradcheckCmd() *cobra.Command {
	var (
		batch    int
		features int
		classes  int
		seed     uint64
		settings gradcheck.Settings
	)

	cmd := &cobra.Command{
		Use:   "gradcheck",
		Short: "Verify layer gradients with finite differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings.Seed = seed
			return runGradchecks(cmd.OutOrStdout(), batch, features, classes, seed, &settings)
		},
	}

	f := cmd.Flags()
	f.IntVar(&batch, "batch", 4, "rows of the random input")
	f.IntVar(&features, "features", 5, "input features")
	f.IntVar(&classes, "classes", 3, "output classes")
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.Float64Var(&settings.Step, "step", gradcheck.DefaultStep, "finite difference step")
	f.Float64Var(&settings.Tol, "tol", gradcheck.DefaultTol, "relative tolerance")

	return cmd
}

func runGradchecks(out io.Writer, batch, features, classes int, seed uint64, s *gradcheck.Settings) error {
	src := rand.NewPCG(seed, seed)
	x := tensor.Randn(batch, features, 1, src)
	scores := tensor.Randn(batch, classes, 1, src)
	targets := make([]int, batch)
	for i := range targets {
		targets[i] = i % classes
	}

	fc := nn.NewFullyConnected(features, classes, src)

	// ReLU is not differentiable at 0 and its epsilon bends the slope near
	// it, so its input is pushed at least 0.1 away from zero.
	var reluX mat.Dense
	reluX.Apply(func(_, _ int, v float64) float64 {
		return v + math.Copysign(0.1, v)
	}, x)

	checks := []struct {
		name string
		run  func() error
	}{
		{"softmax_with_cross_entropy", func() error {
			return gradcheck.CheckGradient(func(p *mat.Dense) (float64, *mat.Dense) {
				return nn.SoftmaxWithCrossEntropy(p, targets)
			}, scores, s)
		}},
		{"l2_regularization", func() error {
			return gradcheck.CheckGradient(func(w *mat.Dense) (float64, *mat.Dense) {
				return nn.L2Regularization(w, 0.01)
			}, x, s)
		}},
		{"relu", func() error { return gradcheck.CheckLayerGradient(nn.NewReLU(), &reluX, s) }},
		{"fully_connected", func() error { return gradcheck.CheckLayerGradient(fc, x, s) }},
		{"fully_connected.W", func() error { return gradcheck.CheckLayerParamGradient(fc, x, "W", s) }},
		{"fully_connected.B", func() error { return gradcheck.CheckLayerParamGradient(fc, x, "B", s) }},
	}

	failed := 0
	for _, c := range checks {
		if err := c.run(); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %-28s %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", c.name)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errChecksFailed, failed, len(checks))
	}
	return nil
}
