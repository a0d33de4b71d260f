package main

import (
	"fmt"
	"io"

	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/serialization"
	"github.com/spf13/cobra"
)

// evalConfig holds the flags of the eval command.
type evalConfig struct {
	Model   string
	Samples int
	Seed    uint64
}

func newEvalCmd() *cobra.Command {
	cfg := evalConfig{}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a saved classifier on synthetic blobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := evaluate(cmd.OutOrStdout(), cfg)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Model, "model", "", "checkpoint written by train --save")
	f.IntVar(&cfg.Samples, "samples", 50, "samples per class")
	f.Uint64Var(&cfg.Seed, "seed", 1, "random seed for the data")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func evaluate(out io.Writer, cfg evalConfig) (float64, error) {
	ckpt, err := serialization.LoadFile(cfg.Model)
	if err != nil {
		return 0, err
	}

	w1, ok1 := ckpt.Tensors["fc1.W"]
	w2, ok2 := ckpt.Tensors["fc2.W"]
	if !ok1 || !ok2 {
		return 0, fmt.Errorf("%s: %w: fc1.W and fc2.W are required", cfg.Model, serialization.ErrTensorNotFound)
	}
	nFeatures, nHidden := w1.Dims()
	_, nClasses := w2.Dims()

	model := newClassifier(nFeatures, nHidden, nClasses, nil)
	if err := ckpt.Restore(model.Named()); err != nil {
		return 0, fmt.Errorf("%s: %w", cfg.Model, err)
	}

	x, y, err := dataset.Blobs(dataset.BlobsConfig{
		Samples:  cfg.Samples,
		Classes:  nClasses,
		Features: nFeatures,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to generate data: %w", err)
	}

	acc := nn.Accuracy(model.Forward(x), y)
	fmt.Fprintf(out, "accuracy %.3f on %d samples\n", acc, len(y))
	return acc, nil
}
