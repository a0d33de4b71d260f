package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/nn"
	"github.com/born-ml/backprop/internal/optim"
	"github.com/born-ml/backprop/internal/serialization"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// trainConfig holds the flags of the train command.
type trainConfig struct {
	Epochs   int
	LogEvery int
	Hidden   int
	Classes  int
	Samples  int
	LR       float64
	Momentum float64
	Reg      float64
	Seed     uint64
	Save     string
}

func newTrainCmd() *cobra.Command {
	cfg := trainConfig{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a two-layer classifier on synthetic blobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := train(cmd.OutOrStdout(), cfg)
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Epochs, "epochs", 200, "number of full-batch epochs")
	f.IntVar(&cfg.LogEvery, "log-every", 20, "print progress every N epochs (0 disables)")
	f.IntVar(&cfg.Hidden, "hidden", 16, "hidden layer width")
	f.IntVar(&cfg.Classes, "classes", 3, "number of classes")
	f.IntVar(&cfg.Samples, "samples", 50, "samples per class")
	f.Float64Var(&cfg.LR, "lr", 0.5, "learning rate")
	f.Float64Var(&cfg.Momentum, "momentum", 0.9, "SGD momentum")
	f.Float64Var(&cfg.Reg, "reg", 1e-4, "L2 regularization strength")
	f.Uint64Var(&cfg.Seed, "seed", 1, "random seed for data and weights")
	f.StringVar(&cfg.Save, "save", "", "write the trained parameters to this checkpoint file")

	return cmd
}

// classifier is FullyConnected → ReLU → FullyConnected wired by hand.
type classifier struct {
	fc1  *nn.FullyConnected
	relu *nn.ReLU
	fc2  *nn.FullyConnected
}

func newClassifier(nInput, nHidden, nClasses int, src rand.Source) *classifier {
	return &classifier{
		fc1:  nn.NewFullyConnected(nInput, nHidden, src),
		relu: nn.NewReLU(),
		fc2:  nn.NewFullyConnected(nHidden, nClasses, src),
	}
}

func (c *classifier) Forward(x mat.Matrix) *mat.Dense {
	return c.fc2.Forward(c.relu.Forward(c.fc1.Forward(x)))
}

func (c *classifier) Backward(d *mat.Dense) error {
	d, err := c.fc2.Backward(d)
	if err != nil {
		return err
	}
	if d, err = c.relu.Backward(d); err != nil {
		return err
	}
	_, err = c.fc1.Backward(d)
	return err
}

func (c *classifier) Params() []*nn.Param {
	return optim.Collect(c.fc1, c.relu, c.fc2)
}

// Named returns the parameters keyed by "<layer>.<param>".
func (c *classifier) Named() map[string]*nn.Param {
	named := make(map[string]*nn.Param)
	for prefix, l := range map[string]nn.Layer{"fc1": c.fc1, "fc2": c.fc2} {
		for name, p := range l.Params() {
			named[prefix+"."+name] = p
		}
	}
	return named
}

// trainResult summarizes the last epoch.
type trainResult struct {
	Loss     float64
	Accuracy float64
}

func train(out io.Writer, cfg trainConfig) (trainResult, error) {
	if cfg.Epochs <= 0 {
		return trainResult{}, fmt.Errorf("epochs must be positive, got %d", cfg.Epochs)
	}
	if cfg.Hidden <= 0 {
		return trainResult{}, fmt.Errorf("hidden must be positive, got %d", cfg.Hidden)
	}

	x, y, err := dataset.Blobs(dataset.BlobsConfig{
		Samples: cfg.Samples,
		Classes: cfg.Classes,
		Seed:    cfg.Seed,
	})
	if err != nil {
		return trainResult{}, fmt.Errorf("failed to generate data: %w", err)
	}
	_, nFeatures := x.Dims()

	model := newClassifier(nFeatures, cfg.Hidden, cfg.Classes, rand.NewPCG(cfg.Seed, cfg.Seed+1))
	params := model.Params()
	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum})

	fmt.Fprintf(out, "training on %d samples, %d classes, hidden %d\n", len(y), cfg.Classes, cfg.Hidden)

	var res trainResult
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		optimizer.ZeroGrad()

		scores := model.Forward(x)
		loss, d := nn.SoftmaxWithCrossEntropy(scores, y)
		if err := model.Backward(d); err != nil {
			return trainResult{}, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		loss += optim.ApplyL2(params, cfg.Reg)
		optimizer.Step()

		res = trainResult{Loss: loss, Accuracy: nn.Accuracy(scores, y)}
		if cfg.LogEvery > 0 && (epoch%cfg.LogEvery == 0 || epoch == 1) {
			fmt.Fprintf(out, "epoch %4d  loss %.4f  accuracy %.3f\n", epoch, res.Loss, res.Accuracy)
		}
	}

	fmt.Fprintf(out, "final loss %.4f  accuracy %.3f\n", res.Loss, res.Accuracy)

	if cfg.Save != "" {
		err := serialization.SaveFile(cfg.Save, serialization.StateDict(model.Named()), serialization.Header{
			ModelType: "classifier",
			CheckpointMeta: &serialization.CheckpointMeta{
				Epoch:           cfg.Epochs,
				Loss:            res.Loss,
				OptimizerType:   "SGD",
				OptimizerConfig: map[string]float64{"lr": cfg.LR, "momentum": cfg.Momentum, "reg": cfg.Reg},
			},
		})
		if err != nil {
			return res, fmt.Errorf("failed to save checkpoint: %w", err)
		}
		fmt.Fprintf(out, "saved %s\n", cfg.Save)
	}
	return res, nil
}
