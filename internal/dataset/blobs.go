// Package dataset generates small synthetic classification problems for
// exercising the layers end to end.
package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// BlobsConfig describes a set of Gaussian clusters, one per class.
type BlobsConfig struct {
	Samples  int     // Samples per class (default: 50)
	Classes  int     // Number of classes (default: 3)
	Features int     // Input dimensionality, at least 2 (default: 2)
	Radius   float64 // Distance of cluster centers from the origin (default: 3)
	Spread   float64 // Standard deviation around each center (default: 0.5)
	Seed     uint64  // Seed for the random source
}

// Blobs draws cfg.Samples points around each of cfg.Classes centers.
//
// Centers sit evenly on a circle of cfg.Radius in the first two feature
// dimensions; remaining features are centered at 0. Rows are interleaved by
// class (0, 1, ..., k-1, 0, 1, ...), so any prefix is roughly balanced.
//
// Returns the (Samples*Classes, Features) inputs and one label per row.
func Blobs(cfg BlobsConfig) (*mat.Dense, []int, error) {
	cfg = cfg.withDefaults()
	if cfg.Features < 2 {
		return nil, nil, fmt.Errorf("dataset: need at least 2 features, got %d", cfg.Features)
	}
	if cfg.Samples < 1 {
		return nil, nil, fmt.Errorf("dataset: need at least 1 sample per class, got %d", cfg.Samples)
	}
	if cfg.Classes < 2 {
		return nil, nil, fmt.Errorf("dataset: need at least 2 classes, got %d", cfg.Classes)
	}

	noise := distuv.Normal{Mu: 0, Sigma: cfg.Spread, Src: rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)}

	n := cfg.Samples * cfg.Classes
	x := mat.NewDense(n, cfg.Features, nil)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		class := i % cfg.Classes
		angle := 2 * math.Pi * float64(class) / float64(cfg.Classes)
		labels[i] = class

		row := x.RawRowView(i)
		for j := range row {
			row[j] = noise.Rand()
		}
		row[0] += cfg.Radius * math.Cos(angle)
		row[1] += cfg.Radius * math.Sin(angle)
	}
	return x, labels, nil
}

func (c BlobsConfig) withDefaults() BlobsConfig {
	if c.Samples == 0 {
		c.Samples = 50
	}
	if c.Classes == 0 {
		c.Classes = 3
	}
	if c.Features == 0 {
		c.Features = 2
	}
	if c.Radius == 0 {
		c.Radius = 3
	}
	if c.Spread == 0 {
		c.Spread = 0.5
	}
	return c
}
