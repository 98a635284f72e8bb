package regression

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

func init() {
	RegisterRegressor("gradient_boosting", NewGradientBoosting)
}

// GradientBoosting fits shallow regression trees to the residuals of
// the running prediction, least-squares boosting with shrinkage.
type GradientBoosting struct {
	NEstimators    int
	LearningRate   float64
	MaxDepth       int
	MinSamplesLeaf int
	Subsample      float64
	Seed           int64

	Init        float64
	Trees       []*TreeNode
	NumFeatures int
}

// NewGradientBoosting builds an unfitted booster from hyperparameters,
// rejecting unknown keys and out-of-range values.
func NewGradientBoosting(hp Hyperparams) (Regressor, error) {
	if err := hp.Validate("n_estimators", "learning_rate", "max_depth", "min_samples_leaf", "subsample", "seed"); err != nil {
		return nil, err
	}
	g := &GradientBoosting{
		NEstimators:    hp.Int("n_estimators", 100),
		LearningRate:   hp.Float("learning_rate", 0.1),
		MaxDepth:       hp.Int("max_depth", 3),
		MinSamplesLeaf: hp.Int("min_samples_leaf", 1),
		Subsample:      hp.Float("subsample", 1.0),
		Seed:           hp.Int64("seed", 0),
	}
	if g.NEstimators < 1 {
		return nil, fmt.Errorf("n_estimators must be positive, got %d", g.NEstimators)
	}
	if g.LearningRate <= 0 {
		return nil, fmt.Errorf("learning_rate must be positive, got %v", g.LearningRate)
	}
	if g.MaxDepth < 1 {
		return nil, fmt.Errorf("max_depth must be positive, got %d", g.MaxDepth)
	}
	if g.MinSamplesLeaf < 1 {
		return nil, fmt.Errorf("min_samples_leaf must be positive, got %d", g.MinSamplesLeaf)
	}
	if g.Subsample <= 0 || g.Subsample > 1 {
		return nil, fmt.Errorf("subsample must be in (0, 1], got %v", g.Subsample)
	}
	return g, nil
}

// Name implements Regressor.
func (g *GradientBoosting) Name() string { return "gradient_boosting" }

// Fit implements Regressor.
func (g *GradientBoosting) Fit(X *mat.Dense, y []float64) error {
	numRows, numFeatures, err := checkTrainingSet(X, y)
	if err != nil {
		return err
	}
	rows := matrixRows(X)
	g.NumFeatures = numFeatures

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	g.Init = sum / float64(numRows)

	current := make([]float64, numRows)
	for i := range current {
		current[i] = g.Init
	}
	residual := make([]float64, numRows)

	rng := rand.New(rand.NewSource(g.Seed))
	sampleSize := numRows
	if g.Subsample < 1 {
		sampleSize = int(g.Subsample * float64(numRows))
		if sampleSize < 1 {
			sampleSize = 1
		}
	}

	g.Trees = make([]*TreeNode, g.NEstimators)
	for t := 0; t < g.NEstimators; t++ {
		for i := range residual {
			residual[i] = y[i] - current[i]
		}

		var samples []int
		if sampleSize == numRows {
			samples = make([]int, numRows)
			for i := range samples {
				samples[i] = i
			}
		} else {
			// Without replacement, fresh draw per round
			samples = rng.Perm(numRows)[:sampleSize]
		}

		builder := &treeBuilder{
			rows:           rows,
			target:         residual,
			maxDepth:       g.MaxDepth,
			minSamplesLeaf: g.MinSamplesLeaf,
		}
		tree := builder.build(samples, 0)
		g.Trees[t] = tree

		for i, row := range rows {
			current[i] += g.LearningRate * tree.predictRow(row)
		}
	}
	return nil
}

// Predict implements Regressor.
func (g *GradientBoosting) Predict(X *mat.Dense) ([]float64, error) {
	if len(g.Trees) == 0 {
		return nil, fmt.Errorf("model has not been fitted")
	}
	if _, err := checkPredictSet(X, g.NumFeatures); err != nil {
		return nil, err
	}
	rows := matrixRows(X)
	out := make([]float64, len(rows))
	for i, row := range rows {
		pred := g.Init
		for _, tree := range g.Trees {
			pred += g.LearningRate * tree.predictRow(row)
		}
		out[i] = pred
	}
	return out, nil
}
