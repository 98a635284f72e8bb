package regression

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

func init() {
	RegisterRegressor("random_forest", NewRandomForest)
}

// RandomForest averages bootstrap-bagged regression trees. Each tree
// sees a bootstrap resample of the training rows and a random feature
// subset at every split.
type RandomForest struct {
	NEstimators    int
	MaxDepth       int
	MinSamplesLeaf int
	MaxFeatures    float64
	Seed           int64

	Trees       []*TreeNode
	NumFeatures int
}

// NewRandomForest builds an unfitted forest from hyperparameters,
// rejecting unknown keys and out-of-range values.
func NewRandomForest(hp Hyperparams) (Regressor, error) {
	if err := hp.Validate("n_estimators", "max_depth", "min_samples_leaf", "max_features", "seed"); err != nil {
		return nil, err
	}
	f := &RandomForest{
		NEstimators:    hp.Int("n_estimators", 100),
		MaxDepth:       hp.Int("max_depth", 10),
		MinSamplesLeaf: hp.Int("min_samples_leaf", 1),
		MaxFeatures:    hp.Float("max_features", 1.0/3.0),
		Seed:           hp.Int64("seed", 0),
	}
	if f.NEstimators < 1 {
		return nil, fmt.Errorf("n_estimators must be positive, got %d", f.NEstimators)
	}
	if f.MaxDepth < 1 {
		return nil, fmt.Errorf("max_depth must be positive, got %d", f.MaxDepth)
	}
	if f.MinSamplesLeaf < 1 {
		return nil, fmt.Errorf("min_samples_leaf must be positive, got %d", f.MinSamplesLeaf)
	}
	if f.MaxFeatures <= 0 || f.MaxFeatures > 1 {
		return nil, fmt.Errorf("max_features must be in (0, 1], got %v", f.MaxFeatures)
	}
	return f, nil
}

// Name implements Regressor.
func (f *RandomForest) Name() string { return "random_forest" }

// Fit implements Regressor.
func (f *RandomForest) Fit(X *mat.Dense, y []float64) error {
	numRows, numFeatures, err := checkTrainingSet(X, y)
	if err != nil {
		return err
	}
	rows := matrixRows(X)
	f.NumFeatures = numFeatures

	perSplit := int(math.Ceil(f.MaxFeatures * float64(numFeatures)))
	if perSplit < 1 {
		perSplit = 1
	}

	f.Trees = make([]*TreeNode, f.NEstimators)
	for t := 0; t < f.NEstimators; t++ {
		rng := rand.New(rand.NewSource(f.Seed + int64(t)))

		samples := make([]int, numRows)
		for i := range samples {
			samples[i] = rng.Intn(numRows)
		}

		builder := &treeBuilder{
			rows:           rows,
			target:         y,
			maxDepth:       f.MaxDepth,
			minSamplesLeaf: f.MinSamplesLeaf,
			maxFeatures:    perSplit,
			rng:            rng,
		}
		f.Trees[t] = builder.build(samples, 0)
	}
	return nil
}

// Predict implements Regressor.
func (f *RandomForest) Predict(X *mat.Dense) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("model has not been fitted")
	}
	if _, err := checkPredictSet(X, f.NumFeatures); err != nil {
		return nil, err
	}
	rows := matrixRows(X)
	out := make([]float64, len(rows))
	for i, row := range rows {
		sum := 0.0
		for _, tree := range f.Trees {
			sum += tree.predictRow(row)
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out, nil
}
