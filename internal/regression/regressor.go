// Package regression provides the closed set of tree-ensemble
// regressors the training stage can instantiate, the hyperparameter
// handling around them, and persistence of fitted models as compressed
// artifacts.
package regression

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Regressor is a supervised regression model over a fixed feature set.
type Regressor interface {
	// Name returns the model type name
	Name() string

	// Fit trains the model on the given feature matrix and targets
	Fit(X *mat.Dense, y []float64) error

	// Predict returns one prediction per row of X
	Predict(X *mat.Dense) ([]float64, error)
}

// Factory constructs a regressor from a hyperparameter mapping.
type Factory func(hp Hyperparams) (Regressor, error)

// Registry of available model types
var regressorRegistry = make(map[string]Factory)

// RegisterRegressor registers a model type factory
func RegisterRegressor(name string, factory Factory) {
	regressorRegistry[name] = factory
}

// NewRegressor constructs a model instance by type name with the given
// hyperparameters. Names outside the registered set are rejected.
func NewRegressor(name string, hp Hyperparams) (Regressor, error) {
	factory, exists := regressorRegistry[name]
	if !exists {
		return nil, fmt.Errorf("unsupported model type: %s", name)
	}
	return factory(hp)
}

// ListRegressors returns all registered model type names in sorted
// order.
func ListRegressors() []string {
	names := make([]string, 0, len(regressorRegistry))
	for name := range regressorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matrixRows extracts the rows of X as float64 slices.
func matrixRows(X *mat.Dense) [][]float64 {
	n, _ := X.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}

// checkTrainingSet validates Fit inputs and returns the dimensions.
func checkTrainingSet(X *mat.Dense, y []float64) (rows, cols int, err error) {
	if X == nil {
		return 0, 0, fmt.Errorf("training set is empty")
	}
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, fmt.Errorf("training set is empty")
	}
	if len(y) != rows {
		return 0, 0, fmt.Errorf("X has %d rows but y has %d values", rows, len(y))
	}
	return rows, cols, nil
}

// checkPredictSet validates Predict inputs against the fitted width.
func checkPredictSet(X *mat.Dense, fittedCols int) (rows int, err error) {
	if X == nil {
		return 0, fmt.Errorf("prediction set is empty")
	}
	rows, cols := X.Dims()
	if rows == 0 {
		return 0, fmt.Errorf("prediction set is empty")
	}
	if cols != fittedCols {
		return 0, fmt.Errorf("model was fitted on %d features but X has %d", fittedCols, cols)
	}
	return rows, nil
}
