// Package evaluation scores fitted models on held-out data and writes
// the metrics report and residual plots.
package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/powercastio/powercast/internal/regression"
)

// Metrics is the evaluation report for one model.
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2_score"`
}

// Evaluate scores predictions against the actual series.
func Evaluate(actual, predicted []float64) Metrics {
	return Metrics{
		MAE:  regression.CalculateMAE(actual, predicted),
		RMSE: regression.CalculateRMSE(actual, predicted),
		R2:   regression.CalculateR2(actual, predicted),
	}
}

// Residuals returns actual minus predicted, pairwise.
func Residuals(actual, predicted []float64) ([]float64, error) {
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf("actual has %d values but predicted has %d", len(actual), len(predicted))
	}
	res := make([]float64, len(actual))
	for i := range actual {
		res[i] = actual[i] - predicted[i]
	}
	return res, nil
}

// WriteMetrics writes the report as indented JSON, replacing any
// previous report at the path.
func WriteMetrics(path string, m Metrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
