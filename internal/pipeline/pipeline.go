// Package pipeline wires the three forecasting stages together. Each
// stage reads its inputs from disk and writes its outputs to disk, so
// stages can run as separate processes in sequence: preprocess builds
// the supervised train/test CSVs from raw readings, train fits one
// configured model and persists it, evaluate scores a persisted model
// on the held-out rows.
package pipeline

import (
	"fmt"

	"github.com/powercastio/powercast/internal/config"
	"github.com/powercastio/powercast/internal/dataset"
	"github.com/powercastio/powercast/internal/logging"
)

// Processed file names under the processed data directory.
const (
	xTrainFile = "X_train.csv"
	xTestFile  = "X_test.csv"
	yTrainFile = "y_train.csv"
	yTestFile  = "y_test.csv"
)

// Pipeline runs forecasting stages against one configuration.
type Pipeline struct {
	cfg *config.Params
	log *logging.Logger
}

// New creates a pipeline over the given configuration.
func New(cfg *config.Params, log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Global()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// readFrame loads a processed CSV written by an earlier stage.
func readFrame(path string) (*dataset.Frame, error) {
	f, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if f.Len() == 0 {
		return nil, fmt.Errorf("%s contains no rows", path)
	}
	return f, nil
}

// targetColumn pulls the target series out of a y frame. Like the
// stored y CSVs, the first data column is the target.
func targetColumn(f *dataset.Frame) ([]float64, error) {
	cols := f.Columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("target frame has no columns")
	}
	values, _ := f.Column(cols[0])
	return values, nil
}
