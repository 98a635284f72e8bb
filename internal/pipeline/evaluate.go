package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/powercastio/powercast/internal/evaluation"
	"github.com/powercastio/powercast/internal/regression"
)

// Evaluate loads the named model's artifact, scores it on the test
// CSVs, and writes the metrics JSON and both residual plots.
func (p *Pipeline) Evaluate(ctx context.Context, modelName string) error {
	log := p.log.WithContext(ctx).With("model", modelName)

	modelCfg, err := p.cfg.Model(modelName)
	if err != nil {
		return err
	}

	artPath := p.cfg.Data.ModelPath(modelCfg.FileName)
	art, err := regression.LoadArtifact(artPath)
	if err != nil {
		return err
	}
	log.Info("model loaded",
		"path", artPath,
		"algorithm", art.Metadata.Algorithm,
		"artifact_id", art.Metadata.ID.String())

	xFrame, err := readFrame(p.cfg.Data.ProcessedPath(xTestFile))
	if err != nil {
		return err
	}
	yFrame, err := readFrame(p.cfg.Data.ProcessedPath(yTestFile))
	if err != nil {
		return err
	}
	actual, err := targetColumn(yFrame)
	if err != nil {
		return err
	}

	if err := checkFeatureColumns(art.Metadata.Features, xFrame.Columns()); err != nil {
		return err
	}

	predictions, err := art.Model.Predict(xFrame.Matrix())
	if err != nil {
		return fmt.Errorf("predict test set: %w", err)
	}

	metrics := evaluation.Evaluate(actual, predictions)
	metricsPath := p.cfg.Data.MetricsPath(modelName)
	if err := evaluation.WriteMetrics(metricsPath, metrics); err != nil {
		return err
	}
	log.Info("metrics written",
		"path", metricsPath,
		"mae", metrics.MAE,
		"rmse", metrics.RMSE,
		"r2_score", metrics.R2)

	residuals, err := evaluation.Residuals(actual, predictions)
	if err != nil {
		return err
	}

	plotsDir := p.cfg.Validation.PlotsDir
	scatterPath := filepath.Join(plotsDir, modelName+"_residuals_over_time.png")
	if err := evaluation.PlotResidualsOverTime(scatterPath, modelName, xFrame.Index(), residuals); err != nil {
		return err
	}
	histPath := filepath.Join(plotsDir, modelName+"_residuals_histogram.png")
	if err := evaluation.PlotResidualHistogram(histPath, modelName, residuals); err != nil {
		return err
	}

	log.Info("validation plots saved", "dir", plotsDir)
	return nil
}

// checkFeatureColumns rejects a test matrix whose columns differ from
// the columns the model was fitted on, in name or order.
func checkFeatureColumns(fitted, got []string) error {
	if len(fitted) != len(got) {
		return fmt.Errorf("model was fitted on %d feature columns but test set has %d", len(fitted), len(got))
	}
	for i := range fitted {
		if fitted[i] != got[i] {
			return fmt.Errorf("feature column %d is %q but model was fitted on %q", i, got[i], fitted[i])
		}
	}
	return nil
}
