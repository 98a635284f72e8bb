package pipeline

import (
	"context"
	"fmt"

	"github.com/powercastio/powercast/internal/regression"
)

// Train fits the named model on the training CSVs and persists it as
// an artifact under the models directory. The model name must be one
// of the configured models, and its key doubles as the algorithm name
// in the model registry.
func (p *Pipeline) Train(ctx context.Context, modelName string) error {
	log := p.log.WithContext(ctx).With("model", modelName)

	modelCfg, err := p.cfg.Model(modelName)
	if err != nil {
		return err
	}

	xFrame, err := readFrame(p.cfg.Data.ProcessedPath(xTrainFile))
	if err != nil {
		return err
	}
	yFrame, err := readFrame(p.cfg.Data.ProcessedPath(yTrainFile))
	if err != nil {
		return err
	}
	y, err := targetColumn(yFrame)
	if err != nil {
		return err
	}
	if xFrame.Len() != len(y) {
		return fmt.Errorf("training data is inconsistent: X has %d rows, y has %d", xFrame.Len(), len(y))
	}

	model, err := regression.NewRegressor(modelName, regression.Hyperparams(modelCfg.Params))
	if err != nil {
		return err
	}

	log.Info("training model", "rows", xFrame.Len(), "features", len(xFrame.Columns()))
	X := xFrame.Matrix()
	if err := model.Fit(X, y); err != nil {
		return fmt.Errorf("fit %s: %w", modelName, err)
	}

	fitted, err := model.Predict(X)
	if err != nil {
		return fmt.Errorf("score training set: %w", err)
	}
	trainMAE := regression.CalculateMAE(y, fitted)
	trainRMSE := regression.CalculateRMSE(y, fitted)
	log.Info("training complete", "train_mae", trainMAE, "train_rmse", trainRMSE)

	art := regression.NewArtifact(model, p.cfg.Preprocess.TargetColumn,
		xFrame.Columns(), xFrame.Len(), trainMAE, trainRMSE)
	path := p.cfg.Data.ModelPath(modelCfg.FileName)
	if err := regression.SaveArtifact(path, art); err != nil {
		return err
	}

	log.Info("model saved", "path", path, "artifact_id", art.Metadata.ID.String())
	return nil
}
