package pipeline

import (
	"context"
	"fmt"

	"github.com/powercastio/powercast/internal/dataset"
)

// Preprocess turns the raw readings file into the four supervised
// CSVs later stages consume. The raw file is normalized and written
// back as the prepared CSV first, then the prepared copy is re-read so
// feature building always starts from exactly what landed on disk.
func (p *Pipeline) Preprocess(ctx context.Context) error {
	log := p.log.WithContext(ctx)
	data := p.cfg.Data

	log.Info("starting preprocessing", "input", data.RawPath)

	raw, report, err := dataset.LoadRaw(data.RawPath)
	if err != nil {
		return fmt.Errorf("load raw readings: %w", err)
	}
	if report.DroppedBadTime > 0 || report.DroppedDuplicates > 0 || report.CoercedCells > 0 {
		log.Warn("raw readings needed cleanup",
			"dropped_bad_timestamps", report.DroppedBadTime,
			"dropped_duplicates", report.DroppedDuplicates,
			"coerced_cells", report.CoercedCells)
	}

	if err := raw.WriteCSV(data.PreparedPath); err != nil {
		return fmt.Errorf("write prepared readings: %w", err)
	}
	log.Info("prepared readings written", "path", data.PreparedPath, "rows", raw.Len())

	frame, err := dataset.ReadCSV(data.PreparedPath)
	if err != nil {
		return fmt.Errorf("reload prepared readings: %w", err)
	}

	frame.ForwardFill()
	if err := frame.AddCalendarFeatures(); err != nil {
		return fmt.Errorf("add calendar features: %w", err)
	}

	sup, err := dataset.BuildSupervised(frame, p.cfg.Preprocess.TargetColumn, p.cfg.Train.Features)
	if err != nil {
		return fmt.Errorf("build supervised dataset: %w", err)
	}
	log.Info("lagged features built",
		"rows", sup.Frame.Len(),
		"features", len(sup.FeatureCols),
		"dropped_rows", sup.DroppedRows)

	trainPart, testPart, err := dataset.SplitChronological(sup.Frame, p.cfg.Preprocess.TestSplitRatio)
	if err != nil {
		return fmt.Errorf("split dataset: %w", err)
	}

	splits := []struct {
		file    string
		part    *dataset.Frame
		columns []string
	}{
		{xTrainFile, trainPart, sup.FeatureCols},
		{xTestFile, testPart, sup.FeatureCols},
		{yTrainFile, trainPart, []string{sup.Target}},
		{yTestFile, testPart, []string{sup.Target}},
	}
	for _, s := range splits {
		selected, err := s.part.Select(s.columns)
		if err != nil {
			return fmt.Errorf("select columns for %s: %w", s.file, err)
		}
		path := data.ProcessedPath(s.file)
		if err := selected.WriteCSV(path); err != nil {
			return fmt.Errorf("write %s: %w", s.file, err)
		}
	}

	log.Info("preprocessing complete",
		"output_dir", data.ProcessedDir,
		"train_rows", trainPart.Len(),
		"test_rows", testPart.Len())
	return nil
}
