package config

import (
	"os"
	"path/filepath"
)

// EnsureDirectories ensures all output directories exist
func (p *Params) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(p.Data.PreparedPath),
		p.Data.ProcessedDir,
		p.Data.ModelsDir,
		p.Data.MetricsDir,
		p.Validation.PlotsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// ProcessedPath returns the full path for a processed data file
func (c *DataConfig) ProcessedPath(filename string) string {
	return filepath.Join(c.ProcessedDir, filename)
}

// ModelPath returns the full path for a model artifact
func (c *DataConfig) ModelPath(filename string) string {
	return filepath.Join(c.ModelsDir, filename)
}

// MetricsPath returns the metrics JSON path for a model name
func (c *DataConfig) MetricsPath(modelName string) string {
	return filepath.Join(c.MetricsDir, modelName+"_metrics.json")
}
