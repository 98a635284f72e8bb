package config

import (
	"fmt"
	"sort"
)

// Params represents the complete pipeline configuration (params.yaml)
type Params struct {
	Preprocess PreprocessConfig       `mapstructure:"preprocess"`
	Train      TrainConfig            `mapstructure:"train"`
	Models     map[string]ModelConfig `mapstructure:"models"`
	Validation ValidationConfig       `mapstructure:"validation"`
	Data       DataConfig             `mapstructure:"data"`
	Logging    LoggingConfig          `mapstructure:"logging"`
}

// PreprocessConfig represents preprocessing configuration
type PreprocessConfig struct {
	TargetColumn   string  `mapstructure:"target_column"`    // Column predicted by the models
	TestSplitRatio float64 `mapstructure:"test_split_ratio"` // Fraction of rows held out as the trailing test partition
}

// TrainConfig represents training configuration
type TrainConfig struct {
	Features []string `mapstructure:"features"` // Ordered column names lagged into the feature matrix
}

// ModelConfig represents a single configured model
type ModelConfig struct {
	FileName string                 `mapstructure:"file_name"` // Artifact filename under data.models_dir
	Params   map[string]interface{} `mapstructure:"params"`    // Hyperparameters passed to the model constructor
}

// ValidationConfig represents evaluation output configuration
type ValidationConfig struct {
	PlotsDir string `mapstructure:"plots_dir"` // Directory for residual plots
}

// DataConfig represents filesystem locations for pipeline artifacts
type DataConfig struct {
	RawPath      string `mapstructure:"raw_path"`      // Raw input file (.txt or .csv)
	PreparedPath string `mapstructure:"prepared_path"` // Normalized copy written before preprocessing
	ProcessedDir string `mapstructure:"processed_dir"` // X/y train/test CSVs
	ModelsDir    string `mapstructure:"models_dir"`    // Fitted model artifacts
	MetricsDir   string `mapstructure:"metrics_dir"`   // Per-model metrics JSON
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or a file path
	TimeFormat string `mapstructure:"time_format"` // console time layout: RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (p *Params) Validate() error {
	if err := p.Preprocess.Validate(); err != nil {
		return fmt.Errorf("preprocess config: %w", err)
	}

	if err := p.Train.Validate(); err != nil {
		return fmt.Errorf("train config: %w", err)
	}

	for name, mc := range p.Models {
		if err := mc.Validate(); err != nil {
			return fmt.Errorf("model %q config: %w", name, err)
		}
	}

	if err := p.Validation.Validate(); err != nil {
		return fmt.Errorf("validation config: %w", err)
	}

	if err := p.Data.Validate(); err != nil {
		return fmt.Errorf("data config: %w", err)
	}

	if err := p.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates preprocessing configuration
func (c *PreprocessConfig) Validate() error {
	if c.TargetColumn == "" {
		return fmt.Errorf("target_column is required")
	}

	if c.TestSplitRatio <= 0 || c.TestSplitRatio >= 1 {
		return fmt.Errorf("test_split_ratio must be strictly between 0 and 1, got %v", c.TestSplitRatio)
	}

	return nil
}

// Validate validates training configuration
func (c *TrainConfig) Validate() error {
	if len(c.Features) == 0 {
		return fmt.Errorf("features list is required")
	}

	seen := make(map[string]bool, len(c.Features))
	for _, f := range c.Features {
		if f == "" {
			return fmt.Errorf("features cannot contain empty names")
		}
		if seen[f] {
			return fmt.Errorf("duplicate feature %q", f)
		}
		seen[f] = true
	}

	return nil
}

// Validate validates a model entry
func (c *ModelConfig) Validate() error {
	if c.FileName == "" {
		return fmt.Errorf("file_name is required")
	}

	return nil
}

// Validate validates evaluation output configuration
func (c *ValidationConfig) Validate() error {
	if c.PlotsDir == "" {
		return fmt.Errorf("plots_dir is required")
	}

	return nil
}

// Validate validates data path configuration
func (c *DataConfig) Validate() error {
	if c.RawPath == "" {
		return fmt.Errorf("raw_path is required")
	}

	if c.PreparedPath == "" {
		return fmt.Errorf("prepared_path is required")
	}

	if c.ProcessedDir == "" {
		return fmt.Errorf("processed_dir is required")
	}

	if c.ModelsDir == "" {
		return fmt.Errorf("models_dir is required")
	}

	if c.MetricsDir == "" {
		return fmt.Errorf("metrics_dir is required")
	}

	return nil
}

// Validate checks the logging section.
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// Model returns the configuration for a named model.
// The name must match a key under the models section.
func (p *Params) Model(name string) (ModelConfig, error) {
	mc, ok := p.Models[name]
	if !ok {
		return ModelConfig{}, fmt.Errorf("model %q not found in configuration (known models: %v)", name, p.ModelNames())
	}
	return mc, nil
}

// ModelNames returns the configured model names in sorted order.
func (p *Params) ModelNames() []string {
	names := make([]string, 0, len(p.Models))
	for name := range p.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
