package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads pipeline parameters into a validated Params. An explicit
// path wins; otherwise viper looks for params.yaml in the working
// directory. Keys can be overridden through POWERCAST_* environment
// variables, and a missing file falls back to the built-in defaults.
func Load(configPath string) (*Params, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("params")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("POWERCAST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configPath == "" {
			return parseParams(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseParams(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("preprocess.target_column", "Global_active_power")
	v.SetDefault("preprocess.test_split_ratio", 0.2)

	v.SetDefault("train.features", []string{
		"Global_active_power",
		"hour_of_day",
		"day_of_week",
		"month",
		"year",
	})

	v.SetDefault("data.raw_path", "data/raw/household_power_consumption.txt")
	v.SetDefault("data.prepared_path", "data/raw/household_power_consumption_prepared.csv")
	v.SetDefault("data.processed_dir", "data/processed")
	v.SetDefault("data.models_dir", "models")
	v.SetDefault("data.metrics_dir", "metrics")

	v.SetDefault("validation.plots_dir", "plots")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

func parseParams(v *viper.Viper) (*Params, error) {
	var params Params

	if err := v.Unmarshal(&params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &params, nil
}

// DefaultParams returns default pipeline parameters
func DefaultParams() *Params {
	return &Params{
		Preprocess: PreprocessConfig{
			TargetColumn:   "Global_active_power",
			TestSplitRatio: 0.2,
		},
		Train: TrainConfig{
			Features: []string{
				"Global_active_power",
				"hour_of_day",
				"day_of_week",
				"month",
				"year",
			},
		},
		Models: map[string]ModelConfig{
			"random_forest": {
				FileName: "random_forest.bin",
				Params: map[string]interface{}{
					"n_estimators": 100,
					"max_depth":    10,
					"seed":         42,
				},
			},
			"gradient_boosting": {
				FileName: "gradient_boosting.bin",
				Params: map[string]interface{}{
					"n_estimators":  100,
					"learning_rate": 0.1,
					"max_depth":     3,
					"seed":          42,
				},
			},
			"hist_gradient_boosting": {
				FileName: "hist_gradient_boosting.bin",
				Params: map[string]interface{}{
					"n_estimators":  100,
					"learning_rate": 0.1,
					"num_leaves":    31,
					"seed":          42,
				},
			},
		},
		Validation: ValidationConfig{
			PlotsDir: "plots",
		},
		Data: DataConfig{
			RawPath:      "data/raw/household_power_consumption.txt",
			PreparedPath: "data/raw/household_power_consumption_prepared.csv",
			ProcessedDir: "data/processed",
			ModelsDir:    "models",
			MetricsDir:   "metrics",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
