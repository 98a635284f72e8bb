package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParamsValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  *Params
		wantErr bool
	}{
		{
			name:    "default params should be valid",
			params:  DefaultParams(),
			wantErr: false,
		},
		{
			name: "missing target column",
			params: &Params{
				Preprocess: PreprocessConfig{
					TargetColumn:   "",
					TestSplitRatio: 0.2,
				},
				Train:      DefaultParams().Train,
				Models:     DefaultParams().Models,
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "zero split ratio",
			params: &Params{
				Preprocess: PreprocessConfig{
					TargetColumn:   "Global_active_power",
					TestSplitRatio: 0,
				},
				Train:      DefaultParams().Train,
				Models:     DefaultParams().Models,
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "split ratio of one",
			params: &Params{
				Preprocess: PreprocessConfig{
					TargetColumn:   "Global_active_power",
					TestSplitRatio: 1.0,
				},
				Train:      DefaultParams().Train,
				Models:     DefaultParams().Models,
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "empty feature list",
			params: &Params{
				Preprocess: DefaultParams().Preprocess,
				Train:      TrainConfig{Features: nil},
				Models:     DefaultParams().Models,
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "duplicate feature",
			params: &Params{
				Preprocess: DefaultParams().Preprocess,
				Train:      TrainConfig{Features: []string{"Voltage", "Voltage"}},
				Models:     DefaultParams().Models,
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "model without file name",
			params: &Params{
				Preprocess: DefaultParams().Preprocess,
				Train:      DefaultParams().Train,
				Models: map[string]ModelConfig{
					"random_forest": {FileName: ""},
				},
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "missing plots dir",
			params: &Params{
				Preprocess: DefaultParams().Preprocess,
				Train:      DefaultParams().Train,
				Models:     DefaultParams().Models,
				Validation: ValidationConfig{PlotsDir: ""},
				Data:       DefaultParams().Data,
				Logging:    DefaultParams().Logging,
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			params: &Params{
				Preprocess: DefaultParams().Preprocess,
				Train:      DefaultParams().Train,
				Models:     DefaultParams().Models,
				Validation: DefaultParams().Validation,
				Data:       DefaultParams().Data,
				Logging: LoggingConfig{
					Level:  "invalid",
					Format: "json",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Params.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()

	if params.Preprocess.TargetColumn != "Global_active_power" {
		t.Errorf("expected target column Global_active_power, got %s", params.Preprocess.TargetColumn)
	}

	if params.Preprocess.TestSplitRatio != 0.2 {
		t.Errorf("expected test split ratio 0.2, got %v", params.Preprocess.TestSplitRatio)
	}

	if len(params.Models) != 3 {
		t.Errorf("expected 3 configured models, got %d", len(params.Models))
	}

	for _, name := range []string{"random_forest", "gradient_boosting", "hist_gradient_boosting"} {
		if _, ok := params.Models[name]; !ok {
			t.Errorf("expected model %s in defaults", name)
		}
	}

	if err := params.Validate(); err != nil {
		t.Errorf("default params should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")

	content := `preprocess:
  target_column: Global_active_power
  test_split_ratio: 0.25
train:
  features:
    - Global_active_power
    - Voltage
    - hour_of_day
models:
  random_forest:
    file_name: rf.bin
    params:
      n_estimators: 20
      max_depth: 5
validation:
  plots_dir: out/plots
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	params, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if params.Preprocess.TestSplitRatio != 0.25 {
		t.Errorf("expected test_split_ratio 0.25, got %v", params.Preprocess.TestSplitRatio)
	}

	if len(params.Train.Features) != 3 {
		t.Errorf("expected 3 features, got %d", len(params.Train.Features))
	}

	mc, err := params.Model("random_forest")
	if err != nil {
		t.Fatalf("Model(random_forest) error = %v", err)
	}
	if mc.FileName != "rf.bin" {
		t.Errorf("expected file_name rf.bin, got %s", mc.FileName)
	}

	// Defaults fill in sections the file omits
	if params.Data.ProcessedDir != "data/processed" {
		t.Errorf("expected default processed_dir, got %s", params.Data.ProcessedDir)
	}
	if params.Validation.PlotsDir != "out/plots" {
		t.Errorf("expected plots_dir out/plots, got %s", params.Validation.PlotsDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")

	if err := os.WriteFile(path, []byte("preprocess: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestModelLookup(t *testing.T) {
	params := DefaultParams()

	if _, err := params.Model("random_forest"); err != nil {
		t.Errorf("expected random_forest lookup to succeed: %v", err)
	}

	if _, err := params.Model("linear_regression"); err == nil {
		t.Error("expected error for unknown model name")
	}
}

func TestPathHelpers(t *testing.T) {
	params := DefaultParams()

	if got := params.Data.ProcessedPath("X_train.csv"); got != filepath.Join("data/processed", "X_train.csv") {
		t.Errorf("unexpected processed path: %s", got)
	}

	if got := params.Data.ModelPath("rf.bin"); got != filepath.Join("models", "rf.bin") {
		t.Errorf("unexpected model path: %s", got)
	}

	if got := params.Data.MetricsPath("random_forest"); got != filepath.Join("metrics", "random_forest_metrics.json") {
		t.Errorf("unexpected metrics path: %s", got)
	}
}
