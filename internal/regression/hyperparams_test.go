package regression

import (
	"strings"
	"testing"
)

func TestHyperparamsGetters(t *testing.T) {
	hp := Hyperparams{
		"n_estimators":  50,
		"learning_rate": 0.05,
		"max_depth":     int64(6),
		"seed":          float64(42),
		"bad":           "not a number",
	}

	if got := hp.Int("n_estimators", 100); got != 50 {
		t.Errorf("Int(n_estimators) = %d, want 50", got)
	}
	if got := hp.Int("max_depth", 3); got != 6 {
		t.Errorf("Int(max_depth) = %d, want 6", got)
	}
	if got := hp.Int("missing", 10); got != 10 {
		t.Errorf("Int(missing) = %d, want default 10", got)
	}
	if got := hp.Int("bad", 7); got != 7 {
		t.Errorf("Int(bad) = %d, want default 7", got)
	}

	if got := hp.Float("learning_rate", 0.1); got != 0.05 {
		t.Errorf("Float(learning_rate) = %v, want 0.05", got)
	}
	if got := hp.Float("missing", 0.3); got != 0.3 {
		t.Errorf("Float(missing) = %v, want default 0.3", got)
	}

	if got := hp.Int64("seed", 0); got != 42 {
		t.Errorf("Int64(seed) = %d, want 42", got)
	}
	if got := hp.Int64("missing", 9); got != 9 {
		t.Errorf("Int64(missing) = %d, want default 9", got)
	}
}

func TestHyperparamsValidate(t *testing.T) {
	tests := []struct {
		name          string
		hp            Hyperparams
		accepted      []string
		expectError   bool
		errorContains string
	}{
		{
			name:        "all keys accepted",
			hp:          Hyperparams{"n_estimators": 10, "seed": 1},
			accepted:    []string{"n_estimators", "seed"},
			expectError: false,
		},
		{
			name:        "empty params always pass",
			hp:          Hyperparams{},
			accepted:    []string{"n_estimators"},
			expectError: false,
		},
		{
			name:          "unknown key rejected",
			hp:            Hyperparams{"n_trees": 10},
			accepted:      []string{"n_estimators"},
			expectError:   true,
			errorContains: "unknown hyperparameters [n_trees]",
		},
		{
			name:          "non-numeric value rejected",
			hp:            Hyperparams{"n_estimators": "lots"},
			accepted:      []string{"n_estimators"},
			expectError:   true,
			errorContains: "non-numeric value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hp.Validate(tt.accepted...)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err, tt.errorContains)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
