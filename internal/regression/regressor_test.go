package regression

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// stepData builds rows whose target jumps from 1 to 5 once feature 0
// crosses 0.5, with a second oscillating feature as a distractor.
func stepData(n int) (*mat.Dense, []float64) {
	X := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0 := float64(i) / float64(n-1)
		X.Set(i, 0, x0)
		X.Set(i, 1, math.Sin(float64(i)))
		if x0 > 0.5 {
			y[i] = 5
		} else {
			y[i] = 1
		}
	}
	return X, y
}

// waveData builds a smooth nonlinear target over three features.
func waveData(n int) (*mat.Dense, []float64) {
	X := mat.NewDense(n, 3, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		ts := float64(i) / 10
		X.Set(i, 0, math.Sin(ts))
		X.Set(i, 1, math.Cos(ts))
		X.Set(i, 2, float64(i%24))
		y[i] = 3*math.Sin(ts) + 0.5*float64(i%24)
	}
	return X, y
}

// meanBaselineRMSE is the training RMSE of always predicting the mean.
func meanBaselineRMSE(y []float64) float64 {
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	baseline := make([]float64, len(y))
	for i := range baseline {
		baseline[i] = mean
	}
	return CalculateRMSE(y, baseline)
}

func TestListRegressors(t *testing.T) {
	got := ListRegressors()
	want := []string{"gradient_boosting", "hist_gradient_boosting", "random_forest"}
	if len(got) != len(want) {
		t.Fatalf("ListRegressors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListRegressors()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewRegressorUnknownType(t *testing.T) {
	_, err := NewRegressor("extra_trees", nil)
	if err == nil {
		t.Fatal("expected error for unknown model type")
	}
	if !strings.Contains(err.Error(), "unsupported model type: extra_trees") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewRegressorRejectsUnknownHyperparams(t *testing.T) {
	for _, name := range ListRegressors() {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegressor(name, Hyperparams{"bogus": 1})
			if err == nil {
				t.Fatal("expected error for unknown hyperparameter")
			}
			if !strings.Contains(err.Error(), "unknown hyperparameters") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFitInputValidation(t *testing.T) {
	X, _ := stepData(20)

	for _, name := range ListRegressors() {
		t.Run(name, func(t *testing.T) {
			model, err := NewRegressor(name, Hyperparams{"n_estimators": 2})
			if err != nil {
				t.Fatalf("NewRegressor(%s): %v", name, err)
			}

			if err := model.Fit(nil, nil); err == nil {
				t.Error("Fit(nil) should fail")
			}
			if err := model.Fit(X, []float64{1, 2, 3}); err == nil {
				t.Error("Fit with mismatched target length should fail")
			} else if !strings.Contains(err.Error(), "X has 20 rows but y has 3 values") {
				t.Errorf("unexpected error: %v", err)
			}

			if _, err := model.Predict(X); err == nil {
				t.Error("Predict before Fit should fail")
			}
		})
	}
}

func TestPredictWidthValidation(t *testing.T) {
	X, y := stepData(40)

	for _, name := range ListRegressors() {
		t.Run(name, func(t *testing.T) {
			model, err := NewRegressor(name, Hyperparams{"n_estimators": 2, "min_samples_leaf": 1})
			if err != nil {
				t.Fatalf("NewRegressor(%s): %v", name, err)
			}
			if err := model.Fit(X, y); err != nil {
				t.Fatalf("Fit: %v", err)
			}

			wide := mat.NewDense(4, 3, nil)
			if _, err := model.Predict(wide); err == nil {
				t.Error("Predict with wrong feature count should fail")
			} else if !strings.Contains(err.Error(), "fitted on 2 features but X has 3") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
