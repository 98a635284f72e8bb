package dataset

import (
	"math"
	"testing"
	"time"
)

func TestAddCalendarFeatures(t *testing.T) {
	// 2007-01-01 was a Monday
	index := []time.Time{
		time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2007, 1, 1, 13, 30, 0, 0, time.UTC),
		time.Date(2007, 6, 17, 23, 0, 0, 0, time.UTC), // a Sunday
	}

	f := NewFrame(index)
	if err := f.AddColumn("power", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	if err := f.AddCalendarFeatures(); err != nil {
		t.Fatalf("AddCalendarFeatures failed: %v", err)
	}

	tests := []struct {
		col  string
		want []float64
	}{
		{ColHourOfDay, []float64{0, 13, 23}},
		{ColDayOfWeek, []float64{0, 0, 6}}, // Monday=0, Sunday=6
		{ColMonth, []float64{1, 1, 6}},
		{ColYear, []float64{2007, 2007, 2007}},
	}

	for _, tt := range tests {
		values, ok := f.Column(tt.col)
		if !ok {
			t.Fatalf("expected column %s", tt.col)
		}
		for i, want := range tt.want {
			if values[i] != want {
				t.Errorf("%s[%d]: expected %v, got %v", tt.col, i, want, values[i])
			}
		}
	}
}

func TestBuildSupervisedLagging(t *testing.T) {
	f := testFrame(t, map[string][]float64{
		"power":   {10, 20, 30, 40},
		"voltage": {230, 231, 232, 233},
	}, "power", "voltage")

	sup, err := BuildSupervised(f, "power", []string{"power", "voltage"})
	if err != nil {
		t.Fatalf("BuildSupervised failed: %v", err)
	}

	// First row has an undefined lag and is dropped
	if sup.Frame.Len() != 3 {
		t.Fatalf("expected 3 rows after lag+drop, got %d", sup.Frame.Len())
	}
	if sup.DroppedRows != 1 {
		t.Errorf("expected 1 dropped row, got %d", sup.DroppedRows)
	}

	cols := sup.Frame.Columns()
	wantCols := []string{"power", "power_lag1", "voltage_lag1"}
	if len(cols) != len(wantCols) {
		t.Fatalf("expected columns %v, got %v", wantCols, cols)
	}
	for i := range wantCols {
		if cols[i] != wantCols[i] {
			t.Errorf("column %d: expected %s, got %s", i, wantCols[i], cols[i])
		}
	}

	// Target keeps its original timestamps: y at t equals the source at t
	target, _ := sup.Frame.Column("power")
	for i, want := range []float64{20, 30, 40} {
		if target[i] != want {
			t.Errorf("target[%d]: expected %v, got %v", i, want, target[i])
		}
	}

	// Lagged value at row t equals the source value at row t-1
	lagged, _ := sup.Frame.Column("power_lag1")
	for i, want := range []float64{10, 20, 30} {
		if lagged[i] != want {
			t.Errorf("power_lag1[%d]: expected %v, got %v", i, want, lagged[i])
		}
	}

	laggedVoltage, _ := sup.Frame.Column("voltage_lag1")
	for i, want := range []float64{230, 231, 232} {
		if laggedVoltage[i] != want {
			t.Errorf("voltage_lag1[%d]: expected %v, got %v", i, want, laggedVoltage[i])
		}
	}
}

func TestBuildSupervisedDropsUnfilledGaps(t *testing.T) {
	nan := math.NaN()
	f := testFrame(t, map[string][]float64{
		"power": {nan, 20, 30, 40},
	}, "power")

	sup, err := BuildSupervised(f, "power", []string{"power"})
	if err != nil {
		t.Fatalf("BuildSupervised failed: %v", err)
	}

	// Row 0 (target NaN), row 1 (lag of NaN) both go
	if sup.Frame.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", sup.Frame.Len())
	}
	if sup.DroppedRows != 2 {
		t.Errorf("expected 2 dropped rows, got %d", sup.DroppedRows)
	}
}

func TestBuildSupervisedMissingColumns(t *testing.T) {
	f := testFrame(t, map[string][]float64{
		"power": {1, 2, 3},
	}, "power")

	if _, err := BuildSupervised(f, "missing", []string{"power"}); err == nil {
		t.Error("expected error for unknown target column")
	}

	if _, err := BuildSupervised(f, "power", []string{"missing"}); err == nil {
		t.Error("expected error for unknown feature column")
	}
}

func TestSupervisedXY(t *testing.T) {
	f := testFrame(t, map[string][]float64{
		"power":   {10, 20, 30},
		"voltage": {230, 231, 232},
	}, "power", "voltage")

	sup, err := BuildSupervised(f, "power", []string{"voltage"})
	if err != nil {
		t.Fatalf("BuildSupervised failed: %v", err)
	}

	x, y, err := sup.XY()
	if err != nil {
		t.Fatalf("XY failed: %v", err)
	}

	if cols := x.Columns(); len(cols) != 1 || cols[0] != "voltage_lag1" {
		t.Errorf("expected X columns [voltage_lag1], got %v", cols)
	}
	if cols := y.Columns(); len(cols) != 1 || cols[0] != "power" {
		t.Errorf("expected y columns [power], got %v", cols)
	}

	if x.Len() != y.Len() {
		t.Errorf("X and y row counts differ: %d vs %d", x.Len(), y.Len())
	}

	for i := range x.Index() {
		if !x.Index()[i].Equal(y.Index()[i]) {
			t.Errorf("X and y indices differ at row %d", i)
		}
	}
}
