package dataset

import (
	"testing"
	"time"
)

func TestSplitChronological(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		ratio     float64
		wantTrain int
		wantTest  int
		wantErr   bool
	}{
		{name: "ratio 0.2 of 10", rows: 10, ratio: 0.2, wantTrain: 8, wantTest: 2},
		{name: "ratio 0.5 of 3 floors to 1", rows: 3, ratio: 0.5, wantTrain: 2, wantTest: 1},
		{name: "ratio 0.25 of 7 floors to 1", rows: 7, ratio: 0.25, wantTrain: 6, wantTest: 1},
		{name: "ratio too small", rows: 10, ratio: 0.01, wantErr: true},
		{name: "ratio consumes everything", rows: 2, ratio: 0.99, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(testIndex(tt.rows))
			values := make([]float64, tt.rows)
			for i := range values {
				values[i] = float64(i)
			}
			if err := f.AddColumn("v", values); err != nil {
				t.Fatalf("AddColumn failed: %v", err)
			}

			train, test, err := SplitChronological(f, tt.ratio)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for degenerate split")
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitChronological failed: %v", err)
			}

			if train.Len() != tt.wantTrain {
				t.Errorf("expected %d train rows, got %d", tt.wantTrain, train.Len())
			}
			if test.Len() != tt.wantTest {
				t.Errorf("expected %d test rows, got %d", tt.wantTest, test.Len())
			}

			// Every test timestamp postdates every train timestamp
			lastTrain := train.Index()[train.Len()-1]
			for _, ts := range test.Index() {
				if !ts.After(lastTrain) {
					t.Errorf("test timestamp %v does not postdate train end %v", ts, lastTrain)
				}
			}
		})
	}
}

func TestSplitEmptyFrame(t *testing.T) {
	f := NewFrame(nil)
	if _, _, err := SplitChronological(f, 0.5); err == nil {
		t.Error("expected error for empty table")
	}
}

// TestLagSplitScenario walks the full path for four hourly readings:
// lagging drops the first row, leaving three usable rows, and a 0.5
// ratio floors to a single-test-row split.
func TestLagSplitScenario(t *testing.T) {
	base := time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC)
	index := []time.Time{
		base,
		base.Add(1 * time.Hour),
		base.Add(2 * time.Hour),
		base.Add(3 * time.Hour),
	}

	f := NewFrame(index)
	if err := f.AddColumn("p", []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	sup, err := BuildSupervised(f, "p", []string{"p"})
	if err != nil {
		t.Fatalf("BuildSupervised failed: %v", err)
	}

	if sup.Frame.Len() != 3 {
		t.Fatalf("expected 3 usable rows after lagging, got %d", sup.Frame.Len())
	}

	train, test, err := SplitChronological(sup.Frame, 0.5)
	if err != nil {
		t.Fatalf("SplitChronological failed: %v", err)
	}

	// floor(3 * 0.5) = 1 test row
	if train.Len() != 2 || test.Len() != 1 {
		t.Fatalf("expected 2/1 split, got %d/%d", train.Len(), test.Len())
	}

	if !train.Index()[0].Equal(index[1]) || !train.Index()[1].Equal(index[2]) {
		t.Errorf("expected train rows at T+1h and T+2h, got %v", train.Index())
	}
	if !test.Index()[0].Equal(index[3]) {
		t.Errorf("expected test row at T+3h, got %v", test.Index())
	}
}
