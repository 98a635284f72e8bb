package dataset

import (
	"fmt"
	"math"
)

// Calendar feature column names derived from the datetime index.
const (
	ColHourOfDay = "hour_of_day" // 0-23
	ColDayOfWeek = "day_of_week" // 0-6, Monday = 0
	ColMonth     = "month"       // 1-12
	ColYear      = "year"
)

// LagSuffix marks a column shifted by one step.
const LagSuffix = "_lag1"

// AddCalendarFeatures appends the four calendar columns computed from
// the index. They are deterministic functions of the timestamp alone,
// so adding them before any split cannot leak future information.
func (f *Frame) AddCalendarFeatures() error {
	n := f.Len()
	hours := make([]float64, n)
	days := make([]float64, n)
	months := make([]float64, n)
	years := make([]float64, n)

	for i, ts := range f.index {
		hours[i] = float64(ts.Hour())
		days[i] = float64((int(ts.Weekday()) + 6) % 7) // Monday = 0
		months[i] = float64(ts.Month())
		years[i] = float64(ts.Year())
	}

	for _, col := range []struct {
		name   string
		values []float64
	}{
		{ColHourOfDay, hours},
		{ColDayOfWeek, days},
		{ColMonth, months},
		{ColYear, years},
	} {
		if err := f.AddColumn(col.name, col.values); err != nil {
			return err
		}
	}
	return nil
}

// Supervised is the combined leakage-free dataset: the unshifted target
// column followed by the one-step-lagged feature columns, with rows
// containing missing values removed.
type Supervised struct {
	Frame       *Frame
	Target      string   // target column name in Frame
	FeatureCols []string // lagged column names in Frame, in feature order
	DroppedRows int      // rows removed for missing values
}

// BuildSupervised assembles the supervised dataset. The target is taken
// at its original timestamp; every feature column is shifted by one
// step so row t carries row t-1's value, which guarantees predictions
// for t use only information available strictly before t. The first
// row, whose lag is undefined, is always dropped.
func BuildSupervised(f *Frame, target string, features []string) (*Supervised, error) {
	targetValues, ok := f.Column(target)
	if !ok {
		return nil, fmt.Errorf("target column %q not found", target)
	}

	combined := NewFrame(f.index)
	if err := combined.AddColumn(target, targetValues); err != nil {
		return nil, err
	}

	lagged := make([]string, 0, len(features))
	for _, name := range features {
		values, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("feature column %q not found", name)
		}

		shifted := make([]float64, len(values))
		shifted[0] = math.NaN()
		copy(shifted[1:], values[:len(values)-1])

		laggedName := name + LagSuffix
		if err := combined.AddColumn(laggedName, shifted); err != nil {
			return nil, err
		}
		lagged = append(lagged, laggedName)
	}

	clean, dropped := combined.DropNaNRows()
	return &Supervised{
		Frame:       clean,
		Target:      target,
		FeatureCols: lagged,
		DroppedRows: dropped,
	}, nil
}

// XY separates the supervised frame into the feature matrix X and the
// single-column target frame y, both sharing the index.
func (s *Supervised) XY() (x, y *Frame, err error) {
	x, err = s.Frame.Select(s.FeatureCols)
	if err != nil {
		return nil, nil, err
	}
	y, err = s.Frame.Select([]string{s.Target})
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
