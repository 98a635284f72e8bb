// Package dataset provides the time-indexed table the pipeline stages
// exchange on disk, together with the raw loader, feature engineering,
// and chronological splitting that turn raw power readings into a
// leakage-free supervised dataset.
package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

// IndexName is the name of the datetime index column in persisted CSVs.
const IndexName = "datetime"

// Frame is a time-indexed table of float64 columns. Missing values are
// NaN. After cleaning, the index is strictly increasing with no
// duplicate timestamps.
type Frame struct {
	index   []time.Time
	columns []string
	data    map[string][]float64
}

// NewFrame creates an empty frame over the given index.
func NewFrame(index []time.Time) *Frame {
	return &Frame{
		index:   index,
		columns: nil,
		data:    make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns the datetime index. The returned slice is not a copy.
func (f *Frame) Index() []time.Time {
	return f.index
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Column returns the values of the named column. The returned slice is
// not a copy.
func (f *Frame) Column(name string) ([]float64, bool) {
	values, ok := f.data[name]
	return values, ok
}

// AddColumn appends a column. The value count must match the row count.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(f.index))
	}
	if _, exists := f.data[name]; exists {
		return fmt.Errorf("column %q already exists", name)
	}
	f.columns = append(f.columns, name)
	f.data[name] = values
	return nil
}

// Select returns a new frame with only the named columns, in the given
// order, sharing the index.
func (f *Frame) Select(names []string) (*Frame, error) {
	out := NewFrame(f.index)
	for _, name := range names {
		values, ok := f.data[name]
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		if err := out.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Slice returns a copy of rows [lo, hi).
func (f *Frame) Slice(lo, hi int) *Frame {
	index := make([]time.Time, hi-lo)
	copy(index, f.index[lo:hi])

	out := NewFrame(index)
	for _, name := range f.columns {
		values := make([]float64, hi-lo)
		copy(values, f.data[name][lo:hi])
		out.columns = append(out.columns, name)
		out.data[name] = values
	}
	return out
}

// SortByTime sorts rows by the index, preserving the relative order of
// equal timestamps.
func (f *Frame) SortByTime() {
	order := make([]int, len(f.index))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.index[order[a]].Before(f.index[order[b]])
	})

	f.reorder(order)
}

// DropDuplicateTimestamps removes rows whose timestamp repeats an
// earlier row, keeping the first occurrence. The index must already be
// sorted. Returns the number of rows dropped.
func (f *Frame) DropDuplicateTimestamps() int {
	if len(f.index) < 2 {
		return 0
	}

	keep := make([]int, 0, len(f.index))
	keep = append(keep, 0)
	for i := 1; i < len(f.index); i++ {
		if !f.index[i].Equal(f.index[keep[len(keep)-1]]) {
			keep = append(keep, i)
		}
	}

	dropped := len(f.index) - len(keep)
	if dropped > 0 {
		f.reorder(keep)
	}
	return dropped
}

// ForwardFill replaces NaN values with the most recent valid value in
// the same column. Leading NaN values stay missing.
func (f *Frame) ForwardFill() {
	for _, name := range f.columns {
		values := f.data[name]
		last := math.NaN()
		for i, v := range values {
			if math.IsNaN(v) {
				if !math.IsNaN(last) {
					values[i] = last
				}
				continue
			}
			last = v
		}
	}
}

// DropNaNRows returns a copy of the frame without rows containing any
// NaN value, along with the number of rows dropped.
func (f *Frame) DropNaNRows() (*Frame, int) {
	keep := make([]int, 0, len(f.index))
	for i := range f.index {
		clean := true
		for _, name := range f.columns {
			if math.IsNaN(f.data[name][i]) {
				clean = false
				break
			}
		}
		if clean {
			keep = append(keep, i)
		}
	}

	index := make([]time.Time, len(keep))
	for j, i := range keep {
		index[j] = f.index[i]
	}

	out := NewFrame(index)
	for _, name := range f.columns {
		src := f.data[name]
		values := make([]float64, len(keep))
		for j, i := range keep {
			values[j] = src[i]
		}
		out.columns = append(out.columns, name)
		out.data[name] = values
	}
	return out, len(f.index) - len(keep)
}

// Matrix returns the frame as a dense row-major matrix with columns in
// frame order. Returns nil for a frame with no rows or no columns.
func (f *Frame) Matrix() *mat.Dense {
	rows := len(f.index)
	cols := len(f.columns)
	if rows == 0 || cols == 0 {
		return nil
	}

	m := mat.NewDense(rows, cols, nil)
	for j, name := range f.columns {
		values := f.data[name]
		for i := 0; i < rows; i++ {
			m.Set(i, j, values[i])
		}
	}
	return m
}

// reorder rewrites the frame's rows according to the given source
// index order.
func (f *Frame) reorder(order []int) {
	index := make([]time.Time, len(order))
	for j, i := range order {
		index[j] = f.index[i]
	}
	f.index = index

	for _, name := range f.columns {
		src := f.data[name]
		values := make([]float64, len(order))
		for j, i := range order {
			values[j] = src[i]
		}
		f.data[name] = values
	}
}
