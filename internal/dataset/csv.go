package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// timeLayout is the index format used in persisted CSVs.
const timeLayout = "2006-01-02 15:04:05"

// readLayouts are the index formats accepted when reading CSVs back.
var readLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// WriteCSV persists the frame with its datetime index as the first
// column. NaN values are written as empty cells. The parent directory
// is created if needed, and an existing file is overwritten.
func (f *Frame) WriteCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := append([]string{IndexName}, f.columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for i := range f.index {
		record[0] = f.index[i].Format(timeLayout)
		for j, name := range f.columns {
			v := f.data[name][i]
			if math.IsNaN(v) {
				record[j+1] = ""
			} else {
				record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads a frame previously persisted with WriteCSV. The file
// must carry a datetime column; empty or non-numeric cells load as NaN.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	header := records[0]
	timeCol := -1
	for j, name := range header {
		if strings.TrimSpace(name) == IndexName {
			timeCol = j
			break
		}
	}
	if timeCol == -1 {
		return nil, fmt.Errorf("%s has no %q column", path, IndexName)
	}

	rows := records[1:]
	index := make([]time.Time, 0, len(rows))
	names := make([]string, 0, len(header)-1)
	for j, name := range header {
		if j != timeCol {
			names = append(names, strings.TrimSpace(name))
		}
	}
	values := make(map[string][]float64, len(names))
	for _, name := range names {
		values[name] = make([]float64, 0, len(rows))
	}

	for i, record := range rows {
		if len(record) != len(header) {
			return nil, fmt.Errorf("%s row %d has %d fields, expected %d", path, i+2, len(record), len(header))
		}

		ts, err := parseTimestamp(record[timeCol], readLayouts)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		index = append(index, ts)

		col := 0
		for j, cell := range record {
			if j == timeCol {
				continue
			}
			name := names[col]
			values[name] = append(values[name], parseCell(cell))
			col++
		}
	}

	out := NewFrame(index)
	for _, name := range names {
		out.columns = append(out.columns, name)
		out.data[name] = values[name]
	}
	return out, nil
}

// parseTimestamp tries each layout in order.
func parseTimestamp(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseCell converts a CSV cell to float64, NaN when empty or
// non-numeric.
func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
