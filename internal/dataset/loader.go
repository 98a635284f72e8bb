package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// dayFirstLayouts parse the "Date Time" concatenation used by the raw
// household readings (day/month/year ordering).
var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2006-01-02 15:04:05",
}

// LoadReport summarizes what the raw loader had to repair or discard.
type LoadReport struct {
	Rows              int // rows in the returned frame
	DroppedBadTime    int // rows discarded for an unparseable timestamp
	DroppedDuplicates int // rows discarded for a repeated timestamp
	CoercedCells      int // non-numeric cells coerced to NaN
}

// LoadRaw reads a raw readings file into a time-indexed frame. It
// accepts the semicolon-delimited .txt layout with separate Date and
// Time columns, comma-delimited CSVs with a datetime column, and falls
// back to delimiter sniffing when the first attempt finds no usable
// timestamp columns. Content problems never fail the load: rows with
// unparseable timestamps are dropped and non-numeric cells become NaN,
// both counted in the report. Only I/O failures and the complete
// absence of a timestamp column return an error.
func LoadRaw(path string) (*Frame, *LoadReport, error) {
	delim := ','
	if strings.HasSuffix(path, ".txt") {
		delim = ';'
	}

	records, err := readDelimited(path, delim)
	if err != nil {
		return nil, nil, err
	}

	frame, report, ok := frameFromRecords(records)
	if !ok {
		// Wrong delimiter assumption; retry with the sniffed one.
		sniffed, found := sniffDelimiter(path)
		if found && sniffed != delim {
			records, err = readDelimited(path, sniffed)
			if err != nil {
				return nil, nil, err
			}
			frame, report, ok = frameFromRecords(records)
		}
		if !ok {
			return nil, nil, fmt.Errorf("no parseable timestamp column in %s", path)
		}
	}

	frame.SortByTime()
	report.DroppedDuplicates = frame.DropDuplicateTimestamps()
	report.Rows = frame.Len()
	return frame, report, nil
}

// readDelimited reads the whole file with the given field separator.
func readDelimited(path string, delim rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// sniffDelimiter inspects the first line and picks the separator that
// occurs most often.
func sniffDelimiter(path string) (rune, bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		return 0, false
	}
	line := scanner.Text()

	best, count := ',', 0
	for _, candidate := range []rune{';', ',', '\t'} {
		if c := strings.Count(line, string(candidate)); c > count {
			best, count = candidate, c
		}
	}
	if count == 0 {
		return 0, false
	}
	return best, true
}

// frameFromRecords builds a time-indexed frame from parsed records.
// Returns ok=false when no timestamp columns can be located, which
// signals a wrong delimiter assumption.
func frameFromRecords(records [][]string) (*Frame, *LoadReport, bool) {
	if len(records) == 0 {
		return nil, nil, false
	}

	header := records[0]
	if len(header) < 2 {
		// A single column usually means the delimiter was wrong.
		return nil, nil, false
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	dateCol, timeCol, tsCol := -1, -1, -1
	for j, name := range header {
		switch name {
		case "Date":
			dateCol = j
		case "Time":
			timeCol = j
		case IndexName:
			tsCol = j
		}
	}

	var layouts []string
	switch {
	case dateCol >= 0 && timeCol >= 0:
		layouts = dayFirstLayouts
	case tsCol >= 0:
		layouts = readLayouts
	default:
		// Last resort: treat the first column as the timestamp.
		tsCol = 0
		layouts = append(append([]string{}, readLayouts...), dayFirstLayouts...)
	}

	skip := map[int]bool{}
	if dateCol >= 0 && timeCol >= 0 {
		skip[dateCol] = true
		skip[timeCol] = true
	} else {
		skip[tsCol] = true
	}

	names := make([]string, 0, len(header))
	for j, name := range header {
		if !skip[j] {
			names = append(names, name)
		}
	}

	report := &LoadReport{}
	index := make([]time.Time, 0, len(records)-1)
	values := make(map[string][]float64, len(names))
	for _, name := range names {
		values[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		// Normalize ragged rows to the header width.
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}

		var raw string
		if dateCol >= 0 && timeCol >= 0 {
			raw = strings.TrimSpace(record[dateCol]) + " " + strings.TrimSpace(record[timeCol])
		} else {
			raw = record[tsCol]
		}

		ts, err := parseTimestamp(raw, layouts)
		if err != nil {
			report.DroppedBadTime++
			continue
		}
		index = append(index, ts)

		col := 0
		for j := range header {
			if skip[j] {
				continue
			}
			values[names[col]] = append(values[names[col]], coerceCell(record[j], report))
			col++
		}
	}

	if len(index) == 0 {
		return nil, nil, false
	}

	frame := NewFrame(index)
	for _, name := range names {
		frame.columns = append(frame.columns, name)
		frame.data[name] = values[name]
	}
	return frame, report, true
}

// coerceCell converts a raw cell to float64. Empty cells are missing;
// non-empty cells that fail to parse are coerced to NaN and counted.
func coerceCell(s string, report *LoadReport) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		report.CoercedCells++
		return math.NaN()
	}
	return v
}
