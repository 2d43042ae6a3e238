package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// TimeLayout is the canonical timestamp layout for CSV round trips.
const TimeLayout = "2006-01-02 15:04:05.000000"

// WriteCSV writes the frame with a "time" column first, timestamps rendered
// in TimeLayout. NaN values become empty cells.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time"}, f.order...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(header))
	for i, ts := range f.index {
		row[0] = ts.Format(TimeLayout)
		for j, name := range f.order {
			v := f.cols[name][i]
			if math.IsNaN(v) {
				row[j+1] = ""
			} else {
				row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a frame written by WriteCSV. Empty cells become NaN.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < 1 || header[0] != "time" {
		return nil, fmt.Errorf("first csv column must be \"time\", got %q", header)
	}

	names := header[1:]
	var index []time.Time
	values := make([][]float64, len(names))

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("csv line %d has %d fields, want %d", line, len(record), len(header))
		}

		ts, err := time.Parse(TimeLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp on line %d: %w", line, err)
		}
		index = append(index, ts)

		for j, cell := range record[1:] {
			if cell == "" {
				values[j] = append(values[j], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value %q on line %d: %w", cell, line, err)
			}
			values[j] = append(values[j], v)
		}
	}

	f := New(index)
	for j, name := range names {
		if err := f.AddColumn(name, values[j]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteFile writes the frame to a CSV file.
func (f *Frame) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads a frame from a CSV file.
func ReadFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}
