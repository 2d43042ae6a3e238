// Package frame implements a small time-indexed data frame: ordered float64
// columns over a shared timestamp index. It is the carrier type the
// datastore, timeseries, plotting and latexexport packages exchange.
package frame

import (
	"fmt"
	"time"
)

// Frame is a set of equally long float64 columns sharing a timestamp index.
// Column order is preserved across round trips.
type Frame struct {
	index []time.Time
	order []string
	cols  map[string][]float64
}

// New creates a Frame over the given index.
func New(index []time.Time) *Frame {
	return &Frame{
		index: index,
		cols:  make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns the timestamp index. Callers must not modify it.
func (f *Frame) Index() []time.Time {
	return f.index
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

// AddColumn appends a named column. The value count must match the index
// length and the name must be unused.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("column %s has %d values, index has %d rows", name, len(values), len(f.index))
	}
	if _, exists := f.cols[name]; exists {
		return fmt.Errorf("column %s already exists", name)
	}
	f.order = append(f.order, name)
	f.cols[name] = values
	return nil
}

// Column returns the values of a named column. Callers must not modify the
// returned slice.
func (f *Frame) Column(name string) ([]float64, bool) {
	values, ok := f.cols[name]
	return values, ok
}

// At returns the value of a column at row i.
func (f *Frame) At(name string, i int) (float64, error) {
	values, ok := f.cols[name]
	if !ok {
		return 0, fmt.Errorf("no column %s", name)
	}
	if i < 0 || i >= len(values) {
		return 0, fmt.Errorf("row %d out of range (len %d)", i, len(values))
	}
	return values[i], nil
}

// Slice returns a new Frame over rows [i, j). The underlying arrays are
// shared with the receiver.
func (f *Frame) Slice(i, j int) (*Frame, error) {
	if i < 0 || j > f.Len() || i > j {
		return nil, fmt.Errorf("invalid slice bounds [%d, %d) for %d rows", i, j, f.Len())
	}
	out := New(f.index[i:j])
	for _, name := range f.order {
		if err := out.AddColumn(name, f.cols[name][i:j]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	index := make([]time.Time, len(f.index))
	copy(index, f.index)
	out := New(index)
	for _, name := range f.order {
		values := make([]float64, len(f.cols[name]))
		copy(values, f.cols[name])
		out.order = append(out.order, name)
		out.cols[name] = values
	}
	return out
}
