// Package timeseries provides helpers for working with time-indexed frames:
// sample-rate estimation, time-range cuts and timestamp normalization.
package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/kyelljensen/kjcore/frame"
)

// CanonicalLayout is the layout NormalizeTime renders into.
const CanonicalLayout = "2006-01-02 15:04:05.000000"

// knownLayouts are tried in order when parsing a timestamp string.
var knownLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000000",
	time.RFC3339,
}

// SampleRate estimates the sample rate of a frame in Hz from the mean period
// between consecutive index timestamps. The frame needs at least two rows
// and a strictly increasing mean period.
func SampleRate(f *frame.Frame) (float64, error) {
	index := f.Index()
	if len(index) < 2 {
		return 0, fmt.Errorf("need at least 2 samples to estimate a sample rate, have %d", len(index))
	}

	var total time.Duration
	for i := 1; i < len(index); i++ {
		total += index[i].Sub(index[i-1])
	}
	mean := total.Seconds() / float64(len(index)-1)
	if mean <= 0 {
		return 0, fmt.Errorf("cannot estimate sample rate: mean period %.6fs is not positive", mean)
	}
	return 1 / mean, nil
}

// NormalizeTime parses s against the known layouts (plus any extra layouts
// given) and re-renders it in CanonicalLayout.
func NormalizeTime(s string, extraLayouts ...string) (string, error) {
	layouts := append(append([]string{}, knownLayouts...), extraLayouts...)
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format(CanonicalLayout), nil
		}
	}
	return "", fmt.Errorf("time string %q does not match any known layout", s)
}

// CutByTime returns the rows of f whose timestamps fall inside
// [start, end], both inclusive. The frame index must be sorted ascending.
func CutByTime(f *frame.Frame, start, end time.Time) (*frame.Frame, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end %s before start %s", end.Format(CanonicalLayout), start.Format(CanonicalLayout))
	}

	index := f.Index()
	lo := sort.Search(len(index), func(i int) bool { return !index[i].Before(start) })
	hi := sort.Search(len(index), func(i int) bool { return index[i].After(end) })
	return f.Slice(lo, hi)
}

// CutByTimeStrings is CutByTime with string bounds, parsed through
// NormalizeTime.
func CutByTimeStrings(f *frame.Frame, start, end string) (*frame.Frame, error) {
	startNorm, err := NormalizeTime(start)
	if err != nil {
		return nil, err
	}
	endNorm, err := NormalizeTime(end)
	if err != nil {
		return nil, err
	}

	startTs, err := time.Parse(CanonicalLayout, startNorm)
	if err != nil {
		return nil, err
	}
	endTs, err := time.Parse(CanonicalLayout, endNorm)
	if err != nil {
		return nil, err
	}
	return CutByTime(f, startTs, endTs)
}
