package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyelljensen/kjcore/frame"
)

func frameAt(start time.Time, step time.Duration, n int) *frame.Frame {
	index := make([]time.Time, n)
	values := make([]float64, n)
	for i := range index {
		index[i] = start.Add(time.Duration(i) * step)
		values[i] = float64(i)
	}
	f := frame.New(index)
	if err := f.AddColumn("x", values); err != nil {
		panic(err)
	}
	return f
}

func TestSampleRate(t *testing.T) {
	start := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("20 Hz", func(t *testing.T) {
		f := frameAt(start, 50*time.Millisecond, 100)
		hz, err := SampleRate(f)
		require.NoError(t, err)
		assert.InDelta(t, 20.0, hz, 1e-9)
	})

	t.Run("1 Hz", func(t *testing.T) {
		f := frameAt(start, time.Second, 10)
		hz, err := SampleRate(f)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, hz, 1e-9)
	})

	t.Run("too few samples", func(t *testing.T) {
		f := frameAt(start, time.Second, 1)
		_, err := SampleRate(f)
		assert.Error(t, err)
	})

	t.Run("zero period", func(t *testing.T) {
		f := frameAt(start, 0, 5)
		_, err := SampleRate(f)
		assert.Error(t, err)
	})
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"2023-05-01 12:00:00":        "2023-05-01 12:00:00.000000",
		"2023-05-01 12:00:00.500000": "2023-05-01 12:00:00.500000",
		"2023-05-01T12:00:00":        "2023-05-01 12:00:00.000000",
		"2023-05-01T12:00:00.250000": "2023-05-01 12:00:00.250000",
	}
	for in, want := range cases {
		got, err := NormalizeTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	t.Run("unknown layout", func(t *testing.T) {
		_, err := NormalizeTime("01.05.2023 12:00")
		assert.Error(t, err)
	})

	t.Run("extra layout", func(t *testing.T) {
		got, err := NormalizeTime("01.05.2023 12:00", "02.01.2006 15:04")
		require.NoError(t, err)
		assert.Equal(t, "2023-05-01 12:00:00.000000", got)
	})
}

func TestCutByTime(t *testing.T) {
	start := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	f := frameAt(start, time.Second, 10)

	t.Run("inclusive bounds", func(t *testing.T) {
		cut, err := CutByTime(f, start.Add(2*time.Second), start.Add(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 4, cut.Len())
		values, _ := cut.Column("x")
		assert.Equal(t, []float64{2, 3, 4, 5}, values)
	})

	t.Run("range outside index", func(t *testing.T) {
		cut, err := CutByTime(f, start.Add(time.Hour), start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, cut.Len())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := CutByTime(f, start.Add(5*time.Second), start)
		assert.Error(t, err)
	})
}

func TestCutByTimeStrings(t *testing.T) {
	start := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	f := frameAt(start, time.Second, 10)

	cut, err := CutByTimeStrings(f, "2023-05-01 12:00:02", "2023-05-01T12:00:04")
	require.NoError(t, err)
	assert.Equal(t, 3, cut.Len())

	_, err = CutByTimeStrings(f, "garbage", "2023-05-01 12:00:04")
	assert.Error(t, err)
}
