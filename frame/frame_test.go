package frame

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(n int) []time.Time {
	start := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	index := make([]time.Time, n)
	for i := range index {
		index[i] = start.Add(time.Duration(i) * time.Second)
	}
	return index
}

func TestAddColumn(t *testing.T) {
	f := New(testIndex(3))
	require.NoError(t, f.AddColumn("force", []float64{1, 2, 3}))

	t.Run("length mismatch", func(t *testing.T) {
		assert.Error(t, f.AddColumn("short", []float64{1}))
	})
	t.Run("duplicate name", func(t *testing.T) {
		assert.Error(t, f.AddColumn("force", []float64{4, 5, 6}))
	})

	values, ok := f.Column("force")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, values)
	assert.Equal(t, []string{"force"}, f.Names())
}

func TestAt(t *testing.T) {
	f := New(testIndex(2))
	require.NoError(t, f.AddColumn("x", []float64{10, 20}))

	v, err := f.At("x", 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	_, err = f.At("x", 2)
	assert.Error(t, err)
	_, err = f.At("missing", 0)
	assert.Error(t, err)
}

func TestSlice(t *testing.T) {
	f := New(testIndex(5))
	require.NoError(t, f.AddColumn("x", []float64{0, 1, 2, 3, 4}))

	s, err := f.Slice(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	values, _ := s.Column("x")
	assert.Equal(t, []float64{1, 2, 3}, values)

	_, err = f.Slice(3, 2)
	assert.Error(t, err)
	_, err = f.Slice(0, 6)
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(testIndex(2))
	require.NoError(t, f.AddColumn("x", []float64{1, 2}))

	c := f.Clone()
	values, _ := c.Column("x")
	values[0] = 99

	orig, _ := f.Column("x")
	assert.Equal(t, 1.0, orig[0])
}

func TestCSVRoundTrip(t *testing.T) {
	f := New(testIndex(3))
	require.NoError(t, f.AddColumn("force", []float64{1.25, math.NaN(), -3}))
	require.NoError(t, f.AddColumn("elong", []float64{0.1, 0.2, 0.3}))

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, f.Names(), got.Names())
	if diff := cmp.Diff(f.Index(), got.Index()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}

	force, _ := got.Column("force")
	assert.Equal(t, 1.25, force[0])
	assert.True(t, math.IsNaN(force[1]))
	assert.Equal(t, -3.0, force[2])
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"wrong first column": "ts,x\n2023-05-01 12:00:00.000000,1\n",
		"bad timestamp":      "time,x\nnot-a-time,1\n",
		"bad value":          "time,x\n2023-05-01 12:00:00.000000,abc\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(bytes.NewBufferString(in))
			assert.Error(t, err)
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	f := New(testIndex(2))
	require.NoError(t, f.AddColumn("x", []float64{1, 2}))

	path := filepath.Join(t.TempDir(), "frame.csv")
	require.NoError(t, f.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}
