package latexexport

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLaTeX(t *testing.T) {
	tbl := Table{
		Columns: []string{"ID", "Value"},
		Rows:    [][]string{{"1", "2.50"}, {"2", "3.00"}},
	}

	body, err := tbl.ToLaTeX("lr")
	require.NoError(t, err)
	assert.Contains(t, body, "\\begin{tabular}{lr}")
	assert.Contains(t, body, "ID & Value \\\\")
	assert.Contains(t, body, "1 & 2.50 \\\\")
	assert.Contains(t, body, "\\bottomrule")
}

func TestToLaTeXWithIndex(t *testing.T) {
	tbl := Table{
		Columns: []string{"Value"},
		Rows:    [][]string{{"2.50"}},
		Index:   []string{"Mean"},
	}

	body, err := tbl.ToLaTeX("")
	require.NoError(t, err)
	assert.Contains(t, body, "\\begin{tabular}{ll}")
	assert.Contains(t, body, " & Value \\\\")
	assert.Contains(t, body, "Mean & 2.50 \\\\")
}

func TestToLaTeXRejectsRaggedRows(t *testing.T) {
	tbl := Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}}
	_, err := tbl.ToLaTeX("")
	assert.Error(t, err)

	tbl = Table{Columns: []string{"a"}, Rows: [][]string{{"1"}}, Index: []string{"x", "y"}}
	_, err = tbl.ToLaTeX("")
	assert.Error(t, err)
}

func TestWithStats(t *testing.T) {
	tbl := Table{
		Columns: []string{"Series", "Value"},
		Rows: [][]string{
			{"A", "1.0"},
			{"A", "2.0"},
			{"A", "3.0"},
		},
	}

	got := tbl.withStats()
	require.Len(t, got.Rows, 6)
	assert.Equal(t, []string{"0", "1", "2", "Mean", "Median", "SD"}, got.Index)

	// Mean/Median/SD of {1,2,3} over the numeric column; the text column
	// stays empty.
	assert.Equal(t, []string{"", "2.00"}, got.Rows[3])
	assert.Equal(t, []string{"", "2.00"}, got.Rows[4])
	assert.Equal(t, []string{"", "1.00"}, got.Rows[5])
}

func TestGroupedTables(t *testing.T) {
	dir := t.TempDir()
	tbl := Table{
		Columns: []string{"ID", "Series", "Force"},
		Rows: [][]string{
			{"1", "A", "1.0"},
			{"2", "A", "3.0"},
			{"3", "B", "10.0"},
		},
	}

	path, err := GroupedTables(tbl, "Series", "Force Results", "lll", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "force_results.tex"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	// One table per group, group column dropped, stats appended.
	assert.Equal(t, 2, strings.Count(content, "\\begin{table}[h]"))
	assert.Contains(t, content, "\\label{tab:force_results_a}")
	assert.Contains(t, content, "\\label{tab:force_results_b}")
	assert.NotContains(t, content, "Series &")
	assert.Contains(t, content, "Mean & ")
	assert.Contains(t, content, "2.00")  // mean of group A
	assert.Contains(t, content, "10.00") // group B single value
}

func TestGroupedTablesUnknownColumn(t *testing.T) {
	_, err := GroupedTables(Table{Columns: []string{"a"}}, "nope", "c", "", t.TempDir())
	assert.Error(t, err)
}
