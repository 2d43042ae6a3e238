package latexexport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Table is a rectangular string table, the rendering unit for LaTeX export.
// An optional Index column is printed first with an empty header, the way
// typical row-labeled tables look.
type Table struct {
	Columns []string
	Rows    [][]string
	Index   []string
}

// ToLaTeX renders the table as a tabular environment. Cell content is taken
// verbatim; callers escape beforehand where needed.
func (t Table) ToLaTeX(columnFormat string) (string, error) {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return "", fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
	}
	if t.Index != nil && len(t.Index) != len(t.Rows) {
		return "", fmt.Errorf("index has %d entries, table has %d rows", len(t.Index), len(t.Rows))
	}

	if columnFormat == "" {
		n := len(t.Columns)
		if t.Index != nil {
			n++
		}
		columnFormat = strings.Repeat("l", n)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{tabular}{%s}\n\\toprule\n", columnFormat)

	header := t.Columns
	if t.Index != nil {
		header = append([]string{""}, t.Columns...)
	}
	b.WriteString(strings.Join(header, " & "))
	b.WriteString(" \\\\\n\\midrule\n")

	for i, row := range t.Rows {
		cells := row
		if t.Index != nil {
			cells = append([]string{t.Index[i]}, row...)
		}
		b.WriteString(strings.Join(cells, " & "))
		b.WriteString(" \\\\\n")
	}

	b.WriteString("\\bottomrule\n\\end{tabular}")
	return b.String(), nil
}

// column index of a named column, -1 when absent.
func (t Table) column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// withStats appends Mean/Median/SD rows computed over the numeric cells of
// each column. Columns where nothing parses as a number get empty stat
// cells.
func (t Table) withStats() Table {
	out := Table{Columns: t.Columns, Rows: t.Rows}
	out.Index = make([]string, len(t.Rows))
	for i := range out.Index {
		if t.Index != nil {
			out.Index[i] = t.Index[i]
		} else {
			out.Index[i] = strconv.Itoa(i)
		}
	}

	stats := map[string]func([]float64) float64{
		"Mean":   func(v []float64) float64 { return stat.Mean(v, nil) },
		"Median": median,
		"SD":     func(v []float64) float64 { return stat.StdDev(v, nil) },
	}

	for _, name := range []string{"Mean", "Median", "SD"} {
		row := make([]string, len(t.Columns))
		for c := range t.Columns {
			var values []float64
			for _, r := range t.Rows {
				if v, err := strconv.ParseFloat(strings.TrimSpace(r[c]), 64); err == nil {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				row[c] = fmt.Sprintf("%.2f", stats[name](values))
			}
		}
		out.Rows = append(out.Rows, row)
		out.Index = append(out.Index, name)
	}
	return out
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// GroupedTables splits a table by the values of one column, drops that
// column, appends Mean/Median/SD rows per group and writes all group tables
// into a single <caption-label>.tex file. Group order follows first
// appearance. Returns the file path.
func GroupedTables(t Table, groupBy, caption, columnFormat, dir string) (string, error) {
	gi := t.column(groupBy)
	if gi < 0 {
		return "", fmt.Errorf("no column %q to group by", groupBy)
	}

	var order []string
	groups := make(map[string][][]string)
	for _, row := range t.Rows {
		key := row[gi]
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		reduced := make([]string, 0, len(row)-1)
		reduced = append(reduced, row[:gi]...)
		reduced = append(reduced, row[gi+1:]...)
		groups[key] = append(groups[key], reduced)
	}

	columns := make([]string, 0, len(t.Columns)-1)
	columns = append(columns, t.Columns[:gi]...)
	columns = append(columns, t.Columns[gi+1:]...)

	var parts []string
	for _, key := range order {
		rows := groups[key]
		group := Table{Columns: columns, Rows: rows, Index: make([]string, len(rows))}
		for i := range group.Index {
			group.Index[i] = strconv.Itoa(i)
		}
		group = group.withStats()

		body, err := group.ToLaTeX(columnFormat)
		if err != nil {
			return "", err
		}

		captionText := Caption(caption, fmt.Sprintf("%s (%s)", caption, key))
		label := LabelFor(caption, key)
		parts = append(parts, strings.TrimSpace(WrapTable(body, captionText, label)))
	}

	path := filepath.Join(dir, LabelFor(caption, "")+".tex")
	if err := os.WriteFile(path, []byte(strings.Join(parts, "\n\n")), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
