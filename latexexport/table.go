// Package latexexport renders and saves LaTeX tables: captions, slugified
// labels, the table/adjustbox envelope and grouped tables with summary
// statistics rows.
package latexexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// Caption builds a \caption command. With a long form the short form goes
// into the bracket argument (used in the list of tables).
func Caption(short, long string) string {
	if long != "" {
		return fmt.Sprintf("\\caption[%s]{%s}", short, long)
	}
	return fmt.Sprintf("\\caption{%s}", short)
}

// LabelFor derives a slugified label from a caption, underscore separated,
// optionally extended by an extra part.
func LabelFor(caption, extra string) string {
	label := slugName(caption)
	if extra != "" {
		label += "_" + slugName(extra)
	}
	return label
}

func slugName(s string) string {
	return strings.ReplaceAll(slug.Make(s), "-", "_")
}

// WrapTable wraps a tabular body in the standard table envelope: centered,
// caption on top, sized through adjustbox, labeled tab:<label>.
func WrapTable(body, captionText, label string) string {
	return fmt.Sprintf(`
\begin{table}[h]
    \centering
    %s
    \begin{adjustbox}{max width=\linewidth, max height=\textheight}
    %s
    \end{adjustbox}
    \label{tab:%s}
\end{table}
`, captionText, strings.TrimSpace(body), label)
}

// EscapeUnderscores escapes underscores for LaTeX text mode.
func EscapeUnderscores(s string) string {
	return strings.ReplaceAll(s, "_", "\\_")
}

// SaveOptions refine SaveTable output.
type SaveOptions struct {
	LongCaption string // long caption form, optional
	ExtraLabel  string // appended to the slugified label, optional
}

// SaveTable wraps a tabular body and writes it to <label>.tex inside dir,
// returning the file path.
func SaveTable(body, caption, dir string, o SaveOptions) (string, error) {
	label := LabelFor(caption, o.ExtraLabel)
	content := WrapTable(body, Caption(caption, o.LongCaption), label)

	path := filepath.Join(dir, label+".tex")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
