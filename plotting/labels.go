package plotting

import (
	"fmt"
	"strings"
)

// Entry documents one variable of a data set.
type Entry struct {
	Name        string // human-readable name, e.g. "Release Force"
	Symbol      string // formula symbol, e.g. "F_r"
	Unit        string // physical unit, "-" when dimensionless
	Description string
}

// Dictionary maps variable keys (column names) to their documentation.
// It drives axis labels, titles, legends and file names so plots stay
// consistent across a project.
type Dictionary map[string]Entry

// FullTemplate renders name, symbol and unit.
const FullTemplate = "{name} {symbol} [{unit}]"

// Label renders a templated label for a variable. Supported placeholders:
// {name}, {symbol}, {unit}, {description}. Unknown keys yield a bracketed
// placeholder instead of an error so a missing dictionary entry never
// breaks a plot.
func (d Dictionary) Label(key, template string) string {
	entry, ok := d[key]
	if !ok {
		return fmt.Sprintf("[unknown: %s]", key)
	}
	if template == "" {
		template = "{name}"
	}
	r := strings.NewReplacer(
		"{name}", entry.Name,
		"{symbol}", entry.Symbol,
		"{unit}", entry.Unit,
		"{description}", entry.Description,
	)
	return r.Replace(template)
}

// AxisLabel renders "Name Symbol [Unit]", dropping the unit when it is "-".
// A key without an entry falls back to the key itself.
func (d Dictionary) AxisLabel(key string) string {
	entry, ok := d[key]
	if !ok {
		return key
	}
	if entry.Unit == "" || entry.Unit == "-" {
		return fmt.Sprintf("%s %s", entry.Name, entry.Symbol)
	}
	return fmt.Sprintf("%s %s [%s]", entry.Name, entry.Symbol, entry.Unit)
}

// PlotTitle renders "<prefix>: Y (y_sym) vs. X (x_sym)".
func (d Dictionary) PlotTitle(xKey, yKey, prefix string) string {
	if prefix == "" {
		prefix = "Regression"
	}
	x, y := d.orKey(xKey), d.orKey(yKey)
	return fmt.Sprintf("%s: %s (%s) vs. %s (%s)", prefix, y.Name, y.Symbol, x.Name, x.Symbol)
}

// LegendTitle returns the variable name for legend use.
func (d Dictionary) LegendTitle(key string) string {
	return d.orKey(key).Name
}

// orKey resolves an entry, substituting the key for missing fields.
func (d Dictionary) orKey(key string) Entry {
	entry, ok := d[key]
	if !ok {
		return Entry{Name: key, Symbol: key, Unit: key}
	}
	return entry
}

// Filename builds the standard slugified plot file name
// "<prefix>_<y>_vs_<x>".
func Filename(xKey, yKey, prefix string) string {
	if prefix == "" {
		prefix = "plot"
	}
	return slugName(fmt.Sprintf("%s_%s_vs_%s", prefix, yKey, xKey))
}
