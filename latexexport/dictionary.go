package latexexport

import (
	"fmt"
	"sort"

	"github.com/kyelljensen/kjcore/plotting"
)

// DictionaryOptions control FromDictionary output.
type DictionaryOptions struct {
	Keys        []string // subset and order of keys; nil means all, name order
	IndexName   string   // header of the key column, default "Variable"
	LaTeXFields bool     // reduce and reorder columns for LaTeX-ready output
	EscapeIndex bool     // escape underscores in keys (only with LaTeXFields)
}

// FromDictionary builds a Table from a variable dictionary with the key
// column first. With LaTeXFields set, the columns are reduced to the
// LaTeX-ready subset Symbol / <index> / Name / Unit / Description.
func FromDictionary(d plotting.Dictionary, o DictionaryOptions) (Table, error) {
	if o.IndexName == "" {
		o.IndexName = "Variable"
	}

	keys := o.Keys
	if keys == nil {
		keys = make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	var missing []string
	for _, k := range keys {
		if _, ok := d[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Table{}, fmt.Errorf("keys not found in dictionary: %v", missing)
	}

	var t Table
	if o.LaTeXFields {
		t.Columns = []string{"Symbol", o.IndexName, "Name", "Unit", "Description"}
		for _, k := range keys {
			e := d[k]
			key := k
			if o.EscapeIndex {
				key = EscapeUnderscores(key)
			}
			t.Rows = append(t.Rows, []string{e.Symbol, key, e.Name, e.Unit, e.Description})
		}
		return t, nil
	}

	t.Columns = []string{o.IndexName, "Name", "Symbol", "Unit", "Description"}
	for _, k := range keys {
		e := d[k]
		t.Rows = append(t.Rows, []string{k, e.Name, e.Symbol, e.Unit, e.Description})
	}
	return t, nil
}
