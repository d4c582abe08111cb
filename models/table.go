package models

import "strconv"

// Table is a parsed delimited file: a trimmed header row plus the data rows
// beneath it. Rows may be shorter than the header; missing cells read as "".
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, h := range t.Header {
		if h == column {
			return i
		}
	}
	return -1
}

// Missing returns the columns from want that are not in the header,
// preserving the order of want.
func (t *Table) Missing(want ...string) []string {
	var missing []string
	for _, w := range want {
		if t.Index(w) < 0 {
			missing = append(missing, w)
		}
	}
	return missing
}

// Cell returns row[i], or "" when the row is too short or i < 0.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// FormatNumber renders f with the fewest digits that parse back to f.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
