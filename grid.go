package roseingrave

// Grid is a rectangular-ish block of raw cell strings, addressed row-major
// with 0-based indexes. Rows may be ragged; Cell pads missing cells with the
// empty string, matching what a spreadsheet read returns for blank cells.
type Grid [][]string

// Cell returns the cell at (row, col), or "" if the grid is short there.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColToName converts a 0-based column index to a column letter.
// 0→"A", 25→"Z", 26→"AA".
func ColToName(col int) string {
	result := ""
	col++ // 1-based for the algorithm
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// SafeSheetName sanitizes a string for use as a worksheet name. It replaces
// forbidden characters ([]*?/\:) with underscore and truncates to 31 chars.
func SafeSheetName(name string) string {
	forbidden := []rune{'/', '\\', ':', '*', '?', '[', ']'}
	runes := []rune(name)
	for i, r := range runes {
		for _, f := range forbidden {
			if r == f {
				runes[i] = '_'
				break
			}
		}
	}
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}
