package roseingrave

import "strconv"

// SheetOffsets locates the layout sections of a piece sheet. Rows and
// columns are 1-indexed. The offsets are fully determined by the number of
// header fields, the final bar count, and the number of sources.
type SheetOffsets struct {
	NotesCol    int // notes column
	BlankRow1   int // blank row between the headers and the bars
	BlankRow2   int // blank row between the bars and the comments
	CommentsRow int
}

// BuildSheetGrid lays out the grid for a single piece sheet. Top to bottom:
// the title row (piece hyperlink, one hyperlink per source, notes label),
// one row per header field with the label in column A, a blank row, one row
// per bar with the 1-based bar number in column A, a blank row, and the
// comments row. Columns B and up of the header and bar rows are left for
// volunteers to fill in.
func BuildSheetGrid(p *Piece) (Grid, SheetOffsets) {
	tmpl := p.template
	sources := p.Sources()

	row1 := make([]string, 0, len(sources)+2)
	row1 = append(row1, p.Hyperlink())
	for _, source := range sources {
		row1 = append(row1, source.Hyperlink())
	}
	row1 = append(row1, tmpl.CommentFields.Notes)

	barCount := p.FinalBarCount()
	grid := make(Grid, 0, len(tmpl.MetaDataFields)+barCount+4)
	grid = append(grid, row1)
	for _, field := range tmpl.MetaDataFields {
		grid = append(grid, []string{field.Header})
	}
	grid = append(grid, nil)
	for bar := 1; bar <= barCount; bar++ {
		grid = append(grid, []string{strconv.Itoa(bar)})
	}
	grid = append(grid, nil)
	grid = append(grid, []string{tmpl.CommentFields.Comments})

	blankRow1 := len(tmpl.MetaDataFields) + 2
	blankRow2 := blankRow1 + barCount + 1
	offsets := SheetOffsets{
		NotesCol:    len(row1),
		BlankRow1:   blankRow1,
		BlankRow2:   blankRow2,
		CommentsRow: blankRow2 + 1,
	}
	return grid, offsets
}
