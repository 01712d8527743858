package roseingrave

import "strings"

// ExportedSource is one source column recovered from a piece sheet.
type ExportedSource struct {
	Name       string `json:"name"`
	Link       string `json:"link"`
	ColumnData `yaml:",inline"`
}

// NotesColumn is the notes column of a piece sheet: raw text per header
// field and per bar.
type NotesColumn struct {
	Fields map[string]string `json:"fields"`
	Bars   map[string]string `json:"bars"`
}

// ExportedPiece is the structured data recovered from a single piece sheet.
type ExportedPiece struct {
	Title   string           `json:"title"`
	Link    string           `json:"link,omitempty"`
	Sources []ExportedSource `json:"sources"`
	Notes   NotesColumn      `json:"notes"`
}

// ExportSheet reconstructs piece data from the raw grid of a sheet built by
// BuildSheetGrid. The grid must carry formulas intact, not computed values.
// Row-index arithmetic mirrors BuildSheetGrid exactly; the row counts are
// derived from the template's header fields and the grid height.
//
// The title cell may be a plain string (a piece with no link). Every source
// header cell must decode as a hyperlink; a cell that does not yields a
// *SheetError naming the column.
func ExportSheet(sheetName string, grid Grid, tmpl *Template) (*ExportedPiece, error) {
	fields := tmpl.MetaDataFields
	if len(grid) < len(fields)+4 {
		return nil, newSheetError(sheetName, "", "sheet has %d rows, expected at least %d",
			len(grid), len(fields)+4)
	}
	row1 := grid[0]

	piece := &ExportedPiece{}
	piece.Link, piece.Title, _ = DecodeHyperlink(grid.Cell(0, 0))
	if piece.Title == "" {
		piece.Title = grid.Cell(0, 0)
	}

	headersStart := 1
	barsStart := 1 + len(fields) + 1
	barsEnd := len(grid) - 2 // exclusive
	commentsRow := len(grid) - 1

	exportColumn := func(col int) ColumnData {
		column := ColumnData{
			Fields: make(map[string]string, len(fields)),
			Bars:   make(map[string]string, barsEnd-barsStart),
		}
		for i, field := range fields {
			column.Fields[field.Key] = grid.Cell(headersStart+i, col)
		}
		for row := barsStart; row < barsEnd; row++ {
			column.Bars[grid.Cell(row, 0)] = grid.Cell(row, col)
		}
		column.Comments = grid.Cell(commentsRow, col)
		return column
	}

	for col := 1; col < len(row1)-1; col++ {
		link, name, ok := DecodeHyperlink(grid.Cell(0, col))
		if !ok {
			return nil, newSheetError(sheetName, ColToName(col),
				"cell doesn't have a valid hyperlink")
		}
		piece.Sources = append(piece.Sources, ExportedSource{
			Name:       name,
			Link:       link,
			ColumnData: exportColumn(col),
		})
	}

	notesCol := len(row1) - 1
	notes := exportColumn(notesCol)
	piece.Notes = NotesColumn{Fields: notes.Fields, Bars: notes.Bars}
	return piece, nil
}

// ExportedMasterSource is one source group recovered from a master sheet:
// the volunteer columns in sheet order plus the finalized summary column.
// The summary column's row-2 label is discarded; the summary stays
// anonymous on round trip.
type ExportedMasterSource struct {
	Name       string      `json:"name"`
	Link       string      `json:"link"`
	Volunteers []Volunteer `json:"volunteers"`
	Summary    ColumnData  `json:"summary"`
}

// ExportedMasterPiece is the structured data recovered from a master sheet.
type ExportedMasterPiece struct {
	Title   string                 `json:"title"`
	Link    string                 `json:"link,omitempty"`
	Sources []ExportedMasterSource `json:"sources"`
	Notes   NotesData              `json:"notes"`
}

// summaryState tracks the column-grouping state machine within one source
// group of a master sheet. Every column is tentatively the source's summary
// until a later column in the same group demotes it into the volunteers.
type summaryState int

const (
	awaitingSummary summaryState = iota
	haveSummary
)

// masterGrouper walks master-sheet columns left to right, assigning each
// column to a source group and keeping the flush/demote timing of the
// summary state machine exact.
type masterGrouper struct {
	state   summaryState
	sources []ExportedMasterSource
	pending Volunteer // tentative summary of the current source
}

// startSource finalizes the current group (its tentative summary becomes
// the summary, without demotion) and opens a new group.
func (g *masterGrouper) startSource(name, link string) {
	g.finalize()
	g.sources = append(g.sources, ExportedMasterSource{Name: name, Link: link})
	g.state = awaitingSummary
}

// addColumn records one contributor column in the current group. A prior
// tentative summary is demoted into the volunteers, keyed by its row-2
// email; the new column becomes the tentative summary.
func (g *masterGrouper) addColumn(email string, column ColumnData) {
	current := &g.sources[len(g.sources)-1]
	if g.state == haveSummary {
		current.Volunteers = append(current.Volunteers, g.pending)
	}
	g.pending = Volunteer{Email: email, ColumnData: column}
	g.state = haveSummary
}

// finalize commits the tentative summary of the current group, dropping its
// email.
func (g *masterGrouper) finalize() {
	if g.state != haveSummary {
		return
	}
	g.sources[len(g.sources)-1].Summary = g.pending.ColumnData
	g.state = awaitingSummary
}

// ExportMasterSheet reconstructs aggregated piece data from the raw grid of
// a sheet built by BuildMasterGrid. A non-blank row-1 cell starts a new
// source group and must decode as a hyperlink; blank row-1 cells continue
// the current group. The last column of each group ends up as that source's
// summary.
func ExportMasterSheet(sheetName string, grid Grid, tmpl *Template) (*ExportedMasterPiece, error) {
	fields := tmpl.MetaDataFields
	if len(grid) < len(fields)+5 {
		return nil, newSheetError(sheetName, "", "sheet has %d rows, expected at least %d",
			len(grid), len(fields)+5)
	}
	row1 := grid[0]

	piece := &ExportedMasterPiece{}
	piece.Link, piece.Title, _ = DecodeHyperlink(grid.Cell(0, 0))
	if piece.Title == "" {
		piece.Title = grid.Cell(0, 0)
	}

	headersStart := 2
	barsStart := 2 + len(fields) + 1
	barsEnd := len(grid) - 2 // exclusive
	commentsRow := len(grid) - 1

	exportColumn := func(col int) ColumnData {
		column := ColumnData{
			Fields: make(map[string]string, len(fields)),
			Bars:   make(map[string]string, barsEnd-barsStart),
		}
		for i, field := range fields {
			column.Fields[field.Key] = grid.Cell(headersStart+i, col)
		}
		for row := barsStart; row < barsEnd; row++ {
			column.Bars[grid.Cell(row, 0)] = grid.Cell(row, col)
		}
		column.Comments = grid.Cell(commentsRow, col)
		return column
	}

	grouper := &masterGrouper{}
	for col := 1; col < len(row1)-1; col++ {
		if cell := grid.Cell(0, col); cell != "" {
			link, name, ok := DecodeHyperlink(cell)
			if !ok {
				return nil, newSheetError(sheetName, ColToName(col),
					"cell doesn't have a valid hyperlink")
			}
			grouper.startSource(name, link)
		} else if len(grouper.sources) == 0 {
			return nil, newSheetError(sheetName, ColToName(col),
				"column has no source header")
		}
		grouper.addColumn(grid.Cell(1, col), exportColumn(col))
	}
	grouper.finalize()
	piece.Sources = grouper.sources

	notesCol := len(row1) - 1
	notes := NotesData{
		Fields: make(map[string][]NoteEntry, len(fields)),
		Bars:   make(map[string][]NoteEntry, barsEnd-barsStart),
	}
	for i, field := range fields {
		entries, err := parseNote(sheetName, notesCol, grid.Cell(headersStart+i, notesCol))
		if err != nil {
			return nil, err
		}
		notes.Fields[field.Key] = entries
	}
	for row := barsStart; row < barsEnd; row++ {
		entries, err := parseNote(sheetName, notesCol, grid.Cell(row, notesCol))
		if err != nil {
			return nil, err
		}
		notes.Bars[grid.Cell(row, 0)] = entries
	}
	piece.Notes = notes
	return piece, nil
}

// parseNote splits a stored notes cell back into its entries, one per
// "email: text" line. Blank lines are skipped.
func parseNote(sheetName string, col int, text string) ([]NoteEntry, error) {
	var entries []NoteEntry
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		email, noteText, found := strings.Cut(line, ": ")
		if !found {
			return nil, newSheetError(sheetName, ColToName(col),
				"malformed note line %q", line)
		}
		entries = append(entries, NoteEntry{Email: email, Text: noteText})
	}
	return entries, nil
}
