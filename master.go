package roseingrave

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnData is the content of one contributor column: a value per header
// field, a value per bar (keyed by the 1-based bar number as a string), and
// a free-text comment.
type ColumnData struct {
	Fields   map[string]string `yaml:"fields" json:"fields"`
	Bars     map[string]string `yaml:"bars" json:"bars"`
	Comments string            `yaml:"comments" json:"comments"`
}

// Volunteer is one volunteer's column, keyed by email. Slice order decides
// column order in the master sheet.
type Volunteer struct {
	Email      string `yaml:"email" json:"email"`
	ColumnData `yaml:",inline"`
}

// SourceData aggregates all contributions for one source: the volunteer
// columns followed by the finalized summary column.
type SourceData struct {
	Volunteers []Volunteer `yaml:"volunteers" json:"volunteers"`
	Summary    ColumnData  `yaml:"summary" json:"summary"`
}

// NoteEntry is one line of a notes cell: a contributing email and its text.
type NoteEntry struct {
	Email string `yaml:"email" json:"email"`
	Text  string `yaml:"text" json:"text"`
}

// NotesData holds the notes column: entries per header field and per bar.
type NotesData struct {
	Fields map[string][]NoteEntry `yaml:"fields" json:"fields"`
	Bars   map[string][]NoteEntry `yaml:"bars" json:"bars"`
}

// PieceData is the aggregated contribution data for one piece, consumed by
// the master layout. Sources is keyed by source name and must cover every
// source of the piece.
type PieceData struct {
	Sources map[string]SourceData `yaml:"sources" json:"sources"`
	Notes   NotesData             `yaml:"notes" json:"notes"`
}

// MasterOffsets locates the layout sections of a master sheet. Rows and
// columns are 1-indexed.
type MasterOffsets struct {
	NotesCol    int
	BlankRow1   int
	BlankRow2   int
	CommentsRow int
	SourceCols  []int // starting column of each source group, in order
}

// BuildMasterGrid lays out the aggregated master sheet for a piece. The
// vertical structure matches the single sheet with one extra row: row 1 is
// the title row, row 2 labels each column with the volunteer email, then the
// header rows, a blank row, the bar rows, a blank row, and the comments row.
// Each source contributes one column per volunteer (in input order) followed
// by a summary column labeled with the template's summary label instead of
// an email; a notes column closes the sheet.
//
// A source of the piece that is missing from data.Sources is a caller
// contract violation; the returned error is not recoverable.
func BuildMasterGrid(p *Piece, data *PieceData) (Grid, MasterOffsets, error) {
	tmpl := p.template
	fields := tmpl.MetaDataFields
	barCount := p.FinalBarCount()

	grid := make(Grid, 0, len(fields)+barCount+5)
	grid = append(grid, []string{p.Hyperlink()})
	grid = append(grid, []string{"Volunteer"})
	for _, field := range fields {
		grid = append(grid, []string{field.Header})
	}
	grid = append(grid, nil)
	for bar := 1; bar <= barCount; bar++ {
		grid = append(grid, []string{strconv.Itoa(bar)})
	}
	grid = append(grid, nil)
	grid = append(grid, []string{tmpl.CommentFields.Comments})

	const headersStart = 2 // 0-indexed row of the first header
	blankRow1 := 2 + len(fields) + 1
	blankRow2 := blankRow1 + barCount + 1
	commentsRow := blankRow2 + 1
	barsStart := blankRow1 // 0-indexed row of bar 1

	appendColumn := func(label string, column ColumnData) {
		grid[0] = append(grid[0], "")
		grid[1] = append(grid[1], label)
		for i, field := range fields {
			grid[headersStart+i] = append(grid[headersStart+i], column.Fields[field.Key])
		}
		for bar := 1; bar <= barCount; bar++ {
			grid[barsStart+bar-1] = append(grid[barsStart+bar-1], column.Bars[strconv.Itoa(bar)])
		}
		grid[commentsRow-1] = append(grid[commentsRow-1], column.Comments)
	}

	var sourceCols []int
	col := 2
	for _, source := range p.Sources() {
		sourceData, ok := data.Sources[source.Name()]
		if !ok {
			return nil, MasterOffsets{}, fmt.Errorf(
				"piece %q: no contribution data for source %q", p.name, source.Name())
		}
		sourceCols = append(sourceCols, col)
		startCol := col - 1 // 0-indexed position in row 1

		for _, volunteer := range sourceData.Volunteers {
			appendColumn(volunteer.Email, volunteer.ColumnData)
			col++
		}
		appendColumn(tmpl.CommentFields.Summary, sourceData.Summary)
		col++

		grid[0][startCol] = source.Hyperlink()
	}

	// notes column
	grid[0] = append(grid[0], tmpl.CommentFields.Notes)
	for i, field := range fields {
		grid[headersStart+i] = append(grid[headersStart+i], noteString(data.Notes.Fields[field.Key]))
	}
	for bar := 1; bar <= barCount; bar++ {
		grid[barsStart+bar-1] = append(grid[barsStart+bar-1], noteString(data.Notes.Bars[strconv.Itoa(bar)]))
	}

	offsets := MasterOffsets{
		NotesCol:    col,
		BlankRow1:   blankRow1,
		BlankRow2:   blankRow2,
		CommentsRow: commentsRow,
		SourceCols:  sourceCols,
	}
	return grid, offsets, nil
}

// noteString joins note entries into the stored cell form, one
// "email: text" line per entry.
func noteString(entries []NoteEntry) string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.Email + ": " + entry.Text
	}
	return strings.Join(lines, "\n")
}
