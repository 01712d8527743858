package roseingrave

// Border styles used by border directives.
const (
	BorderSolid  = "solid"
	BorderDotted = "dotted"
	BorderDouble = "double"
)

// Banding colors (hex, no pound).
const (
	bandingHeaderColor = "bdbdbd"
	bandingFirstColor  = "ffffff"
	bandingSecondColor = "f3f3f3"
)

// barGroupInterval is how many bar rows sit between dotted separators.
const barGroupInterval = 5

// Range is a rectangular cell range, 1-indexed and inclusive on both ends.
type Range struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Directive is one presentation instruction for the document backend. The
// planner emits a batch of these from the layout offsets; it makes no
// layout decisions of its own.
type Directive interface {
	Kind() string
}

// CellFormat formats the cells of a range.
type CellFormat struct {
	Range  Range
	Bold   bool
	HAlign string // "", "center", "left"
	VAlign string // "", "middle", "top"
	Wrap   bool
}

func (CellFormat) Kind() string { return "cellFormat" }

// Border draws borders on every cell of a range. Empty sides are left
// untouched.
type Border struct {
	Range             Range
	Top, Bottom, Left string
}

func (Border) Kind() string { return "border" }

// MergeCells merges a range into one cell.
type MergeCells struct {
	Range Range
}

func (MergeCells) Kind() string { return "mergeCells" }

// ColWidth sets the pixel width of a column range.
type ColWidth struct {
	StartCol, EndCol int
	Width            int
}

func (ColWidth) Kind() string { return "colWidth" }

// RowHeight sets the pixel height of one row.
type RowHeight struct {
	Row    int
	Height int
}

func (RowHeight) Kind() string { return "rowHeight" }

// Freeze freezes leading rows and columns.
type Freeze struct {
	Rows, Cols int
}

func (Freeze) Kind() string { return "freeze" }

// Banding applies alternating row colors over a range, with a distinct
// header row color.
type Banding struct {
	Range                                Range
	HeaderColor, FirstColor, SecondColor string
}

func (Banding) Kind() string { return "banding" }

// DataValidation restricts input over a range: a checkbox or a dropdown
// with fixed values.
type DataValidation struct {
	Range  Range
	Type   string // ValidationCheckbox or ValidationDropdown
	Values []string
}

func (DataValidation) Kind() string { return "dataValidation" }

// PlanSheetFormat translates a single sheet's offsets into a formatting
// directive batch.
func PlanSheetFormat(tmpl *Template, offsets SheetOffsets) []Directive {
	return planFormat(tmpl, offsets.NotesCol, offsets.BlankRow1, offsets.BlankRow2,
		offsets.CommentsRow, 1, nil)
}

// PlanMasterFormat translates a master sheet's offsets into a formatting
// directive batch. On top of the single-sheet formatting it adds the double
// border under the header rows, a double border before every source group,
// row-1 merges over each group, and left-aligned email cells.
func PlanMasterFormat(tmpl *Template, offsets MasterOffsets) []Directive {
	return planFormat(tmpl, offsets.NotesCol, offsets.BlankRow1, offsets.BlankRow2,
		offsets.CommentsRow, 2, offsets.SourceCols)
}

func planFormat(tmpl *Template, notesCol, blankRow1, blankRow2, commentsRow, headerEnd int, sourceCols []int) []Directive {
	master := headerEnd == 2
	var directives []Directive

	fullSheet := Range{StartRow: 1, StartCol: 1, EndRow: commentsRow, EndCol: notesCol}
	directives = append(directives,
		// middle-align everything
		CellFormat{Range: fullSheet, VAlign: "middle"},
		// piece name
		CellFormat{Range: cellRange(1, 1), Bold: true, VAlign: "middle"},
		// headers
		CellFormat{
			Range: Range{StartRow: 2, StartCol: 1, EndRow: blankRow1 - 1, EndCol: 1},
			Bold:  true, VAlign: "middle",
		},
		// sources
		CellFormat{
			Range: Range{StartRow: 1, StartCol: 2, EndRow: headerEnd, EndCol: notesCol - 1},
			Bold:  true, HAlign: "center", VAlign: "middle",
		},
		// notes header
		CellFormat{Range: cellRange(1, notesCol), Bold: true, VAlign: "middle"},
		// comments header
		CellFormat{Range: cellRange(commentsRow, 1), Bold: true, VAlign: "middle"},
		// comments row
		CellFormat{
			Range: Range{StartRow: commentsRow, StartCol: 2, EndRow: commentsRow, EndCol: notesCol},
			Wrap:  true, VAlign: "top",
		},
	)
	if master {
		// email cells
		for _, col := range sourceCols {
			directives = append(directives,
				CellFormat{Range: cellRange(2, col), HAlign: "left", VAlign: "middle"})
		}

		// double border after the header rows
		directives = append(directives, Border{
			Range:  Range{StartRow: headerEnd, StartCol: 1, EndRow: headerEnd, EndCol: notesCol},
			Bottom: BorderDouble,
		})
		// double border before every source column
		for _, col := range sourceCols {
			directives = append(directives, Border{
				Range: Range{StartRow: 1, StartCol: col, EndRow: commentsRow, EndCol: col},
				Left:  BorderDouble,
			})
		}
		// merge row 1 over each source group, the notes column as sentinel
		groupEnds := append(append([]int{}, sourceCols...), notesCol)
		for i := 0; i+1 < len(groupEnds); i++ {
			directives = append(directives, MergeCells{
				Range: Range{StartRow: 1, StartCol: groupEnds[i], EndRow: 1, EndCol: groupEnds[i+1] - 1},
			})
		}
	}

	// borders around the blank rows
	for _, row := range []int{blankRow1, blankRow2} {
		directives = append(directives, Border{
			Range: Range{StartRow: row, StartCol: 1, EndRow: row, EndCol: notesCol},
			Top:   BorderSolid, Bottom: BorderSolid,
		})
	}
	// dotted border after every fifth bar
	for row := blankRow1 + barGroupInterval; row < blankRow2-1; row += barGroupInterval {
		directives = append(directives, Border{
			Range:  Range{StartRow: row, StartCol: 1, EndRow: row, EndCol: notesCol},
			Bottom: BorderDotted,
		})
	}

	directives = append(directives,
		ColWidth{StartCol: 1, EndCol: 1, Width: 200},
		ColWidth{StartCol: 2, EndCol: notesCol - 1, Width: 150},
		ColWidth{StartCol: notesCol, EndCol: notesCol, Width: 300},
		RowHeight{Row: commentsRow, Height: tmpl.Values.CommentsRowHeight},
		Freeze{Rows: headerEnd, Cols: 1},
		// banding skips the notes column and the comments row
		Banding{
			Range:       Range{StartRow: 1, StartCol: 2, EndRow: commentsRow - 1, EndCol: notesCol - 1},
			HeaderColor: bandingHeaderColor,
			FirstColor:  bandingFirstColor,
			SecondColor: bandingSecondColor,
		},
	)

	// data validation on header rows
	for i, field := range tmpl.MetaDataFields {
		rule, ok := tmpl.Validation[field.Key]
		if !ok {
			continue
		}
		row := headerEnd + i + 1
		directives = append(directives, DataValidation{
			Range:  Range{StartRow: row, StartCol: 2, EndRow: row, EndCol: notesCol - 1},
			Type:   rule.Type,
			Values: append([]string(nil), rule.Values...),
		})
	}

	return directives
}

func cellRange(row, col int) Range {
	return Range{StartRow: row, StartCol: col, EndRow: row, EndCol: col}
}
