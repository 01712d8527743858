package roseingrave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directivesOf[T Directive](directives []Directive) []T {
	var out []T
	for _, d := range directives {
		if t, ok := d.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestPlanSheetFormat(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	_, offsets := BuildSheetGrid(piece)

	directives := PlanSheetFormat(tmpl, offsets)

	formats := directivesOf[CellFormat](directives)
	require.NotEmpty(t, formats)
	// everything middle-aligned first
	assert.Equal(t, Range{StartRow: 1, StartCol: 1, EndRow: 15, EndCol: 4}, formats[0].Range)
	assert.Equal(t, "middle", formats[0].VAlign)
	// piece name bold
	assert.True(t, formats[1].Bold)
	assert.Equal(t, cellRange(1, 1), formats[1].Range)
	// comments row wrapped, top-aligned
	last := formats[len(formats)-1]
	assert.True(t, last.Wrap)
	assert.Equal(t, "top", last.VAlign)
	assert.Equal(t, Range{StartRow: 15, StartCol: 2, EndRow: 15, EndCol: 4}, last.Range)
}

func TestPlanSheetFormat_Borders(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl) // 8 bars: blank rows 5 and 14
	_, offsets := BuildSheetGrid(piece)

	borders := directivesOf[Border](PlanSheetFormat(tmpl, offsets))
	require.Len(t, borders, 3)

	assert.Equal(t, 5, borders[0].Range.StartRow)
	assert.Equal(t, BorderSolid, borders[0].Top)
	assert.Equal(t, BorderSolid, borders[0].Bottom)
	assert.Equal(t, 14, borders[1].Range.StartRow)

	// one dotted separator, after bar 5
	assert.Equal(t, 10, borders[2].Range.StartRow)
	assert.Equal(t, BorderDotted, borders[2].Bottom)
	assert.Empty(t, borders[2].Top)
}

func TestPlanSheetFormat_WidthsHeightFreeze(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	_, offsets := BuildSheetGrid(piece)
	directives := PlanSheetFormat(tmpl, offsets)

	widths := directivesOf[ColWidth](directives)
	require.Len(t, widths, 3)
	assert.Equal(t, ColWidth{StartCol: 1, EndCol: 1, Width: 200}, widths[0])
	assert.Equal(t, ColWidth{StartCol: 2, EndCol: 3, Width: 150}, widths[1])
	assert.Equal(t, ColWidth{StartCol: 4, EndCol: 4, Width: 300}, widths[2])

	heights := directivesOf[RowHeight](directives)
	require.Len(t, heights, 1)
	assert.Equal(t, RowHeight{Row: 15, Height: 200}, heights[0])

	freezes := directivesOf[Freeze](directives)
	require.Len(t, freezes, 1)
	assert.Equal(t, Freeze{Rows: 1, Cols: 1}, freezes[0])
}

func TestPlanSheetFormat_BandingAndValidation(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	_, offsets := BuildSheetGrid(piece)
	directives := PlanSheetFormat(tmpl, offsets)

	bandings := directivesOf[Banding](directives)
	require.Len(t, bandings, 1)
	// skips the notes column and the comments row
	assert.Equal(t, Range{StartRow: 1, StartCol: 2, EndRow: 14, EndCol: 3}, bandings[0].Range)

	validations := directivesOf[DataValidation](directives)
	require.Len(t, validations, 2)
	// field order, not map order: timeSig (row 3) before checked (row 4)
	assert.Equal(t, ValidationDropdown, validations[0].Type)
	assert.Equal(t, Range{StartRow: 3, StartCol: 2, EndRow: 3, EndCol: 3}, validations[0].Range)
	assert.Equal(t, []string{"3/4", "4/4", "6/8"}, validations[0].Values)
	assert.Equal(t, ValidationCheckbox, validations[1].Type)
	assert.Equal(t, 4, validations[1].Range.StartRow)
}

func TestPlanSheetFormat_NoMasterDirectives(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	_, offsets := BuildSheetGrid(piece)
	directives := PlanSheetFormat(tmpl, offsets)

	assert.Empty(t, directivesOf[MergeCells](directives))
	for _, b := range directivesOf[Border](directives) {
		assert.NotEqual(t, BorderDouble, b.Bottom)
		assert.Empty(t, b.Left)
	}
}

func TestPlanMasterFormat(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	data := testPieceData(piece.FinalBarCount())
	_, offsets, err := BuildMasterGrid(piece, data)
	require.NoError(t, err)

	directives := PlanMasterFormat(tmpl, offsets)

	// double border under the header rows and before each source group
	var doubles []Border
	for _, b := range directivesOf[Border](directives) {
		if b.Bottom == BorderDouble || b.Left == BorderDouble {
			doubles = append(doubles, b)
		}
	}
	require.Len(t, doubles, 3)
	assert.Equal(t, 2, doubles[0].Range.StartRow) // under row 2
	assert.Equal(t, 2, doubles[1].Range.StartCol) // before S1
	assert.Equal(t, 5, doubles[2].Range.StartCol) // before S2

	// row-1 merges over each source group, bounded by the notes column
	merges := directivesOf[MergeCells](directives)
	require.Len(t, merges, 2)
	assert.Equal(t, Range{StartRow: 1, StartCol: 2, EndRow: 1, EndCol: 4}, merges[0].Range)
	assert.Equal(t, Range{StartRow: 1, StartCol: 5, EndRow: 1, EndCol: 6}, merges[1].Range)

	// email cells left-aligned
	var lefts []CellFormat
	for _, f := range directivesOf[CellFormat](directives) {
		if f.HAlign == "left" {
			lefts = append(lefts, f)
		}
	}
	require.Len(t, lefts, 2)
	assert.Equal(t, cellRange(2, 2), lefts[0].Range)
	assert.Equal(t, cellRange(2, 5), lefts[1].Range)

	// two frozen rows on the master
	freezes := directivesOf[Freeze](directives)
	require.Len(t, freezes, 1)
	assert.Equal(t, Freeze{Rows: 2, Cols: 1}, freezes[0])
}
