package roseingrave

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbook_PieceSheetRoundTrip(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)

	wb := NewWorkbook(tmpl)
	defer wb.Close()
	name, err := wb.CreatePieceSheet(piece)
	require.NoError(t, err)
	assert.Equal(t, "Abendlied", name)

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	read, err := OpenWorkbookReader(&buf, tmpl)
	require.NoError(t, err)
	defer read.Close()
	assert.Equal(t, []string{"Abendlied"}, read.SheetNames())

	grid, err := read.ReadGrid("Abendlied")
	require.NoError(t, err)

	exported, err := ExportSheet("Abendlied", grid, tmpl)
	require.NoError(t, err)
	assert.Equal(t, "Abendlied", exported.Title)
	assert.Equal(t, "https://imslp.org/abendlied", exported.Link)
	require.Len(t, exported.Sources, 2)
	assert.Equal(t, "S1", exported.Sources[0].Name)
	assert.Equal(t, "L1", exported.Sources[0].Link)
	assert.Len(t, exported.Sources[1].Bars, 8)
}

func TestWorkbook_MasterSheetRoundTrip(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	data := testPieceData(piece.FinalBarCount())

	wb := NewWorkbook(tmpl)
	defer wb.Close()
	name, err := wb.CreateMasterSheet(piece, data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))

	read, err := OpenWorkbookReader(&buf, tmpl)
	require.NoError(t, err)
	defer read.Close()

	grid, err := read.ReadGrid(name)
	require.NoError(t, err)

	exported, err := ExportMasterSheet(name, grid, tmpl)
	require.NoError(t, err)
	require.Len(t, exported.Sources, 2)
	assert.Equal(t, data.Sources["S1"].Volunteers[0].ColumnData,
		exported.Sources[0].Volunteers[0].ColumnData)
	assert.Equal(t, data.Sources["S2"].Summary, exported.Sources[1].Summary)
	assert.Equal(t, data.Notes.Bars["3"], exported.Notes.Bars["3"])
}

func TestWorkbook_MultipleSheets(t *testing.T) {
	tmpl := testTemplate()
	a := testPiece(t, tmpl)
	b, err := NewPiece(PieceRecord{
		Title:   "Nachtlied",
		Sources: []SourceRecord{{Name: "S1", Link: "L1"}},
	}, tmpl)
	require.NoError(t, err)

	wb := NewWorkbook(tmpl, WithFormatting(false))
	defer wb.Close()
	_, err = wb.CreatePieceSheet(a)
	require.NoError(t, err)
	_, err = wb.CreatePieceSheet(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"Abendlied", "Nachtlied"}, wb.SheetNames())
}

func TestWorkbook_SheetNameSanitized(t *testing.T) {
	tmpl := testTemplate()
	piece, err := NewPiece(PieceRecord{
		Title:   "Trio in G: Allegro [draft]",
		Sources: []SourceRecord{{Name: "S", Link: "L"}},
	}, tmpl)
	require.NoError(t, err)

	wb := NewWorkbook(tmpl, WithFormatting(false))
	defer wb.Close()
	name, err := wb.CreatePieceSheet(piece)
	require.NoError(t, err)
	assert.Equal(t, "Trio in G_ Allegro _draft_", name)
}

func TestSafeSheetName_Truncates(t *testing.T) {
	long := "A piece with an unreasonably long title indeed"
	assert.Len(t, SafeSheetName(long), 31)
}

func TestColToName(t *testing.T) {
	assert.Equal(t, "A", ColToName(0))
	assert.Equal(t, "Z", ColToName(25))
	assert.Equal(t, "AA", ColToName(26))
	assert.Equal(t, "AB", ColToName(27))
}
