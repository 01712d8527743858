package roseingrave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSheetGrid(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)

	grid, offsets := BuildSheetGrid(piece)

	// title row: piece hyperlink, one per source, notes label
	require.Len(t, grid[0], 4)
	assert.Equal(t, `=HYPERLINK("https://imslp.org/abendlied", "Abendlied")`, grid[0][0])
	assert.Equal(t, `=HYPERLINK("L1", "S1")`, grid[0][1])
	assert.Equal(t, `=HYPERLINK("L2", "S2")`, grid[0][2])
	assert.Equal(t, "Notes", grid[0][3])

	// header labels in column A
	assert.Equal(t, []string{"Key sig."}, grid[1])
	assert.Equal(t, []string{"Time sig."}, grid[2])
	assert.Equal(t, []string{"Checked?"}, grid[3])

	// blank, 8 bars, blank, comments
	require.Len(t, grid, 15)
	assert.Empty(t, grid[4])
	assert.Equal(t, []string{"1"}, grid[5])
	assert.Equal(t, []string{"8"}, grid[12])
	assert.Empty(t, grid[13])
	assert.Equal(t, []string{"Comments"}, grid[14])

	assert.Equal(t, SheetOffsets{
		NotesCol:    4,
		BlankRow1:   5,
		BlankRow2:   14,
		CommentsRow: 15,
	}, offsets)
}

func TestBuildSheetGrid_DefaultBarCount(t *testing.T) {
	tmpl := testTemplate()
	piece, err := NewPiece(PieceRecord{
		Title:   "P",
		Sources: []SourceRecord{{Name: "S", Link: "L"}},
	}, tmpl)
	require.NoError(t, err)

	grid, offsets := BuildSheetGrid(piece)
	// 1 title + 3 headers + blank + 4 bars + blank + comments
	assert.Len(t, grid, 11)
	assert.Equal(t, 10, offsets.BlankRow2)
}

func TestBuildMasterGrid(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	data := testPieceData(piece.FinalBarCount())

	grid, offsets, err := BuildMasterGrid(piece, data)
	require.NoError(t, err)

	// row 1: title, S1 group (3 cols), S2 group (2 cols), notes
	require.Len(t, grid[0], 7)
	assert.Equal(t, `=HYPERLINK("L1", "S1")`, grid[0][1])
	assert.Empty(t, grid[0][2])
	assert.Empty(t, grid[0][3])
	assert.Equal(t, `=HYPERLINK("L2", "S2")`, grid[0][4])
	assert.Empty(t, grid[0][5])
	assert.Equal(t, "Notes", grid[0][6])

	// row 2: volunteer emails, summary label per group
	assert.Equal(t, []string{"Volunteer", "a@x.com", "b@x.com", "SUMMARY", "a@x.com", "SUMMARY"}, grid[1])

	// header row carries per-column values plus the joined notes
	require.Len(t, grid[2], 7)
	assert.Equal(t, "Key sig.", grid[2][0])
	assert.Equal(t, "F major a", grid[2][1])
	assert.Equal(t, "F major sum1", grid[2][3])
	assert.Equal(t, "a@x.com: maybe F minor\nb@x.com: agreed", grid[2][6])

	// bar rows: label in column A, one value per column, notes at the end
	bar3 := grid[5+3] // bars start at 0-indexed row 6
	assert.Equal(t, "3", bar3[0])
	assert.Equal(t, "a-3", bar3[1])
	assert.Equal(t, "sum2-3", bar3[5])
	assert.Equal(t, "a@x.com: smudged", bar3[6])

	// comments row
	comments := grid[len(grid)-1]
	assert.Equal(t, "Comments", comments[0])
	assert.Equal(t, "comment b", comments[2])

	assert.Equal(t, MasterOffsets{
		NotesCol:    7,
		BlankRow1:   6,
		BlankRow2:   15,
		CommentsRow: 16,
		SourceCols:  []int{2, 5},
	}, offsets)
}

func TestBuildMasterGrid_MissingSourceData(t *testing.T) {
	tmpl := testTemplate()
	piece := testPiece(t, tmpl)
	data := testPieceData(piece.FinalBarCount())
	delete(data.Sources, "S2")

	_, _, err := BuildMasterGrid(piece, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"S2"`)
}
