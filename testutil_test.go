package roseingrave

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// testTemplate returns a small template: three header fields, default bar
// count 4, a checkbox and a dropdown validation rule.
func testTemplate() *Template {
	return &Template{
		MetaDataFields: MetaDataFields{
			{Key: "keySig", Header: "Key sig."},
			{Key: "timeSig", Header: "Time sig."},
			{Key: "checked", Header: "Checked?"},
		},
		CommentFields: CommentFields{
			Comments: "Comments",
			Summary:  "SUMMARY",
			Notes:    "Notes",
		},
		Values: TemplateValues{
			DefaultBarCount:   4,
			CommentsRowHeight: 200,
		},
		Validation: map[string]ValidationRule{
			"checked": {Type: ValidationCheckbox},
			"timeSig": {Type: ValidationDropdown, Values: []string{"3/4", "4/4", "6/8"}},
		},
	}
}

// testPiece returns a piece with two sources; the second source's bar count
// (8) wins over the template default (4).
func testPiece(t *testing.T, tmpl *Template) *Piece {
	t.Helper()
	piece, err := NewPiece(PieceRecord{
		Title: "Abendlied",
		Link:  "https://imslp.org/abendlied",
		Sources: []SourceRecord{
			{Name: "S1", Link: "L1"},
			{Name: "S2", Link: "L2", BarCount: intPtr(8)},
		},
	}, tmpl)
	require.NoError(t, err)
	return piece
}

// testColumn builds contributor column data covering every template field
// and bar, tagged so cells are distinguishable in assertions.
func testColumn(tag string, barCount int) ColumnData {
	column := ColumnData{
		Fields: map[string]string{
			"keySig":  "F major " + tag,
			"timeSig": "4/4",
			"checked": "TRUE",
		},
		Bars:     make(map[string]string, barCount),
		Comments: "comment " + tag,
	}
	for bar := 1; bar <= barCount; bar++ {
		column.Bars[strconv.Itoa(bar)] = tag + "-" + strconv.Itoa(bar)
	}
	return column
}

// testPieceData returns contribution data for testPiece: two volunteers
// plus a summary for S1, one volunteer plus a summary for S2, and a notes
// entry on one header and one bar.
func testPieceData(barCount int) *PieceData {
	return &PieceData{
		Sources: map[string]SourceData{
			"S1": {
				Volunteers: []Volunteer{
					{Email: "a@x.com", ColumnData: testColumn("a", barCount)},
					{Email: "b@x.com", ColumnData: testColumn("b", barCount)},
				},
				Summary: testColumn("sum1", barCount),
			},
			"S2": {
				Volunteers: []Volunteer{
					{Email: "a@x.com", ColumnData: testColumn("a2", barCount)},
				},
				Summary: testColumn("sum2", barCount),
			},
		},
		Notes: NotesData{
			Fields: map[string][]NoteEntry{
				"keySig": {
					{Email: "a@x.com", Text: "maybe F minor"},
					{Email: "b@x.com", Text: "agreed"},
				},
			},
			Bars: map[string][]NoteEntry{
				"3": {{Email: "a@x.com", Text: "smudged"}},
			},
		},
	}
}
