package roseingrave

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps the spreadsheet backend: it writes grids and formatting
// directive batches into worksheets, and reads worksheets back as
// formula-preserving grids for export. One sheet per piece.
type Workbook struct {
	file  *excelize.File
	tmpl  *Template
	opts  *Options
	fresh bool // still holds only the backend's default empty sheet
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(tmpl *Template, opts ...Option) *Workbook {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Workbook{file: excelize.NewFile(), tmpl: tmpl, opts: o, fresh: true}
}

// OpenWorkbook opens an existing workbook file for export.
func OpenWorkbook(path string, tmpl *Template, opts ...Option) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Workbook{file: f, tmpl: tmpl, opts: o}, nil
}

// OpenWorkbookReader opens a workbook from a reader for export.
func OpenWorkbookReader(r io.Reader, tmpl *Template, opts ...Option) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Workbook{file: f, tmpl: tmpl, opts: o}, nil
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// CreatePieceSheet lays out and writes the sheet for a piece, then applies
// its formatting batch. Returns the worksheet name.
func (w *Workbook) CreatePieceSheet(p *Piece) (string, error) {
	grid, offsets := BuildSheetGrid(p)
	name, err := w.addSheet(p.Name(), grid)
	if err != nil {
		return "", err
	}
	if w.opts.applyFormatting {
		if err := w.applyDirectives(name, PlanSheetFormat(w.tmpl, offsets)); err != nil {
			return "", fmt.Errorf("format sheet %q: %w", name, err)
		}
	}
	return name, nil
}

// CreateMasterSheet lays out and writes the aggregated master sheet for a
// piece, then applies its formatting batch. Returns the worksheet name.
func (w *Workbook) CreateMasterSheet(p *Piece, data *PieceData) (string, error) {
	grid, offsets, err := BuildMasterGrid(p, data)
	if err != nil {
		return "", err
	}
	name, err := w.addSheet(p.Name(), grid)
	if err != nil {
		return "", err
	}
	if w.opts.applyFormatting {
		if err := w.applyDirectives(name, PlanMasterFormat(w.tmpl, offsets)); err != nil {
			return "", fmt.Errorf("format sheet %q: %w", name, err)
		}
	}
	return name, nil
}

// ReadGrid reads a worksheet as raw cell strings with formulas preserved:
// a formula cell yields its "="-prefixed formula, never a computed value.
func (w *Workbook) ReadGrid(sheetName string) (Grid, error) {
	rows, err := w.file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	grid := Grid(rows)
	for r := range grid {
		for c := range grid[r] {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			formula, err := w.file.GetCellFormula(sheetName, cell)
			if err != nil {
				return nil, fmt.Errorf("read sheet %q cell %s: %w", sheetName, cell, err)
			}
			if formula != "" {
				grid[r][c] = "=" + strings.TrimPrefix(formula, "=")
			}
		}
	}
	return grid, nil
}

// Save writes the workbook to a file.
func (w *Workbook) Save(path string) error {
	return w.file.SaveAs(path)
}

// Write writes the workbook to an io.Writer.
func (w *Workbook) Write(out io.Writer) error {
	_, err := w.file.WriteTo(out)
	return err
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// addSheet creates a worksheet and writes the grid into it. The first sheet
// of a fresh workbook takes over the backend's default sheet. Formula
// strings become cell formulas; bar numbers become numeric cells unless
// raw bar numbers were requested.
func (w *Workbook) addSheet(title string, grid Grid) (string, error) {
	name := SafeSheetName(title)
	if w.fresh {
		defaultName := w.file.GetSheetName(0)
		if name != defaultName {
			if err := w.file.SetSheetName(defaultName, name); err != nil {
				return "", fmt.Errorf("add sheet %q: %w", name, err)
			}
		}
		w.fresh = false
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return "", fmt.Errorf("add sheet %q: %w", name, err)
		}
	}

	for r, row := range grid {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return "", err
			}
			if err := w.setCell(name, cell, value); err != nil {
				return "", fmt.Errorf("sheet %q cell %s: %w", name, cell, err)
			}
		}
	}
	return name, nil
}

func (w *Workbook) setCell(sheet, cell, value string) error {
	if strings.HasPrefix(value, "=") {
		return w.file.SetCellFormula(sheet, cell, strings.TrimPrefix(value, "="))
	}
	if !w.opts.rawBarNumbers {
		if n, err := strconv.Atoi(value); err == nil {
			return w.file.SetCellValue(sheet, cell, n)
		}
	}
	return w.file.SetCellValue(sheet, cell, value)
}

// borderStyles maps directive border styles to the backend's style codes.
var borderStyles = map[string]int{
	BorderSolid:  1,
	BorderDotted: 4,
	BorderDouble: 6,
}

// vertAlign maps directive vertical alignments to the backend's names.
func vertAlign(v string) string {
	if v == "middle" {
		return "center"
	}
	return v
}

// applyDirectives applies a formatting directive batch to a worksheet.
// Cell-level directives (formats, borders, banding fills) are accumulated
// per cell first so overlapping ranges merge instead of overwriting, then
// flushed as backend styles.
func (w *Workbook) applyDirectives(sheet string, directives []Directive) error {
	acc := newStyleAccumulator()

	for _, directive := range directives {
		switch d := directive.(type) {
		case CellFormat:
			acc.each(d.Range, func(s *excelize.Style) {
				if d.Bold {
					if s.Font == nil {
						s.Font = &excelize.Font{}
					}
					s.Font.Bold = true
				}
				if s.Alignment == nil {
					s.Alignment = &excelize.Alignment{}
				}
				if d.HAlign != "" {
					s.Alignment.Horizontal = d.HAlign
				}
				if d.VAlign != "" {
					s.Alignment.Vertical = vertAlign(d.VAlign)
				}
				if d.Wrap {
					s.Alignment.WrapText = true
				}
			})
		case Border:
			sides := []struct{ side, style string }{
				{"top", d.Top}, {"bottom", d.Bottom}, {"left", d.Left},
			}
			acc.each(d.Range, func(s *excelize.Style) {
				for _, b := range sides {
					if b.style == "" {
						continue
					}
					s.Border = append(s.Border, excelize.Border{
						Type:  b.side,
						Style: borderStyles[b.style],
						Color: "000000",
					})
				}
			})
		case Banding:
			for row := d.Range.StartRow; row <= d.Range.EndRow; row++ {
				color := bandColor(d, row)
				rowRange := Range{
					StartRow: row, EndRow: row,
					StartCol: d.Range.StartCol, EndCol: d.Range.EndCol,
				}
				acc.each(rowRange, func(s *excelize.Style) {
					s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
				})
			}
		case MergeCells:
			topLeft, bottomRight, err := rangeCorners(d.Range)
			if err != nil {
				return err
			}
			if err := w.file.MergeCell(sheet, topLeft, bottomRight); err != nil {
				return fmt.Errorf("merge %s:%s: %w", topLeft, bottomRight, err)
			}
		case ColWidth:
			// excelize takes character units, not pixels
			width := float64(d.Width) / 7.0
			start, end := ColToName(d.StartCol-1), ColToName(d.EndCol-1)
			if err := w.file.SetColWidth(sheet, start, end, width); err != nil {
				return fmt.Errorf("set width of columns %s:%s: %w", start, end, err)
			}
		case RowHeight:
			// pixels to points
			if err := w.file.SetRowHeight(sheet, d.Row, float64(d.Height)*0.75); err != nil {
				return fmt.Errorf("set height of row %d: %w", d.Row, err)
			}
		case Freeze:
			topLeft, err := excelize.CoordinatesToCellName(d.Cols+1, d.Rows+1)
			if err != nil {
				return err
			}
			err = w.file.SetPanes(sheet, &excelize.Panes{
				Freeze:      true,
				XSplit:      d.Cols,
				YSplit:      d.Rows,
				TopLeftCell: topLeft,
				ActivePane:  "bottomRight",
			})
			if err != nil {
				return fmt.Errorf("freeze panes: %w", err)
			}
		case DataValidation:
			if err := w.addDataValidation(sheet, d); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown directive kind %q", directive.Kind())
		}
	}

	return acc.flush(w.file, sheet)
}

func (w *Workbook) addDataValidation(sheet string, d DataValidation) error {
	topLeft, bottomRight, err := rangeCorners(d.Range)
	if err != nil {
		return err
	}
	dv := excelize.NewDataValidation(true)
	dv.Sqref = topLeft + ":" + bottomRight

	values := d.Values
	if d.Type == ValidationCheckbox {
		// xlsx has no native checkbox rule
		values = []string{"TRUE", "FALSE"}
	}
	if err := dv.SetDropList(values); err != nil {
		return fmt.Errorf("data validation %s: %w", dv.Sqref, err)
	}
	if err := w.file.AddDataValidation(sheet, dv); err != nil {
		return fmt.Errorf("data validation %s: %w", dv.Sqref, err)
	}
	return nil
}

// bandColor picks the banding color for a row: the first row of the banded
// range is the header, the rest alternate.
func bandColor(d Banding, row int) string {
	i := row - d.Range.StartRow
	switch {
	case i == 0:
		return d.HeaderColor
	case (i-1)%2 == 0:
		return d.FirstColor
	default:
		return d.SecondColor
	}
}

func rangeCorners(r Range) (topLeft, bottomRight string, err error) {
	topLeft, err = excelize.CoordinatesToCellName(r.StartCol, r.StartRow)
	if err != nil {
		return "", "", err
	}
	bottomRight, err = excelize.CoordinatesToCellName(r.EndCol, r.EndRow)
	if err != nil {
		return "", "", err
	}
	return topLeft, bottomRight, nil
}

// styleAccumulator merges cell-level formatting per cell before flushing,
// since the backend replaces a cell's whole style on every assignment.
type styleAccumulator struct {
	cells map[[2]int]*excelize.Style // [row, col], 1-indexed
	order [][2]int
}

func newStyleAccumulator() *styleAccumulator {
	return &styleAccumulator{cells: make(map[[2]int]*excelize.Style)}
}

func (a *styleAccumulator) each(r Range, mutate func(*excelize.Style)) {
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			key := [2]int{row, col}
			style, ok := a.cells[key]
			if !ok {
				style = &excelize.Style{}
				a.cells[key] = style
				a.order = append(a.order, key)
			}
			mutate(style)
		}
	}
}

func (a *styleAccumulator) flush(f *excelize.File, sheet string) error {
	// styles are deduplicated by fingerprint; sheets reuse a handful of
	// distinct combinations
	ids := make(map[string]int)
	for _, key := range a.order {
		style := a.cells[key]
		fp := styleFingerprint(style)
		id, ok := ids[fp]
		if !ok {
			var err error
			id, err = f.NewStyle(style)
			if err != nil {
				return fmt.Errorf("create style: %w", err)
			}
			ids[fp] = id
		}
		cell, err := excelize.CoordinatesToCellName(key[1], key[0])
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
			return fmt.Errorf("style cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleFingerprint(s *excelize.Style) string {
	var b strings.Builder
	if s.Font != nil && s.Font.Bold {
		b.WriteString("b;")
	}
	if s.Alignment != nil {
		fmt.Fprintf(&b, "a:%s,%s,%t;", s.Alignment.Horizontal, s.Alignment.Vertical, s.Alignment.WrapText)
	}
	for _, border := range s.Border {
		fmt.Fprintf(&b, "bd:%s,%d;", border.Type, border.Style)
	}
	if len(s.Fill.Color) > 0 {
		fmt.Fprintf(&b, "f:%s;", s.Fill.Color[0])
	}
	return b.String()
}
