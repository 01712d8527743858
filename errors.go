package roseingrave

import "fmt"

// ValidationError reports an invalid input record at construction time.
type ValidationError struct {
	Field   string // offending field or key
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SheetError reports a structural problem found while exporting a sheet,
// located by sheet name and, when applicable, a column letter. Export
// returns it as a value so batch exports can continue past one bad sheet.
type SheetError struct {
	Sheet  string
	Column string // column letter like "B", empty if not column-specific
	Err    error
}

func (e *SheetError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("sheet %q: column %s: %v", e.Sheet, e.Column, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

func newSheetError(sheet, column string, format string, args ...any) *SheetError {
	return &SheetError{Sheet: sheet, Column: column, Err: fmt.Errorf(format, args...)}
}
