package workbook

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/orggraph/records"
)

// ErrSheetMissing indicates a required sheet is absent. It is only returned
// in strict mode.
var ErrSheetMissing = errors.New("sheet missing")

// CellError reports a cell whose content cannot be converted to the column's
// type. It unwraps to records.ErrMalformedRecord.
type CellError struct {
	Sheet  string
	Row    int
	Column int
	Value  string
	Err    error
}

// Error implements the error interface.
func (e *CellError) Error() string {
	return fmt.Sprintf("%s!%s: %q: %v", e.Sheet, cellName(e.Column, e.Row), e.Value, e.Err)
}

// Unwrap returns the conversion error and records.ErrMalformedRecord.
func (e *CellError) Unwrap() []error {
	return []error{e.Err, records.ErrMalformedRecord}
}
