package workbook

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// row reads typed values from one sheet row. The first conversion error is
// kept and later reads become no-ops that return zero values.
type row struct {
	sheet string
	num   int // one-based, as shown in spreadsheet tools
	cells []string
	err   error
}

func (r *row) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// raw returns the trimmed cell at a one-based column, or "".
func (r *row) raw(col int) string {
	if col-1 >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[col-1])
}

func (r *row) fail(col int, err error) {
	if r.err == nil {
		r.err = &CellError{Sheet: r.sheet, Row: r.num, Column: col, Value: r.raw(col), Err: err}
	}
}

func (r *row) str(col int) string {
	return r.raw(col)
}

func (r *row) optStr(col int) *string {
	if v := r.raw(col); v != "" {
		return &v
	}
	return nil
}

// int64 parses an integer cell. Empty cells are 0. Integral floats such as
// "7.0" are accepted since spreadsheets store every number as a float.
func (r *row) int64(col int) int64 {
	v := r.raw(col)
	if v == "" || r.err != nil {
		return 0
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(col, fmt.Errorf("not a number"))
		return 0
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		r.fail(col, fmt.Errorf("not an integer"))
		return 0
	}
	return int64(f)
}

func (r *row) optInt64(col int) *int64 {
	if r.raw(col) == "" {
		return nil
	}
	n := r.int64(col)
	return &n
}

func (r *row) int(col int) int {
	return int(r.int64(col))
}

func (r *row) float(col int) float64 {
	v := r.raw(col)
	if v == "" || r.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(col, fmt.Errorf("not a number"))
		return 0
	}
	return f
}

// date parses an optional date cell: an Excel serial number or text in one
// of dateLayouts.
func (r *row) date(col int) *time.Time {
	v := r.raw(col)
	if v == "" || r.err != nil {
		return nil
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			r.fail(col, err)
			return nil
		}
		return &t
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	r.fail(col, fmt.Errorf("not a date"))
	return nil
}

func cellName(col, rowNum int) string {
	name, err := excelize.CoordinatesToCellName(col, rowNum)
	if err != nil {
		return fmt.Sprintf("R%dC%d", rowNum, col)
	}
	return name
}
