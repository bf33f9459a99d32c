package workbook

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_Int64(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    int64
		wantErr bool
	}{
		{name: "empty", cell: "", want: 0},
		{name: "plain", cell: "42", want: 42},
		{name: "integral float", cell: "7.0", want: 7},
		{name: "min int64", cell: "-9223372036854775808", want: math.MinInt64},
		{name: "fraction", cell: "7.5", wantErr: true},
		{name: "just past max int64", cell: "9223372036854775808", wantErr: true},
		{name: "huge exponent", cell: "1e20", wantErr: true},
		{name: "huge negative", cell: "-1e20", wantErr: true},
		{name: "text", cell: "seven", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &row{sheet: SheetEmployees, num: 2, cells: []string{tt.cell}}
			got := r.int64(1)
			if tt.wantErr {
				assert.Error(t, r.err)
				assert.Zero(t, got)
				return
			}
			assert.NoError(t, r.err)
			assert.Equal(t, tt.want, got)
		})
	}
}
