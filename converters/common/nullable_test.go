package common

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_ToStructured(t *testing.T) {
	when := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   interface{}
		want    interface{}
		wantErr bool
	}{
		{name: "valid string", input: null.StringFrom("M0CMC"), want: "M0CMC"},
		{name: "invalid string", input: null.String{}, want: nil},
		{name: "valid bool", input: null.BoolFrom(true), want: true},
		{name: "invalid bool", input: null.Bool{}, want: nil},
		{name: "valid int", input: null.IntFrom(599), want: 599},
		{name: "invalid int", input: null.Int{}, want: nil},
		{name: "valid int64", input: null.Int64From(14074000), want: int64(14074000)},
		{name: "invalid int64", input: null.Int64{}, want: nil},
		{name: "valid float64", input: null.Float64From(14.074), want: 14.074},
		{name: "invalid float64", input: null.Float64{}, want: nil},
		{name: "valid time", input: null.TimeFrom(when), want: when},
		{name: "invalid time", input: null.Time{}, want: nil},
		{name: "valuer int8", input: null.Int8From(7), want: int64(7)},
		{name: "valuer invalid uint32", input: null.Uint32{}, want: nil},
		{name: "plain string", input: "plain", want: "plain"},
		{name: "plain int", input: 42, want: 42},
		{name: "nil", input: nil, want: nil},
		{name: "unsupported", input: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewNullable().ToStructured(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
