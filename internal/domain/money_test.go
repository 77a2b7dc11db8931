package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "integer", input: "100", want: "100"},
		{name: "one fractional digit", input: "99.5", want: "99.5"},
		{name: "two fractional digits", input: "0.01", want: "0.01"},
		{name: "trailing zeros beyond scale are exact", input: "10.1000", want: "10.1"},
		{name: "negative parses", input: "-5.25", want: "-5.25"},
		{name: "zero", input: "0", want: "0"},
		{name: "three fractional digits", input: "10.001", wantErr: ErrInvalidAmount},
		{name: "not a number", input: "abc", wantErr: ErrInvalidAmount},
		{name: "empty string", input: "", wantErr: ErrInvalidAmount},
		{name: "scientific notation sub-cent", input: "1e-3", wantErr: ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMoney(tc.input)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestHasValidScale(t *testing.T) {
	assert.True(t, HasValidScale(decimal.RequireFromString("123.45")))
	assert.True(t, HasValidScale(decimal.RequireFromString("123.450")))
	assert.False(t, HasValidScale(decimal.RequireFromString("123.456")))
	assert.False(t, HasValidScale(decimal.RequireFromString("0.001")))
}
