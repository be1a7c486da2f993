package plt

import (
	"testing"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		decimals uint8
		want     uint64
		wantErr  bool
	}{
		{"whole", "5", 2, 500, false},
		{"fraction", "12.34", 2, 1234, false},
		{"trailing zeros", "1.500", 2, 150, false},
		{"zero decimals", "42", 0, 42, false},
		{"zero", "0", 6, 0, false},
		{"negative", "-1", 2, 0, true},
		{"too precise", "0.001", 2, 0, true},
		{"not a number", "ten", 2, 0, true},
		{"overflow", "18446744073709551616", 0, 0, true},
		{"max", "18446744073709551615", 0, 18446744073709551615, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokenAmount(tt.input, tt.decimals)
			if tt.wantErr {
				assert.ErrorIs(t, err, lib.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.decimals, got.Decimals)
		})
	}
}

func TestTokenAmountString(t *testing.T) {
	assert.Equal(t, "12.34", TokenAmount{Value: 1234, Decimals: 2}.String())
	assert.Equal(t, "5", TokenAmount{Value: 500, Decimals: 2}.String())
	assert.Equal(t, "0", TokenAmount{Value: 0, Decimals: 6}.String())
}

func TestFormatUnits(t *testing.T) {
	got, err := FormatUnits("12345", 2)
	require.NoError(t, err)
	assert.Equal(t, "123.45", got)

	got, err = FormatUnits("1000000", 6)
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	_, err = FormatUnits("-3", 2)
	assert.ErrorIs(t, err, lib.ErrInvalidAmount)

	_, err = FormatUnits("abc", 2)
	assert.ErrorIs(t, err, lib.ErrInvalidAmount)
}
