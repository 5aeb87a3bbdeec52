// Package orion
package orion

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Whole", input: "1", want: "1000000"},
		{name: "Fraction", input: "0.5", want: "500000"},
		{name: "SixDigits", input: "12.345678", want: "12345678"},
		{name: "TruncatesNotRounds", input: "1.2345678", want: "1234567"},
		{name: "TruncatesNines", input: "0.9999999", want: "999999"},
		{name: "BelowScale", input: "0.0000001", want: "0"},
		{name: "Whitespace", input: " 2.5 ", want: "2500000"},
		{name: "Large", input: "200000", want: "200000000000"},
		{name: "Empty", input: "", want: "0"},
		{name: "Negative", input: "-5", want: "0"},
		{name: "NonNumeric", input: "abc", want: "0"},
		{name: "Zero", input: "0", want: "0"},
		{name: "Exponent", input: "1.5e3", want: "1500000000"},
		{name: "MaxU64", input: "18446744073709.551615", want: "18446744073709551615"},
		{name: "AboveU64", input: "18446744073709.551616", want: "0"},
		{name: "AboveU64Integer", input: "18446744073709551616", want: "0"},
		{name: "HugeExponent", input: "1e50000000", want: "0"},
		{name: "TinyExponent", input: "1e-50000000", want: "0"},
		{name: "TooLong", input: "0." + strings.Repeat("1", 80), want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeAmount(tt.input))
		})
	}
}

func TestDecodeAmount(t *testing.T) {
	assert.Equal(t, 1.0, DecodeAmount("1000000"))
	assert.Equal(t, 0.5, DecodeAmount("500000"))
	assert.Equal(t, 0.0, DecodeAmount("garbage"))
	assert.Equal(t, 0.0, DecodeAmount("1e50000000"))
	assert.Equal(t, "1.234567", DecodeAmountDecimal("1234567").String())
}

func TestAmount_RoundTrip(t *testing.T) {
	for _, in := range []string{"0.000001", "1", "3.14", "120", "0.8", "2387.123456"} {
		t.Run(in, func(t *testing.T) {
			want, err := strconv.ParseFloat(in, 64)
			assert.NoError(t, err)
			assert.InDelta(t, want, DecodeAmount(EncodeAmount(in)), 1e-6)
			assert.Equal(t, in, DecodeAmountDecimal(EncodeAmount(in)).String())
		})
	}
}
