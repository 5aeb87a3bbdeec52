// Package orion
package orion

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed-point scale of every on-chain amount handled by the contract.
const Decimals = 6

// maxAmountLen bounds amount text and the exponent it may carry. A u64 needs 20
// digits; the rest is room for a long fraction that gets truncated.
const maxAmountLen = 64

// MaxBaseUnits is the largest amount a u64 argument can carry.
var MaxBaseUnits = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// parseAmount parses v with bounded digits and exponent, so no later Shift, Mul
// or Div has to materialize more than a few dozen digits.
func parseAmount(value string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(value)
	if v == "" || len(v) > maxAmountLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	if e := d.Exponent(); e > maxAmountLen || e < -maxAmountLen {
		return decimal.Zero, false
	}
	return d, true
}

// EncodeAmount converts a human decimal string into the base-10 integer string the
// contract expects, truncating past 6 fractional digits. Empty, negative or
// non-numeric input yields "0" so a form field being typed never blocks, and so
// does anything above the u64 range.
func EncodeAmount(value string) string {
	d, ok := parseAmount(value)
	if !ok || d.Sign() <= 0 {
		return "0"
	}
	units := d.Shift(Decimals).Truncate(0)
	if units.GreaterThan(MaxBaseUnits) {
		return "0"
	}
	return units.String()
}

// DecodeAmountDecimal reads a 6-decimal integer string. Invalid input is zero.
func DecodeAmountDecimal(raw string) decimal.Decimal {
	d, ok := parseAmount(raw)
	if !ok {
		return decimal.Zero
	}
	return d.Shift(-Decimals)
}

// DecodeAmount is DecodeAmountDecimal as a float, for display only.
func DecodeAmount(raw string) float64 {
	f, _ := DecodeAmountDecimal(raw).Float64()
	return f
}
