// Package orion
package orion

import (
	"github.com/shopspring/decimal"
)

// Quote converts the amount on the pay side of a trade into the receive side at
// usdPerGram: grams for USDC paid, USDC for grams paid. Invalid input, and amounts
// no u64 argument could carry, quote zero.
func Quote(payIsUSDC bool, amount string, usdPerGram float64) decimal.Decimal {
	if usdPerGram <= 0 {
		return decimal.Zero
	}
	v, ok := parseAmount(amount)
	if !ok || v.Abs().Shift(Decimals).GreaterThan(MaxBaseUnits) {
		return decimal.Zero
	}
	price := decimal.NewFromFloat(usdPerGram)
	if payIsUSDC {
		return v.Div(price)
	}
	return v.Mul(price)
}
