package drop

import "github.com/shopspring/decimal"

// All monetary amounts are quantized to the smallest currency unit (two
// decimal places) immediately after every arithmetic step, so rounding error
// can never compound across thousands of view events.

func quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// mulShare multiplies an amount by a fractional share and quantizes the result.
func mulShare(amount, share decimal.Decimal) decimal.Decimal {
	return quantize(amount.Mul(share))
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
