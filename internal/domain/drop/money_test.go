//go:build unit

package drop

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuantize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"4", "4"},
		{"4.005", "4.01"}, // half up
		{"4.004", "4"},
		{"1.2349999", "1.23"},
		{"0.125", "0.13"},
	}
	for _, tc := range cases {
		got := quantize(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"quantize(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestMulShare(t *testing.T) {
	fee := decimal.RequireFromString("5")

	assert.True(t, mulShare(fee, decimal.RequireFromString("0.8")).Equal(decimal.RequireFromString("4")))
	assert.True(t, mulShare(fee, decimal.RequireFromString("0.2")).Equal(decimal.RequireFromString("1")))

	// 3.33 * 0.2 = 0.666 -> 0.67, not a finer-grained remainder.
	odd := mulShare(decimal.RequireFromString("3.33"), decimal.RequireFromString("0.2"))
	assert.True(t, odd.Equal(decimal.RequireFromString("0.67")))
	assert.LessOrEqual(t, int(-odd.Exponent()), 2)
}

func TestMaxDecimal(t *testing.T) {
	a := decimal.RequireFromString("1000")
	b := decimal.RequireFromString("996")
	assert.True(t, maxDecimal(a, b).Equal(a))
	assert.True(t, maxDecimal(b, a).Equal(a))
	assert.True(t, maxDecimal(a, a).Equal(a))
}
