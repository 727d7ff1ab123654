// Package units converts between human token amounts and on-chain integer
// representations. Amounts pass through shopspring/decimal so the float
// outputs of the sizing math never lose precision twice on the way to wei.
package units

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToWei converts a decimal token amount to its integer representation with
// the given number of decimals, truncating sub-wei dust.
func ToWei(amount float64, decimals int) *big.Int {
	d := decimal.NewFromFloat(amount).Shift(int32(decimals))
	return d.Truncate(0).BigInt()
}

// ParseWei parses a decimal string ("1.5", "0.0001") into wei.
func ParseWei(s string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("amount %q must not be negative", s)
	}
	return d.Shift(int32(decimals)).Truncate(0).BigInt(), nil
}

// FromWei converts an integer amount back to a float for display and math.
func FromWei(wei *big.Int, decimals int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := decimal.NewFromBigInt(wei, -int32(decimals)).Float64()
	return f
}

// FormatWei renders an integer amount as a decimal string without
// float round-off, for console reporting.
func FormatWei(wei *big.Int, decimals int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -int32(decimals)).String()
}
