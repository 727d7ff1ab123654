// Package tickmath implements conversions between prices and the
// base-1.0001 logarithmic tick grid used by concentrated-liquidity AMMs,
// and the reserve math for a liquidity position on that grid.
//
// Everything here is pure float math with no I/O. Callers that need
// on-chain fixed-point encodings go through SqrtPriceX96.
package tickmath

import (
	"math"
	"math/big"
)

// TickBase is the price ratio between two adjacent ticks.
const TickBase = 1.0001

var q96 = new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 96))

// PriceToTick maps a token1/token0 price onto the nearest tick that is a
// multiple of spacing. The log is taken as ln(price)/ln(1.0001) to keep the
// base change numerically stable for prices close to 0 or 1.
//
// No bounds validation happens here; out-of-range ticks are rejected by the
// pool contracts downstream.
func PriceToTick(price float64, spacing int) int {
	raw := math.Log(price) / math.Log(TickBase)
	return int(math.Round(raw/float64(spacing))) * spacing
}

// TickToSqrtPrice returns sqrt(1.0001^tick).
func TickToSqrtPrice(tick int) float64 {
	return math.Sqrt(math.Pow(TickBase, float64(tick)))
}

// SqrtPriceX96 encodes a sqrt-price as the Q64.96 fixed-point integer the
// pool contracts expect: floor(sqrtPrice * 2^96).
func SqrtPriceX96(sqrtPrice float64) *big.Int {
	f := new(big.Float).Mul(big.NewFloat(sqrtPrice), q96)
	out, _ := f.Int(nil)
	return out
}

// SqrtPriceFromX96 is the inverse of SqrtPriceX96, used when reading pool
// state back from chain.
func SqrtPriceFromX96(x96 *big.Int) float64 {
	f := new(big.Float).Quo(new(big.Float).SetInt(x96), q96)
	out, _ := f.Float64()
	return out
}

// AmountsPerLiquidity returns the token0 and token1 amounts required per
// unit of liquidity for a position spanning [sqrtPa, sqrtPb] with the pool
// at sqrtP, assuming sqrtP is inside the range:
//
//	amount0/L = (sqrtPb - sqrtP) / (sqrtP * sqrtPb)
//	amount1/L = sqrtP - sqrtPa
func AmountsPerLiquidity(sqrtP, sqrtPa, sqrtPb float64) (a0PerL, a1PerL float64) {
	a0PerL = (sqrtPb - sqrtP) / (sqrtP * sqrtPb)
	a1PerL = sqrtP - sqrtPa
	return a0PerL, a1PerL
}

// ReservesForLiquidity computes the token amounts owned by a position of
// the given liquidity over [tickLower, tickUpper] with the pool at
// currentTick. Three regions:
//
//   - pool below the range: all value sits in token0
//   - pool at or above the upper bound: all value sits in token1
//   - pool inside the range: split per the in-range formulas
//
// Both new-position sizing and existing-position valuation are built on
// this, so the case split must agree exactly with the pool contracts.
func ReservesForLiquidity(liquidity float64, tickLower, tickUpper, currentTick int) (amount0, amount1 float64) {
	sqrtPa := TickToSqrtPrice(tickLower)
	sqrtPb := TickToSqrtPrice(tickUpper)

	switch {
	case currentTick < tickLower:
		amount0 = liquidity * (1/sqrtPa - 1/sqrtPb)
		amount1 = 0
	case currentTick >= tickUpper:
		amount0 = 0
		amount1 = liquidity * (sqrtPb - sqrtPa)
	default:
		sqrtP := TickToSqrtPrice(currentTick)
		amount0 = liquidity * (1/sqrtP - 1/sqrtPb)
		amount1 = liquidity * (sqrtP - sqrtPa)
	}
	return amount0, amount1
}
