package liquidity

import (
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seerkit/seerctl/internal/tickmath"
)

var (
	addrLow  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addrHigh = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestOrderTokensSymmetric(t *testing.T) {
	t0, t1, firstIs0 := OrderTokens(addrLow, addrHigh)
	assert.Equal(t, addrLow, t0)
	assert.Equal(t, addrHigh, t1)
	assert.True(t, firstIs0)

	t0r, t1r, firstIs0r := OrderTokens(addrHigh, addrLow)
	assert.Equal(t, t0, t0r)
	assert.Equal(t, t1, t1r)
	assert.False(t, firstIs0r)
}

func TestRangeToTicksValidation(t *testing.T) {
	cases := []struct {
		name           string
		low, high      float64
		spacing        int
		wantErrSubstr  string
	}{
		{"low above high", 0.8, 0.2, 60, "must be below"},
		{"equal bounds", 0.5, 0.5, 60, "must be below"},
		{"low out of range", 0, 0.5, 60, "inside (0, 1)"},
		{"high out of range", 0.5, 1.0, 60, "inside (0, 1)"},
		{"negative", -0.1, 0.5, 60, "inside (0, 1)"},
		{"collapses to single tick", 0.49999, 0.50001, 60, "collapses"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := RangeToTicks(c.low, c.high, true, c.spacing)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErrSubstr)
		})
	}
}

func TestRangeToTicksNearestRounding(t *testing.T) {
	// Ticks round to the nearest spacing multiple. A narrow range whose
	// bounds straddle a rounding boundary stays two ticks wide even though
	// a conservative floor/floor would collapse it.
	lo, hi, err := RangeToTicks(0.4999, 0.5001, true, 60)
	require.NoError(t, err)
	assert.Equal(t, -6960, lo)
	assert.Equal(t, -6900, hi)

	// Both bounds rounding to the same multiple is the collapse case.
	_, _, err = RangeToTicks(0.49999, 0.50001, true, 60)
	require.Error(t, err)
}

func TestRangeToTicksInversion(t *testing.T) {
	// Outcome as token0: ticks sit on the probability directly.
	lo, hi, err := RangeToTicks(0.2, 0.8, true, 60)
	require.NoError(t, err)
	assert.Equal(t, tickmath.PriceToTick(0.2, 60), lo)
	assert.Equal(t, tickmath.PriceToTick(0.8, 60), hi)

	// Outcome as token1: the pool price is 1/probability, so the range
	// inverts and flips.
	lo1, hi1, err := RangeToTicks(0.2, 0.8, false, 60)
	require.NoError(t, err)
	assert.Equal(t, tickmath.PriceToTick(1/0.8, 60), lo1)
	assert.Equal(t, tickmath.PriceToTick(1/0.2, 60), hi1)
	assert.Equal(t, lo1, -hi)
	assert.Equal(t, hi1, -lo)
}

func TestSizeBudgetExact(t *testing.T) {
	q, err := Size(SizeParams{
		ProbLow:         0.2,
		ProbHigh:        0.8,
		InitProb:        0.5,
		TickSpacing:     60,
		OutcomeIsToken0: true,
		Budget:          1.0,
		CollateralRate:  1.0,
	})
	require.NoError(t, err)

	assert.Equal(t, tickmath.PriceToTick(0.2, 60), q.TickLower)
	assert.Equal(t, tickmath.PriceToTick(0.8, 60), q.TickUpper)

	// Outcome tokens are the reference unit; collateral converts at the
	// rate. Total cost must hit the budget exactly.
	cost := q.OutcomeAmount + q.CollateralAmount*1.0
	assert.InEpsilon(t, 1.0, cost, 1e-9)
	assert.Positive(t, q.Liquidity)
	assert.Positive(t, q.OutcomeAmount)
	assert.Positive(t, q.CollateralAmount)
}

func TestSizeBudgetExactWithRate(t *testing.T) {
	const rate = 1.1537
	q, err := Size(SizeParams{
		ProbLow:         0.35,
		ProbHigh:        0.65,
		TickSpacing:     60,
		OutcomeIsToken0: false,
		Budget:          2.5,
		CollateralRate:  rate,
	})
	require.NoError(t, err)

	cost := q.OutcomeAmount + q.CollateralAmount*rate
	assert.InEpsilon(t, 2.5, cost, 1e-9)

	// Token ordering maps collateral to token0 here.
	assert.Equal(t, q.CollateralAmount, q.Amount0)
	assert.Equal(t, q.OutcomeAmount, q.Amount1)
}

func TestSizeDefaultsInitProbToMidpoint(t *testing.T) {
	q, err := Size(SizeParams{
		ProbLow: 0.2, ProbHigh: 0.8, TickSpacing: 60,
		OutcomeIsToken0: true, Budget: 1, CollateralRate: 1,
	})
	require.NoError(t, err)
	assert.InEpsilon(t, math.Sqrt(0.5), q.SqrtPrice, 1e-12)
}

func TestSizeRejectsDegenerateRange(t *testing.T) {
	_, err := Size(SizeParams{
		ProbLow: 0.49999, ProbHigh: 0.50001, TickSpacing: 60,
		OutcomeIsToken0: true, Budget: 1, CollateralRate: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collapses")
}

func TestSizeRejectsInitProbOutsideRange(t *testing.T) {
	_, err := Size(SizeParams{
		ProbLow: 0.2, ProbHigh: 0.8, InitProb: 0.9, TickSpacing: 60,
		OutcomeIsToken0: true, Budget: 1, CollateralRate: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the range")
}

func TestSizeRejectsMissingRate(t *testing.T) {
	_, err := Size(SizeParams{
		ProbLow: 0.2, ProbHigh: 0.8, TickSpacing: 60,
		OutcomeIsToken0: true, Budget: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collateral rate")
}

func TestValueZeroLiquidity(t *testing.T) {
	v := Value(-13860, -2220, 0, -6960, false)
	assert.Zero(t, v.OutcomeAmount)
	assert.Zero(t, v.CollateralAmount)
}

func TestValueLabelsFollowOrdering(t *testing.T) {
	tickLower, tickUpper, current := -13860, -2220, -6960
	const liq = 1e6

	a0, a1 := tickmath.ReservesForLiquidity(liq, tickLower, tickUpper, current)

	// Collateral as token1: outcome gets amount0.
	v := Value(tickLower, tickUpper, liq, current, false)
	assert.Equal(t, a0, v.OutcomeAmount)
	assert.Equal(t, a1, v.CollateralAmount)

	// Collateral as token0: labels swap.
	v = Value(tickLower, tickUpper, liq, current, true)
	assert.Equal(t, a1, v.OutcomeAmount)
	assert.Equal(t, a0, v.CollateralAmount)
}

func TestSizeQuoteMatchesReserves(t *testing.T) {
	// The quoted amounts must be what the reserve formula says a position
	// of the quoted liquidity holds at the initial tick, to within the
	// tick-rounding error of the initial price.
	q, err := Size(SizeParams{
		ProbLow: 0.2, ProbHigh: 0.8, InitProb: 0.5, TickSpacing: 60,
		OutcomeIsToken0: true, Budget: 1, CollateralRate: 1,
	})
	require.NoError(t, err)

	initTick := tickmath.PriceToTick(0.5, 1)
	a0, a1 := tickmath.ReservesForLiquidity(q.Liquidity, q.TickLower, q.TickUpper, initTick)
	assert.InEpsilon(t, q.Amount0, a0, 1e-3)
	assert.InEpsilon(t, q.Amount1, a1, 1e-3)
}
