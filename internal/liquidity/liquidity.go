// Package liquidity sizes new concentrated-liquidity positions from a
// probability range and a budget, and values existing positions from their
// tick range and the pool's current tick.
package liquidity

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	"github.com/seerkit/seerctl/internal/tickmath"
)

// OrderTokens canonicalizes a token pair by ascending address, the same
// ordering the pool contracts use. The returned flag says whether a came
// out as token0. Every site that references the pair (pool lookup, mint,
// valuation) must go through this so amount labels never flip.
func OrderTokens(a, b common.Address) (token0, token1 common.Address, aIsToken0 bool) {
	if bytes.Compare(a.Bytes(), b.Bytes()) < 0 {
		return a, b, true
	}
	return b, a, false
}

// RangeToTicks maps a probability range onto tick bounds, honoring token
// ordering. Tick coordinates are defined on the token1/token0 price: when
// the outcome token is token0 the pool price is probability directly, and
// when it is token1 the pool price is 1/probability, so the range inverts.
func RangeToTicks(probLow, probHigh float64, outcomeIsToken0 bool, spacing int) (tickLower, tickUpper int, err error) {
	if probLow <= 0 || probLow >= 1 || probHigh <= 0 || probHigh >= 1 {
		return 0, 0, fmt.Errorf("probabilities must be inside (0, 1), got [%v, %v]", probLow, probHigh)
	}
	if probLow >= probHigh {
		return 0, 0, fmt.Errorf("prob-low %v must be below prob-high %v", probLow, probHigh)
	}

	if outcomeIsToken0 {
		tickLower = tickmath.PriceToTick(probLow, spacing)
		tickUpper = tickmath.PriceToTick(probHigh, spacing)
	} else {
		tickLower = tickmath.PriceToTick(1/probHigh, spacing)
		tickUpper = tickmath.PriceToTick(1/probLow, spacing)
	}

	if tickLower >= tickUpper {
		return 0, 0, fmt.Errorf("range [%v, %v] collapses to a single tick at spacing %d; widen the range",
			probLow, probHigh, spacing)
	}
	return tickLower, tickUpper, nil
}

// SizeParams is the input to Size. Budget is expressed in native-currency
// terms; CollateralRate converts one collateral share into native terms and
// must come from a live ERC-4626 convertToAssets read, never a default.
type SizeParams struct {
	ProbLow  float64
	ProbHigh float64
	// InitProb is the pool's initial probability. Zero means the midpoint
	// of the range.
	InitProb        float64
	TickSpacing     int
	OutcomeIsToken0 bool
	Budget          float64
	CollateralRate  float64
}

// Quote is a sized position: the liquidity to mint and the exact token
// amounts to supply, both in outcome/collateral terms and mapped onto the
// canonical token0/token1 ordering. Consumed immediately by the mint call.
type Quote struct {
	Liquidity        float64
	OutcomeAmount    float64
	CollateralAmount float64
	Amount0          float64
	Amount1          float64
	TickLower        int
	TickUpper        int
	// SqrtPrice is the pool sqrt-price at InitProb, used to initialize the
	// pool when it does not exist yet.
	SqrtPrice float64
}

// Size computes the liquidity and token amounts for a budget. The cost of a
// position is linear in liquidity at a fixed price, so the solve is closed
// form:
//
//	budget = L*outcomePerL + L*collateralPerL*rate
//	L      = budget / (outcomePerL + collateralPerL*rate)
//
// with the outcome token valued at 1 (it is the reference unit: one outcome
// token pays one unit of collateral's underlying when correct).
func Size(p SizeParams) (*Quote, error) {
	if p.Budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %v", p.Budget)
	}
	if p.CollateralRate <= 0 {
		return nil, fmt.Errorf("collateral rate must be positive, got %v", p.CollateralRate)
	}

	tickLower, tickUpper, err := RangeToTicks(p.ProbLow, p.ProbHigh, p.OutcomeIsToken0, p.TickSpacing)
	if err != nil {
		return nil, err
	}

	initProb := p.InitProb
	if initProb == 0 {
		initProb = (p.ProbLow + p.ProbHigh) / 2
	}
	if initProb < p.ProbLow || initProb > p.ProbHigh {
		return nil, fmt.Errorf("init-prob %v is outside the range [%v, %v]", initProb, p.ProbLow, p.ProbHigh)
	}

	poolPrice := initProb
	if !p.OutcomeIsToken0 {
		poolPrice = 1 / initProb
	}
	sqrtP := math.Sqrt(poolPrice)
	sqrtPa := tickmath.TickToSqrtPrice(tickLower)
	sqrtPb := tickmath.TickToSqrtPrice(tickUpper)

	a0PerL, a1PerL := tickmath.AmountsPerLiquidity(sqrtP, sqrtPa, sqrtPb)

	var outcomePerL, collateralPerL float64
	if p.OutcomeIsToken0 {
		outcomePerL, collateralPerL = a0PerL, a1PerL
	} else {
		collateralPerL, outcomePerL = a0PerL, a1PerL
	}

	liq := p.Budget / (outcomePerL + collateralPerL*p.CollateralRate)
	outcomeNeeded := liq * outcomePerL
	collateralNeeded := liq * collateralPerL

	q := &Quote{
		Liquidity:        liq,
		OutcomeAmount:    outcomeNeeded,
		CollateralAmount: collateralNeeded,
		TickLower:        tickLower,
		TickUpper:        tickUpper,
		SqrtPrice:        sqrtP,
	}
	if p.OutcomeIsToken0 {
		q.Amount0, q.Amount1 = outcomeNeeded, collateralNeeded
	} else {
		q.Amount0, q.Amount1 = collateralNeeded, outcomeNeeded
	}
	return q, nil
}

// Valuation is the token content of an existing position.
type Valuation struct {
	OutcomeAmount    float64
	CollateralAmount float64
}

// Value computes what a position holds right now. Zero-liquidity positions
// short-circuit without touching the reserve math.
func Value(tickLower, tickUpper int, liq float64, currentTick int, collateralIsToken0 bool) Valuation {
	if liq == 0 {
		return Valuation{}
	}
	amount0, amount1 := tickmath.ReservesForLiquidity(liq, tickLower, tickUpper, currentTick)
	if collateralIsToken0 {
		return Valuation{OutcomeAmount: amount1, CollateralAmount: amount0}
	}
	return Valuation{OutcomeAmount: amount0, CollateralAmount: amount1}
}
