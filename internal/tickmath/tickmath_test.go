package tickmath

import (
	"math"
	"math/big"
	"testing"
)

func TestPriceToTickRoundsToSpacing(t *testing.T) {
	cases := []struct {
		price   float64
		spacing int
	}{
		{0.2, 60},
		{0.5, 60},
		{0.8, 60},
		{0.01, 60},
		{0.99, 60},
		{0.37, 10},
		{2.5, 60},
	}
	for _, c := range cases {
		tick := PriceToTick(c.price, c.spacing)
		if tick%c.spacing != 0 {
			t.Fatalf("PriceToTick(%v, %d) = %d, not a multiple of spacing", c.price, c.spacing, tick)
		}
		// Rounding idempotence: the tick must be within half a spacing step
		// of the unrounded coordinate.
		raw := math.Log(c.price) / math.Log(TickBase)
		if d := math.Abs(raw - float64(tick)); d > float64(c.spacing)/2+1e-9 {
			t.Fatalf("PriceToTick(%v, %d) = %d, off by %v raw ticks", c.price, c.spacing, tick, d)
		}
	}
}

func TestTickToSqrtPriceRoundTrip(t *testing.T) {
	for _, tick := range []int{-13860, -4080, 0, 4080, 13860} {
		sqrtP := TickToSqrtPrice(tick)
		price := sqrtP * sqrtP
		back := math.Log(price) / math.Log(TickBase)
		if math.Abs(back-float64(tick)) > 1e-6 {
			t.Fatalf("tick %d round-trips to %v", tick, back)
		}
	}
}

func TestSqrtPriceX96(t *testing.T) {
	// sqrt(1) * 2^96
	got := SqrtPriceX96(1.0)
	want := new(big.Int).Lsh(big.NewInt(1), 96)
	if got.Cmp(want) != 0 {
		t.Fatalf("SqrtPriceX96(1) = %s, want %s", got, want)
	}
	// Decoding must invert the encoding within float precision.
	sqrtP := TickToSqrtPrice(-6960)
	back := SqrtPriceFromX96(SqrtPriceX96(sqrtP))
	if math.Abs(back-sqrtP)/sqrtP > 1e-12 {
		t.Fatalf("X96 round trip: got %v want %v", back, sqrtP)
	}
}

func TestReservesBelowRange(t *testing.T) {
	amount0, amount1 := ReservesForLiquidity(1000, -1000, 1000, -2000)
	if amount1 != 0 {
		t.Fatalf("below range: amount1 = %v, want 0", amount1)
	}
	if amount0 <= 0 {
		t.Fatalf("below range: amount0 = %v, want > 0", amount0)
	}
}

func TestReservesAboveRange(t *testing.T) {
	amount0, amount1 := ReservesForLiquidity(1000, -1000, 1000, 1000)
	if amount0 != 0 {
		t.Fatalf("at upper bound: amount0 = %v, want 0", amount0)
	}
	if amount1 <= 0 {
		t.Fatalf("at upper bound: amount1 = %v, want > 0", amount1)
	}
}

func TestReservesContinuousAtBoundaries(t *testing.T) {
	const liq = 1e6

	// Entering the range from below: amount1 starts at zero.
	_, amount1 := ReservesForLiquidity(liq, -1200, 1200, -1200)
	if math.Abs(amount1) > 1e-9 {
		t.Fatalf("amount1 at lower bound = %v, want ~0", amount1)
	}
	below0, _ := ReservesForLiquidity(liq, -1200, 1200, -1201)
	at0, _ := ReservesForLiquidity(liq, -1200, 1200, -1200)
	if math.Abs(below0-at0)/below0 > 1e-3 {
		t.Fatalf("amount0 jumps at lower bound: %v vs %v", below0, at0)
	}

	// Approaching the upper bound from inside: amount0 converges to the
	// above-range value of zero.
	in0, _ := ReservesForLiquidity(liq, -1200, 1200, 1199)
	above0, above1 := ReservesForLiquidity(liq, -1200, 1200, 1200)
	if above0 != 0 {
		t.Fatalf("above range amount0 = %v, want 0", above0)
	}
	if in0 >= liq*(1/TickToSqrtPrice(-1200)-1/TickToSqrtPrice(1200))/10 {
		t.Fatalf("in-range amount0 near upper bound too large: %v", in0)
	}
	_, in1 := ReservesForLiquidity(liq, -1200, 1200, 1199)
	if math.Abs(in1-above1)/above1 > 1e-3 {
		t.Fatalf("amount1 jumps at upper bound: %v vs %v", in1, above1)
	}
}

func TestAmountsPerLiquidityMatchesInRangeReserves(t *testing.T) {
	tickLower, tickUpper, current := -13860, -2220, -6960
	sqrtP := TickToSqrtPrice(current)
	sqrtPa := TickToSqrtPrice(tickLower)
	sqrtPb := TickToSqrtPrice(tickUpper)

	a0PerL, a1PerL := AmountsPerLiquidity(sqrtP, sqrtPa, sqrtPb)
	amount0, amount1 := ReservesForLiquidity(1, tickLower, tickUpper, current)

	if math.Abs(a0PerL-amount0)/amount0 > 1e-12 {
		t.Fatalf("a0PerL %v != amount0 %v", a0PerL, amount0)
	}
	if math.Abs(a1PerL-amount1)/amount1 > 1e-12 {
		t.Fatalf("a1PerL %v != amount1 %v", a1PerL, amount1)
	}
}
