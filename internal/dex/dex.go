// Package dex abstracts the two concentrated-liquidity AMM families this
// repository trades on, the fee-less Algebra implementation (SwaprV3 on
// Gnosis) and fee-tiered Uniswap V3, behind one operation set. Callers
// pick an adapter once from chain configuration and never branch on the
// family again; all parameter shaping lives here.
package dex

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

// ErrNoPool marks a pool lookup that found nothing for the pair.
var ErrNoPool = errors.New("no pool exists for this token pair")

// txDeadline is how far in the future mint/swap deadlines are set.
const txDeadline = 10 * time.Minute

// mintGasLimit skips estimation on mint, whose gas use is hard for nodes
// to estimate right after pool initialization.
const mintGasLimit = 1_000_000

// MaxUint128 is the collect-everything amount for fee collection.
var MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// PoolState is a pool's current price position.
type PoolState struct {
	SqrtPriceX96 *big.Int
	Tick         int
}

// MintParams describes a position to mint. Tokens must already be in
// canonical order. Amount0Min/Amount1Min default to zero; mint has no
// slippage protection.
type MintParams struct {
	Token0         common.Address
	Token1         common.Address
	TickLower      int
	TickUpper      int
	Amount0Desired *big.Int
	Amount1Desired *big.Int
	Amount0Min     *big.Int
	Amount1Min     *big.Int
	Recipient      common.Address
}

// MintResult is what the position manager reports for a mint.
type MintResult struct {
	TokenID   *big.Int
	Liquidity *big.Int
	Amount0   *big.Int
	Amount1   *big.Int
	Pool      common.Address
	TxHash    common.Hash
	Block     uint64
}

// PositionInfo is the family-independent view of positions(tokenId).
type PositionInfo struct {
	Token0    common.Address
	Token1    common.Address
	TickLower int
	TickUpper int
	Liquidity *big.Int
}

// Adapter is the uniform operation set over both AMM families.
type Adapter interface {
	// EnsurePoolInitialized creates and initializes the pair's pool at the
	// given sqrt price if it does not exist, and returns the pool address.
	// When the pool already exists this is a no-op that does NOT move the
	// existing pool to the given price.
	EnsurePoolInitialized(ctx context.Context, token0, token1 common.Address, sqrtPriceX96 *big.Int) (common.Address, error)

	// MintPosition simulates the mint to capture its return values, then
	// submits it.
	MintPosition(ctx context.Context, params MintParams) (*MintResult, error)

	// PoolAddress resolves the pair's pool, returning ErrNoPool when none
	// exists.
	PoolAddress(ctx context.Context, token0, token1 common.Address) (common.Address, error)

	// PoolState reads the pool's current sqrt price and tick.
	PoolState(ctx context.Context, pool common.Address) (*PoolState, error)

	// SwapExactIn swaps a fixed input amount, returning the output amount
	// from a pre-submit simulation.
	SwapExactIn(ctx context.Context, tokenIn, tokenOut common.Address, amountIn, minAmountOut *big.Int) (*big.Int, error)

	// Position reads a position NFT's tokens, tick range and liquidity.
	Position(ctx context.Context, tokenID *big.Int) (*PositionInfo, error)

	// Manager exposes the family-independent position-NFT operations.
	Manager() *PositionManager
}

// New selects the adapter for a chain's configured DEX family.
func New(cli *ethcli.Client, cfg chains.Config) (Adapter, error) {
	mgr := &PositionManager{cli: cli, addr: cfg.Dex.PositionManager}
	switch cfg.Dex.Family {
	case chains.FamilyAlgebra:
		return &algebraAdapter{cli: cli, dex: cfg.Dex, mgr: mgr}, nil
	case chains.FamilyUniswapV3:
		return &uniswapV3Adapter{cli: cli, dex: cfg.Dex, mgr: mgr}, nil
	default:
		return nil, fmt.Errorf("unsupported dex family %q", cfg.Dex.Family)
	}
}

// MinAmountOut applies a slippage tolerance in basis points to an input
// amount. The default across the CLI is 100 bps (1%).
func MinAmountOut(amountIn *big.Int, slippageBps int64) *big.Int {
	out := new(big.Int).Mul(amountIn, big.NewInt(10000-slippageBps))
	return out.Div(out, big.NewInt(10000))
}

// DefaultSlippageBps is the default swap tolerance. Commands expose it
// as a flag.
const DefaultSlippageBps int64 = 100

func deadline() *big.Int {
	return big.NewInt(time.Now().Add(txDeadline).Unix())
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}

func isZeroAddress(a common.Address) bool {
	return a == (common.Address{})
}
