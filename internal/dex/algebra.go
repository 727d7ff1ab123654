package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

// algebraAdapter drives the fee-less Algebra family. Pools are identified
// by the token pair alone; no fee tier appears anywhere.
type algebraAdapter struct {
	cli *ethcli.Client
	dex chains.DexConfig
	mgr *PositionManager
}

// algebraMintParams mirrors the Algebra mint tuple.
type algebraMintParams struct {
	Token0         common.Address
	Token1         common.Address
	TickLower      *big.Int
	TickUpper      *big.Int
	Amount0Desired *big.Int
	Amount1Desired *big.Int
	Amount0Min     *big.Int
	Amount1Min     *big.Int
	Recipient      common.Address
	Deadline       *big.Int
}

type algebraSwapParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

func (a *algebraAdapter) EnsurePoolInitialized(ctx context.Context, token0, token1 common.Address, sqrtPriceX96 *big.Int) (common.Address, error) {
	// Simulate first: the call's return value is the pool address whether
	// it creates the pool or finds it already deployed.
	out, err := a.cli.Simulate(ctx, a.dex.PositionManager, algebraManagerABI,
		"createAndInitializePoolIfNecessary", nil, token0, token1, sqrtPriceX96)
	if err != nil {
		return common.Address{}, fmt.Errorf("create/initialize pool: %w", err)
	}
	pool := out[0].(common.Address)

	if _, err := a.cli.Send(ctx, a.dex.PositionManager, algebraManagerABI,
		"createAndInitializePoolIfNecessary", ethcli.TxOpts{}, token0, token1, sqrtPriceX96); err != nil {
		return common.Address{}, err
	}
	return pool, nil
}

func (a *algebraAdapter) MintPosition(ctx context.Context, p MintParams) (*MintResult, error) {
	params := algebraMintParams{
		Token0:         p.Token0,
		Token1:         p.Token1,
		TickLower:      big.NewInt(int64(p.TickLower)),
		TickUpper:      big.NewInt(int64(p.TickUpper)),
		Amount0Desired: p.Amount0Desired,
		Amount1Desired: p.Amount1Desired,
		Amount0Min:     orZero(p.Amount0Min),
		Amount1Min:     orZero(p.Amount1Min),
		Recipient:      p.Recipient,
		Deadline:       deadline(),
	}

	out, err := a.cli.Simulate(ctx, a.dex.PositionManager, algebraManagerABI, "mint", nil, params)
	if err != nil {
		return nil, fmt.Errorf("mint simulation: %w", err)
	}
	res := &MintResult{
		TokenID:   out[0].(*big.Int),
		Liquidity: out[1].(*big.Int),
		Amount0:   out[2].(*big.Int),
		Amount1:   out[3].(*big.Int),
	}

	receipt, err := a.cli.Send(ctx, a.dex.PositionManager, algebraManagerABI, "mint",
		ethcli.TxOpts{GasLimit: mintGasLimit}, params)
	if err != nil {
		return nil, err
	}
	res.TxHash = receipt.TxHash
	res.Block = receipt.BlockNumber.Uint64()

	if pool, err := a.PoolAddress(ctx, p.Token0, p.Token1); err == nil {
		res.Pool = pool
	}
	return res, nil
}

func (a *algebraAdapter) PoolAddress(ctx context.Context, token0, token1 common.Address) (common.Address, error) {
	out, err := a.cli.Call(ctx, a.dex.Factory, algebraFactoryABI, "poolByPair", token0, token1)
	if err != nil {
		return common.Address{}, fmt.Errorf("pool lookup: %w", err)
	}
	pool := out[0].(common.Address)
	if isZeroAddress(pool) {
		return common.Address{}, ErrNoPool
	}
	return pool, nil
}

func (a *algebraAdapter) PoolState(ctx context.Context, pool common.Address) (*PoolState, error) {
	out, err := a.cli.Call(ctx, pool, algebraPoolABI, "globalState")
	if err != nil {
		return nil, fmt.Errorf("read globalState: %w", err)
	}
	return &PoolState{
		SqrtPriceX96: out[0].(*big.Int),
		Tick:         int(out[1].(*big.Int).Int64()),
	}, nil
}

func (a *algebraAdapter) SwapExactIn(ctx context.Context, tokenIn, tokenOut common.Address, amountIn, minAmountOut *big.Int) (*big.Int, error) {
	params := algebraSwapParams{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		Recipient:         a.cli.From(),
		Deadline:          deadline(),
		AmountIn:          amountIn,
		AmountOutMinimum:  minAmountOut,
		SqrtPriceLimitX96: big.NewInt(0),
	}

	out, err := a.cli.Simulate(ctx, a.dex.Router, algebraRouterABI, "exactInputSingle", nil, params)
	if err != nil {
		return nil, fmt.Errorf("swap simulation: %w", err)
	}
	amountOut := out[0].(*big.Int)

	if _, err := a.cli.Send(ctx, a.dex.Router, algebraRouterABI, "exactInputSingle", ethcli.TxOpts{}, params); err != nil {
		return nil, err
	}
	return amountOut, nil
}

func (a *algebraAdapter) Position(ctx context.Context, tokenID *big.Int) (*PositionInfo, error) {
	out, err := a.cli.Call(ctx, a.dex.PositionManager, algebraManagerABI, "positions", tokenID)
	if err != nil {
		return nil, fmt.Errorf("read position #%s: %w", tokenID, err)
	}
	// Algebra layout: nonce, operator, token0, token1, tickLower,
	// tickUpper, liquidity, ...
	return &PositionInfo{
		Token0:    out[2].(common.Address),
		Token1:    out[3].(common.Address),
		TickLower: int(out[4].(*big.Int).Int64()),
		TickUpper: int(out[5].(*big.Int).Int64()),
		Liquidity: out[6].(*big.Int),
	}, nil
}

func (a *algebraAdapter) Manager() *PositionManager {
	return a.mgr
}
