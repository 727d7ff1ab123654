package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

// uniswapV3Adapter drives the fee-tiered Uniswap V3 family. The chain's
// configured fee tier is part of pool identity and threads through
// creation, minting and swaps; callers never see it.
type uniswapV3Adapter struct {
	cli *ethcli.Client
	dex chains.DexConfig
	mgr *PositionManager
}

type uniswapV3MintParams struct {
	Token0         common.Address
	Token1         common.Address
	Fee            *big.Int
	TickLower      *big.Int
	TickUpper      *big.Int
	Amount0Desired *big.Int
	Amount1Desired *big.Int
	Amount0Min     *big.Int
	Amount1Min     *big.Int
	Recipient      common.Address
	Deadline       *big.Int
}

type uniswapV3SwapParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

func (u *uniswapV3Adapter) fee() *big.Int {
	return big.NewInt(int64(u.dex.FeeTier))
}

func (u *uniswapV3Adapter) EnsurePoolInitialized(ctx context.Context, token0, token1 common.Address, sqrtPriceX96 *big.Int) (common.Address, error) {
	out, err := u.cli.Simulate(ctx, u.dex.PositionManager, uniswapV3ManagerABI,
		"createAndInitializePoolIfNecessary", nil, token0, token1, u.fee(), sqrtPriceX96)
	if err != nil {
		return common.Address{}, fmt.Errorf("create/initialize pool: %w", err)
	}
	pool := out[0].(common.Address)

	if _, err := u.cli.Send(ctx, u.dex.PositionManager, uniswapV3ManagerABI,
		"createAndInitializePoolIfNecessary", ethcli.TxOpts{}, token0, token1, u.fee(), sqrtPriceX96); err != nil {
		return common.Address{}, err
	}
	return pool, nil
}

func (u *uniswapV3Adapter) MintPosition(ctx context.Context, p MintParams) (*MintResult, error) {
	params := uniswapV3MintParams{
		Token0:         p.Token0,
		Token1:         p.Token1,
		Fee:            u.fee(),
		TickLower:      big.NewInt(int64(p.TickLower)),
		TickUpper:      big.NewInt(int64(p.TickUpper)),
		Amount0Desired: p.Amount0Desired,
		Amount1Desired: p.Amount1Desired,
		Amount0Min:     orZero(p.Amount0Min),
		Amount1Min:     orZero(p.Amount1Min),
		Recipient:      p.Recipient,
		Deadline:       deadline(),
	}

	out, err := u.cli.Simulate(ctx, u.dex.PositionManager, uniswapV3ManagerABI, "mint", nil, params)
	if err != nil {
		return nil, fmt.Errorf("mint simulation: %w", err)
	}
	res := &MintResult{
		TokenID:   out[0].(*big.Int),
		Liquidity: out[1].(*big.Int),
		Amount0:   out[2].(*big.Int),
		Amount1:   out[3].(*big.Int),
	}

	receipt, err := u.cli.Send(ctx, u.dex.PositionManager, uniswapV3ManagerABI, "mint",
		ethcli.TxOpts{GasLimit: mintGasLimit}, params)
	if err != nil {
		return nil, err
	}
	res.TxHash = receipt.TxHash
	res.Block = receipt.BlockNumber.Uint64()

	if pool, err := u.PoolAddress(ctx, p.Token0, p.Token1); err == nil {
		res.Pool = pool
	}
	return res, nil
}

func (u *uniswapV3Adapter) PoolAddress(ctx context.Context, token0, token1 common.Address) (common.Address, error) {
	out, err := u.cli.Call(ctx, u.dex.Factory, uniswapV3FactoryABI, "getPool", token0, token1, u.fee())
	if err != nil {
		return common.Address{}, fmt.Errorf("pool lookup (fee %d): %w", u.dex.FeeTier, err)
	}
	pool := out[0].(common.Address)
	if isZeroAddress(pool) {
		return common.Address{}, ErrNoPool
	}
	return pool, nil
}

func (u *uniswapV3Adapter) PoolState(ctx context.Context, pool common.Address) (*PoolState, error) {
	out, err := u.cli.Call(ctx, pool, uniswapV3PoolABI, "slot0")
	if err != nil {
		return nil, fmt.Errorf("read slot0: %w", err)
	}
	return &PoolState{
		SqrtPriceX96: out[0].(*big.Int),
		Tick:         int(out[1].(*big.Int).Int64()),
	}, nil
}

func (u *uniswapV3Adapter) SwapExactIn(ctx context.Context, tokenIn, tokenOut common.Address, amountIn, minAmountOut *big.Int) (*big.Int, error) {
	params := uniswapV3SwapParams{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		Fee:               u.fee(),
		Recipient:         u.cli.From(),
		Deadline:          deadline(),
		AmountIn:          amountIn,
		AmountOutMinimum:  minAmountOut,
		SqrtPriceLimitX96: big.NewInt(0),
	}

	out, err := u.cli.Simulate(ctx, u.dex.Router, uniswapV3RouterABI, "exactInputSingle", nil, params)
	if err != nil {
		return nil, fmt.Errorf("swap simulation: %w", err)
	}
	amountOut := out[0].(*big.Int)

	if _, err := u.cli.Send(ctx, u.dex.Router, uniswapV3RouterABI, "exactInputSingle", ethcli.TxOpts{}, params); err != nil {
		return nil, err
	}
	return amountOut, nil
}

func (u *uniswapV3Adapter) Position(ctx context.Context, tokenID *big.Int) (*PositionInfo, error) {
	out, err := u.cli.Call(ctx, u.dex.PositionManager, uniswapV3ManagerABI, "positions", tokenID)
	if err != nil {
		return nil, fmt.Errorf("read position #%s: %w", tokenID, err)
	}
	// Uniswap V3 layout inserts fee between token1 and tickLower.
	return &PositionInfo{
		Token0:    out[2].(common.Address),
		Token1:    out[3].(common.Address),
		TickLower: int(out[5].(*big.Int).Int64()),
		TickUpper: int(out[6].(*big.Int).Int64()),
		Liquidity: out[7].(*big.Int),
	}, nil
}

func (u *uniswapV3Adapter) Manager() *PositionManager {
	return u.mgr
}
