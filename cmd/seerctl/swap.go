package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/liquidity"
	"github.com/seerkit/seerctl/internal/units"
)

func newSwapCmd() *cobra.Command {
	var (
		mode             string
		outcomeTokenFlag string
		amountIn         string
		slippageBps      int64
	)

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Buy or sell outcome tokens against collateral on the chain's DEX",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}
			outcomeToken, err := parseAddress(outcomeTokenFlag, "--outcome-token")
			if err != nil {
				return err
			}
			amount, err := units.ParseWei(amountIn, 18)
			if err != nil {
				return errors.Wrap(err, "--amount-in")
			}

			collateral := cfg.Collateral.Address
			var tokenIn, tokenOut = collateral, outcomeToken
			switch mode {
			case "buy":
				fmt.Printf("Buying %s with %s %s...\n", outcomeToken.Hex(), amountIn, cfg.Collateral.Symbol)
			case "sell":
				tokenIn, tokenOut = outcomeToken, collateral
				fmt.Printf("Selling %s %s for %s...\n", amountIn, outcomeToken.Hex(), cfg.Collateral.Symbol)
			default:
				return errors.New("--mode must be buy or sell")
			}

			ctx := cmd.Context()
			cli, err := dialSigner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			adapter, err := dex.New(cli, cfg)
			if err != nil {
				return err
			}

			token0, token1, _ := liquidity.OrderTokens(tokenIn, tokenOut)
			pool, err := adapter.PoolAddress(ctx, token0, token1)
			if err != nil {
				if errors.Is(err, dex.ErrNoPool) {
					return errors.Errorf("no pool exists for %s / %s, create liquidity first",
						outcomeToken.Hex(), cfg.Collateral.Symbol)
				}
				return err
			}
			state, err := adapter.PoolState(ctx, pool)
			if err != nil {
				return err
			}
			fmt.Printf("Pool: %s (tick %d)\n", pool.Hex(), state.Tick)

			fmt.Println("Approving input token to router...")
			if _, err := cli.Approve(ctx, tokenIn, cfg.Dex.Router, amount); err != nil {
				return err
			}

			minOut := dex.MinAmountOut(amount, slippageBps)
			fmt.Printf("Swapping with %.2f%% slippage tolerance (min out %s)...\n",
				float64(slippageBps)/100, units.FormatWei(minOut, 18))

			amountOut, err := adapter.SwapExactIn(ctx, tokenIn, tokenOut, amount, minOut)
			if err != nil {
				return err
			}
			fmt.Printf("Swap completed. Received about %s.\n", units.FormatWei(amountOut, 18))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "buy or sell (required)")
	cmd.Flags().StringVar(&outcomeTokenFlag, "outcome-token", "", "outcome token address (required)")
	cmd.Flags().StringVar(&amountIn, "amount-in", "", "input amount in whole tokens (required)")
	cmd.Flags().Int64Var(&slippageBps, "slippage-bps", dex.DefaultSlippageBps, "slippage tolerance in basis points")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("outcome-token")
	_ = cmd.MarkFlagRequired("amount-in")
	return cmd
}
