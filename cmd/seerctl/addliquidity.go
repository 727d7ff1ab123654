package main

import (
	"fmt"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/liquidity"
	"github.com/seerkit/seerctl/internal/lpstore"
	"github.com/seerkit/seerctl/internal/seerapi"
	"github.com/seerkit/seerctl/internal/tickmath"
	"github.com/seerkit/seerctl/internal/units"
	"github.com/seerkit/seerctl/pkg/logger"
)

func newAddLiquidityCmd() *cobra.Command {
	var (
		outcomeTokenFlag string
		probLow          float64
		probHigh         float64
		initProb         float64
		tickSpacing      int
		budgetNative     float64
		budgetCollateral float64
		marketFlag       string
		dryRun           bool
	)

	cmd := &cobra.Command{
		Use:   "add-liquidity",
		Short: "Mint a concentrated-liquidity position for an outcome token / collateral pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Budget validation happens before any network call.
			if budgetNative == 0 && budgetCollateral == 0 {
				return errors.New("provide either --budget-native or --budget-collateral")
			}
			if budgetNative != 0 && budgetCollateral != 0 {
				return errors.New("--budget-native and --budget-collateral are mutually exclusive")
			}

			cfg, err := resolveChain()
			if err != nil {
				return err
			}
			outcomeToken, err := parseAddress(outcomeTokenFlag, "--outcome-token")
			if err != nil {
				return err
			}
			if tickSpacing == 0 {
				tickSpacing = cfg.Dex.TickSpacing
			}

			ctx := cmd.Context()
			var cli *ethcli.Client
			if dryRun {
				cli, err = dialRead(ctx, cfg)
			} else {
				cli, err = dialSigner(ctx, cfg)
			}
			if err != nil {
				return err
			}
			defer cli.Close()

			collateral := cfg.Collateral.Address
			token0, token1, outcomeIsToken0 := liquidity.OrderTokens(outcomeToken, collateral)

			// Live exchange-rate read. The collateral must answer ERC-4626
			// convertToAssets or the command aborts.
			oneShare := units.ToWei(1, cfg.Collateral.Decimals)
			rateWei, err := cli.ConvertToAssets(ctx, collateral, oneShare)
			if err != nil {
				return err
			}
			rate := units.FromWei(rateWei, cfg.Collateral.Decimals)

			budget := budgetNative
			if budgetCollateral != 0 {
				budget = budgetCollateral * rate
				fmt.Printf("Budget: %v %s = %.6f %s equivalent (rate %.4f)\n",
					budgetCollateral, cfg.Collateral.Symbol, budget, cfg.NativeSymbol, rate)
			} else {
				fmt.Printf("Budget: %v %s\n", budget, cfg.NativeSymbol)
			}

			quote, err := liquidity.Size(liquidity.SizeParams{
				ProbLow:         probLow,
				ProbHigh:        probHigh,
				InitProb:        initProb,
				TickSpacing:     tickSpacing,
				OutcomeIsToken0: outcomeIsToken0,
				Budget:          budget,
				CollateralRate:  rate,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Ticks: [%d, %d]\n", quote.TickLower, quote.TickUpper)
			fmt.Printf("Need %.6f outcome tokens + %.6f %s (worth %.6f %s)\n",
				quote.OutcomeAmount, quote.CollateralAmount, cfg.Collateral.Symbol,
				quote.CollateralAmount*rate, cfg.NativeSymbol)

			if dryRun {
				return nil
			}

			adapter, err := dex.New(cli, cfg)
			if err != nil {
				return err
			}

			sqrtPriceX96 := tickmath.SqrtPriceX96(quote.SqrtPrice)
			fmt.Println("Creating/initializing pool if needed...")
			pool, err := adapter.EnsurePoolInitialized(ctx, token0, token1, sqrtPriceX96)
			if err != nil {
				return err
			}
			fmt.Printf("Pool: %s\n", pool.Hex())

			amount0 := units.ToWei(quote.Amount0, 18)
			amount1 := units.ToWei(quote.Amount1, 18)
			approveAmount := new(big.Int).Set(amount0)
			if amount1.Cmp(approveAmount) > 0 {
				approveAmount.Set(amount1)
			}

			fmt.Println("Approving tokens to position manager...")
			if _, err := cli.Approve(ctx, outcomeToken, cfg.Dex.PositionManager, approveAmount); err != nil {
				return err
			}
			if _, err := cli.Approve(ctx, collateral, cfg.Dex.PositionManager, approveAmount); err != nil {
				return err
			}

			fmt.Printf("Minting position: token0=%s token1=%s ticks=[%d,%d]...\n",
				token0.Hex(), token1.Hex(), quote.TickLower, quote.TickUpper)
			res, err := adapter.MintPosition(ctx, dex.MintParams{
				Token0:         token0,
				Token1:         token1,
				TickLower:      quote.TickLower,
				TickUpper:      quote.TickUpper,
				Amount0Desired: amount0,
				Amount1Desired: amount1,
				Recipient:      cli.From(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Position token ID: %s\n", res.TokenID)
			label0, label1 := "outcome token", cfg.Collateral.Symbol
			if !outcomeIsToken0 {
				label0, label1 = label1, label0
			}
			fmt.Printf("Actual %s used: %s\n", label0, units.FormatWei(res.Amount0, 18))
			fmt.Printf("Actual %s used: %s\n", label1, units.FormatWei(res.Amount1, 18))
			fmt.Printf("Minted in block %d. Tx: %s\n", res.Block, res.TxHash.Hex())

			savePosition(cmd, cfg.Name, string(cfg.Dex.Family), res, outcomeToken.Hex(),
				token0.Hex(), token1.Hex(), probLow, probHigh, marketFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&outcomeTokenFlag, "outcome-token", "", "outcome token address (required)")
	cmd.Flags().Float64Var(&probLow, "prob-low", 0, "lower probability bound, exclusive 0..1 (required)")
	cmd.Flags().Float64Var(&probHigh, "prob-high", 0, "upper probability bound, exclusive 0..1 (required)")
	cmd.Flags().Float64Var(&initProb, "init-prob", 0, "initial probability for a fresh pool (default: range midpoint)")
	cmd.Flags().IntVar(&tickSpacing, "tick-spacing", 0, "tick spacing (default: chain's)")
	cmd.Flags().Float64Var(&budgetNative, "budget-native", 0, "total budget in native-token terms")
	cmd.Flags().Float64Var(&budgetCollateral, "budget-collateral", 0, "total budget in collateral terms")
	cmd.Flags().StringVar(&marketFlag, "market", "", "market address, enables name/outcome enrichment in the tracker")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the computed amounts and exit")
	_ = cmd.MarkFlagRequired("outcome-token")
	_ = cmd.MarkFlagRequired("prob-low")
	_ = cmd.MarkFlagRequired("prob-high")

	return cmd
}

// savePosition records the fresh mint in the local tracker. Tracker
// failures never fail the command, the position already exists on-chain.
func savePosition(cmd *cobra.Command, chainName string, dexType string, res *dex.MintResult,
	outcomeToken, token0, token1 string, probLow, probHigh float64, marketAddr string) {

	var marketName, outcomeName string
	if marketAddr != "" {
		api := seerapi.NewClient("")
		name, outcome, err := api.LookupOutcome(cmd.Context(), marketAddr, outcomeToken)
		if err != nil {
			logger.Warnf("could not look up market details: %v", err)
		} else {
			marketName, outcomeName = name, outcome
		}
	} else {
		fmt.Println("Tip: pass --market 0x... for full position tracking (market name + outcome name).")
	}

	path, err := lpstore.DefaultPath()
	if err != nil {
		logger.Warnf("failed to resolve tracker path: %v", err)
		return
	}
	store := lpstore.New(path)
	err = store.Append(lpstore.Position{
		TokenID:     res.TokenID.String(),
		Chain:       chainName,
		DexType:     dexType,
		PoolAddress: res.Pool.Hex(),
		Token0:      token0,
		Token1:      token1,
		ProbLow:     probLow,
		ProbHigh:    probHigh,
		Market:      marketAddr,
		MarketName:  marketName,
		OutcomeName: outcomeName,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Warnf("failed to save position to tracker: %v", err)
		return
	}
	fmt.Println("Position saved to LP tracker.")
}
