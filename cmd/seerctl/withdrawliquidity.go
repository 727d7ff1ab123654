package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/lpstore"
	"github.com/seerkit/seerctl/pkg/logger"
)

func newWithdrawLiquidityCmd() *cobra.Command {
	var (
		tokenIDFlag string
		list        bool
	)

	cmd := &cobra.Command{
		Use:   "withdraw-liquidity",
		Short: "Withdraw all liquidity from a position, collect tokens and burn the NFT",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
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
			mgr := adapter.Manager()

			if list {
				ids, err := mgr.OwnedTokenIDs(ctx, cli.From())
				if err != nil {
					return err
				}
				fmt.Printf("Positions owned: %d\n", len(ids))
				for _, id := range ids {
					pos, err := adapter.Position(ctx, id)
					if err != nil {
						return err
					}
					fmt.Printf("  #%s: token0=%s token1=%s liquidity=%s ticks=[%d,%d]\n",
						id, pos.Token0.Hex(), pos.Token1.Hex(), pos.Liquidity, pos.TickLower, pos.TickUpper)
				}
				return nil
			}

			if tokenIDFlag == "" {
				return errors.New("pass --token-id <id> or --list")
			}
			tokenID, ok := new(big.Int).SetString(tokenIDFlag, 10)
			if !ok {
				return errors.Errorf("invalid token id %q", tokenIDFlag)
			}

			pos, err := adapter.Position(ctx, tokenID)
			if err != nil {
				return err
			}
			if pos.Liquidity.Sign() == 0 {
				fmt.Println("Position has zero liquidity, nothing to withdraw.")
				return nil
			}

			fmt.Printf("Withdrawing all liquidity (%s) from position #%s...\n", pos.Liquidity, tokenID)
			if err := mgr.DecreaseLiquidity(ctx, tokenID, pos.Liquidity); err != nil {
				return err
			}

			fmt.Println("Collecting tokens...")
			if err := mgr.Collect(ctx, tokenID, cli.From()); err != nil {
				return err
			}

			fmt.Println("Burning empty position NFT...")
			if err := mgr.Burn(ctx, tokenID); err != nil {
				return err
			}
			fmt.Printf("Position #%s fully withdrawn and burned.\n", tokenID)

			markTrackerWithdrawn(tokenID.String(), cfg.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenIDFlag, "token-id", "", "position NFT token ID")
	cmd.Flags().BoolVar(&list, "list", false, "list all on-chain positions for the wallet")
	return cmd
}

func markTrackerWithdrawn(tokenID, chain string) {
	path, err := lpstore.DefaultPath()
	if err != nil {
		logger.Warnf("failed to resolve tracker path: %v", err)
		return
	}
	found, err := lpstore.New(path).MarkWithdrawn(tokenID, chain)
	if err != nil {
		logger.Warnf("failed to update LP tracker: %v", err)
		return
	}
	if found {
		fmt.Println("LP tracker updated.")
	}
}
