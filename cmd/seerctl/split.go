package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/market"
	"github.com/seerkit/seerctl/internal/units"
)

func newSplitCmd() *cobra.Command {
	var (
		marketFlag string
		amountFlag string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split collateral into equal amounts of every outcome token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}
			marketAddr, err := parseAddress(marketFlag, "--market")
			if err != nil {
				return err
			}
			amount, err := units.ParseWei(amountFlag, cfg.Collateral.Decimals)
			if err != nil {
				return errors.Wrap(err, "--amount")
			}

			ctx := cmd.Context()
			cli, err := dialSigner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			fmt.Printf("Splitting %s %s into outcome tokens for market %s...\n",
				amountFlag, cfg.Collateral.Symbol, marketAddr.Hex())
			tx, err := market.NewClient(cli, cfg).Split(ctx, marketAddr, amount)
			if err != nil {
				return err
			}
			fmt.Printf("Done. Tx: %s. You now hold equal amounts of all outcome tokens.\n", tx.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&marketFlag, "market", "", "market address (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "collateral amount in whole tokens (required)")
	_ = cmd.MarkFlagRequired("market")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
