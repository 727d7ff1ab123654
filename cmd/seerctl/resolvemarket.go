package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/market"
)

func newResolveMarketCmd() *cobra.Command {
	var marketFlag string
	cmd := &cobra.Command{
		Use:   "resolve-market",
		Short: "Report finalized Reality.eth answers into the conditional tokens framework",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}
			addr, err := parseAddress(marketFlag, "market")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cli, err := dialSigner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			fmt.Printf("Resolving market %s...\n", addr.Hex())
			txHash, err := market.NewClient(cli, cfg).Resolve(ctx, addr)
			if err != nil {
				return err
			}
			fmt.Printf("Tx: %s\n", txHash.Hex())
			fmt.Println("Market resolved.")
			return nil
		},
	}
	cmd.Flags().StringVar(&marketFlag, "market", "", "market address")
	_ = cmd.MarkFlagRequired("market")
	return cmd
}
