package main

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/market"
	"github.com/seerkit/seerctl/internal/units"
)

func newMergeRedeemCmd() *cobra.Command {
	var (
		mode         string
		marketFlag   string
		amountFlag   string
		outcomeIndex int64
	)

	cmd := &cobra.Command{
		Use:   "merge-redeem",
		Short: "Merge complete sets back to collateral, or redeem winning tokens after resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}
			marketAddr, err := parseAddress(marketFlag, "--market")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cli, err := dialSigner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()
			mkt := market.NewClient(cli, cfg)

			switch mode {
			case "merge":
				var amount *big.Int
				if amountFlag == "max" {
					fmt.Println("Querying outcome token balances...")
					info, err := mkt.Get(ctx, marketAddr)
					if err != nil {
						return err
					}
					min, balances, err := mkt.MaxMergeable(ctx, info, cli.From())
					if err != nil {
						return err
					}
					for i, bal := range balances {
						fmt.Printf("  %s: %s\n", info.Outcomes[i], units.FormatWei(bal, 18))
					}
					if min.Sign() == 0 {
						fmt.Println("No complete sets to merge (at least one outcome has 0 balance).")
						return nil
					}
					fmt.Printf("Max mergeable: %s\n", units.FormatWei(min, 18))
					amount = min
				} else {
					amount, err = units.ParseWei(amountFlag, cfg.Collateral.Decimals)
					if err != nil {
						return errors.Wrap(err, "--amount")
					}
				}

				fmt.Printf("Merging %s complete sets back to %s...\n",
					units.FormatWei(amount, 18), cfg.Collateral.Symbol)
				tx, err := mkt.Merge(ctx, marketAddr, amount)
				if err != nil {
					return err
				}
				fmt.Printf("Done. Tx: %s\n", tx.Hex())
				return nil

			case "redeem":
				amount, err := units.ParseWei(amountFlag, cfg.Collateral.Decimals)
				if err != nil {
					return errors.Wrap(err, "--amount")
				}
				fmt.Printf("Redeeming %s of outcome %d for %s...\n", amountFlag, outcomeIndex, cfg.Collateral.Symbol)
				tx, err := mkt.Redeem(ctx, marketAddr,
					[]*big.Int{big.NewInt(outcomeIndex)}, []*big.Int{amount})
				if err != nil {
					return err
				}
				fmt.Printf("Done. Tx: %s\n", tx.Hex())
				return nil

			default:
				return errors.New("--mode must be merge or redeem")
			}
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "merge or redeem (required)")
	cmd.Flags().StringVar(&marketFlag, "market", "", "market address (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount in whole tokens, or \"max\" for merge (required)")
	cmd.Flags().Int64Var(&outcomeIndex, "outcome-index", 0, "outcome index for redeem")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("market")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
