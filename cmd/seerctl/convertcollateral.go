package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/units"
)

func newConvertCollateralCmd() *cobra.Command {
	var (
		direction  string
		amountFlag string
	)

	cmd := &cobra.Command{
		Use:   "convert-collateral",
		Short: "Wrap or unwrap collateral from its underlying asset (xDAI/DAI/USDS)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if direction != "deposit" && direction != "redeem" {
				return errors.New("--direction must be deposit or redeem")
			}
			cfg, err := resolveChain()
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

			vault := cfg.Collateral.Address
			adapter := cfg.Collateral.Adapter
			hasAdapter := adapter != (common.Address{})

			if direction == "deposit" {
				if hasAdapter {
					// Gnosis: xDAI is both native and underlying, the adapter
					// takes it as transaction value.
					fmt.Printf("Converting %s xDAI to %s...\n", amountFlag, cfg.Collateral.Symbol)
					receipt, err := cli.AdapterDepositNative(ctx, adapter, amount, cli.From())
					if err != nil {
						return err
					}
					fmt.Printf("Done. Tx: %s. %s received.\n", receipt.TxHash.Hex(), cfg.Collateral.Symbol)
					return nil
				}

				underlying, err := cli.VaultAsset(ctx, vault)
				if err != nil {
					return err
				}
				symbol, err := cli.TokenSymbol(ctx, underlying)
				if err != nil {
					symbol = underlying.Hex()
				}
				fmt.Printf("Converting %s %s to %s (underlying %s)...\n",
					amountFlag, symbol, cfg.Collateral.Symbol, underlying.Hex())

				fmt.Printf("Approving %s to vault...\n", symbol)
				if _, err := cli.Approve(ctx, underlying, vault, amount); err != nil {
					return err
				}
				receipt, err := cli.VaultDeposit(ctx, vault, amount, cli.From())
				if err != nil {
					return err
				}
				fmt.Printf("Done. Tx: %s. %s received.\n", receipt.TxHash.Hex(), cfg.Collateral.Symbol)
				return nil
			}

			// redeem: collateral back to underlying
			if hasAdapter {
				fmt.Printf("Converting %s %s to xDAI...\n", amountFlag, cfg.Collateral.Symbol)
				fmt.Printf("Approving %s to adapter...\n", cfg.Collateral.Symbol)
				if _, err := cli.Approve(ctx, vault, adapter, amount); err != nil {
					return err
				}
				receipt, err := cli.AdapterRedeemNative(ctx, adapter, amount, cli.From())
				if err != nil {
					return err
				}
				fmt.Printf("Done. Tx: %s. xDAI received.\n", receipt.TxHash.Hex())
				return nil
			}

			underlying, err := cli.VaultAsset(ctx, vault)
			if err != nil {
				return err
			}
			symbol, err := cli.TokenSymbol(ctx, underlying)
			if err != nil {
				symbol = underlying.Hex()
			}
			fmt.Printf("Converting %s %s to %s...\n", amountFlag, cfg.Collateral.Symbol, symbol)
			receipt, err := cli.VaultRedeem(ctx, vault, amount, cli.From(), cli.From())
			if err != nil {
				return err
			}
			fmt.Printf("Done. Tx: %s. %s received.\n", receipt.TxHash.Hex(), symbol)
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "", "deposit (underlying to collateral) or redeem (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount in whole tokens (required)")
	_ = cmd.MarkFlagRequired("direction")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
