package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/units"
)

func newBalanceCmd() *cobra.Command {
	var (
		addressFlag string
		tokenFlag   string
	)
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show native and collateral balances for an address",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}

			var from common.Address
			if addressFlag != "" {
				from, err = parseAddress(addressFlag, "address")
				if err != nil {
					return err
				}
			} else {
				from, err = ethcli.EnvKeyAddress()
				if err != nil {
					return fmt.Errorf("provide --address or set PRIVATE_KEY: %w", err)
				}
			}

			ctx := cmd.Context()
			cli, err := dialRead(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			if tokenFlag != "" {
				token, err := parseAddress(tokenFlag, "token")
				if err != nil {
					return err
				}
				bal, err := cli.BalanceOf(ctx, token, from)
				if err != nil {
					return err
				}
				fmt.Printf("Address: %s\n", from.Hex())
				fmt.Printf("Token:   %s\n", token.Hex())
				fmt.Printf("Balance: %s\n", units.FormatWei(bal, 18))
				return nil
			}

			native, err := cli.NativeBalance(ctx, from)
			if err != nil {
				return err
			}
			collateral, err := cli.BalanceOf(ctx, cfg.Collateral.Address, from)
			if err != nil {
				return err
			}
			fmt.Printf("Address: %s\n", from.Hex())
			fmt.Printf("Chain:   %s\n", cfg.Name)
			fmt.Printf("%-6s %s\n", cfg.NativeSymbol+":", units.FormatWei(native, 18))
			fmt.Printf("%-6s %s\n", cfg.Collateral.Symbol+":", units.FormatWei(collateral, cfg.Collateral.Decimals))
			return nil
		},
	}
	cmd.Flags().StringVar(&addressFlag, "address", "", "address to check (defaults to the PRIVATE_KEY account)")
	cmd.Flags().StringVar(&tokenFlag, "token", "", "show only this ERC20 token balance")
	return cmd
}
