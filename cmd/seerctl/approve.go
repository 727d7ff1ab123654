package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/units"
)

// approveThreshold is 1M whole tokens. Below it the command re-approves
// max so routine operations never hit an allowance wall.
var approveThreshold = new(big.Int).Mul(big.NewInt(1_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

func newApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Check collateral allowances to the router and position manager, top up to max when low",
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

			spenders := []struct {
				name string
				addr common.Address
			}{
				{"Router", cfg.Router},
				{"Position Manager", cfg.Dex.PositionManager},
			}

			for _, spender := range spenders {
				allowance, err := cli.Allowance(ctx, cfg.Collateral.Address, cli.From(), spender.addr)
				if err != nil {
					return err
				}
				fmt.Printf("%s approval: %s %s\n", spender.name,
					units.FormatWei(allowance, cfg.Collateral.Decimals), cfg.Collateral.Symbol)

				if allowance.Cmp(approveThreshold) >= 0 {
					fmt.Printf("%s approval sufficient.\n", spender.name)
					continue
				}
				fmt.Printf("Below 1M, approving max to %s...\n", spender.name)
				receipt, err := cli.Approve(ctx, cfg.Collateral.Address, spender.addr, ethcli.MaxUint256)
				if err != nil {
					return err
				}
				fmt.Printf("Done. Tx: %s\n", receipt.TxHash.Hex())
			}
			return nil
		},
	}
	return cmd
}
