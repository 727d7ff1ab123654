package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/seerapi"
)

func newAirdropCmd() *cobra.Command {
	var (
		addressFlag string
		rawFlag     bool
	)
	cmd := &cobra.Command{
		Use:   "airdrop",
		Short: "Check an address's SEER airdrop allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			address := addressFlag
			if address == "" {
				from, err := ethcli.EnvKeyAddress()
				if err != nil {
					return errors.Wrap(err, "provide --address or set PRIVATE_KEY")
				}
				address = from.Hex()
			} else if _, err := parseAddress(address, "address"); err != nil {
				return err
			}

			data, err := seerapi.NewClient("").AirdropData(cmd.Context(), address)
			if err != nil {
				return err
			}
			if rawFlag {
				return printJSON(data)
			}

			fmt.Printf("SEER Airdrop Allocation for %s\n\n", address)
			fmt.Printf("  Total allocation:        %s SEER\n", allocation(data.TotalAllocation))
			fmt.Printf("  This week:               %s SEER\n", allocation(data.CurrentWeekAllocation))
			fmt.Printf("  Monthly estimate:        %s SEER\n", allocation(data.MonthlyEstimate))
			fmt.Println()
			fmt.Println("  Breakdown:")
			fmt.Printf("    Outcome token holding: %s SEER\n", allocation(data.OutcomeTokenHoldingAllocation))
			fmt.Printf("    PoH bonus:             %s SEER\n", allocation(data.PohUserAllocation))
			fmt.Printf("    Monthly PoH estimate:  %s SEER\n", allocation(data.MonthlyEstimatePoH))
			fmt.Println()
			fmt.Println("  SER LP balances:")
			fmt.Printf("    Mainnet:               %s\n", allocation(data.SerLppMainnet))
			fmt.Printf("    Gnosis:                %s\n", allocation(data.SerLppGnosis))
			return nil
		},
	}
	cmd.Flags().StringVar(&addressFlag, "address", "", "address to check (defaults to the PRIVATE_KEY account)")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "print the raw JSON response")
	return cmd
}

func allocation(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
