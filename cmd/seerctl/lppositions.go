package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/lpstore"
)

func newLpPositionsCmd() *cobra.Command {
	var (
		all  bool
		raw  bool
		live bool
	)

	cmd := &cobra.Command{
		Use:   "lp-positions",
		Short: "Show tracked LP positions from the local tracker file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := lpstore.DefaultPath()
			if err != nil {
				return err
			}
			store := lpstore.New(path)
			positions, err := store.Load()
			if err != nil {
				return err
			}
			total := len(positions)

			// The --chain flag filters here instead of selecting a default;
			// without it the tracker shows every chain.
			filtered := positions[:0:0]
			for _, p := range positions {
				if chainFlag != "" && p.Chain != chainFlag {
					continue
				}
				if !all && !p.Active() {
					continue
				}
				filtered = append(filtered, p)
			}

			if raw {
				return printJSON(filtered)
			}

			if len(filtered) == 0 {
				if total > 0 && !all {
					fmt.Printf("No active LP positions. (%d withdrawn, use --all to show)\n", total)
				} else {
					fmt.Println("No LP positions tracked.")
					fmt.Printf("File: %s\n", store.Path())
				}
				return nil
			}

			liveLiquidity := map[string]string{}
			if live {
				liveLiquidity = fetchLiveLiquidity(cmd, filtered)
			}

			active, withdrawn := 0, 0
			for _, p := range filtered {
				if p.Active() {
					active++
				} else {
					withdrawn++
				}
			}
			header := fmt.Sprintf("%d active LP position(s)", active)
			if withdrawn > 0 {
				header += fmt.Sprintf(" + %d withdrawn", withdrawn)
			}
			fmt.Println(header + "\n")

			for _, p := range filtered {
				tag := ""
				if !p.Active() {
					tag = " (withdrawn)"
				}
				fmt.Printf("  #%s [%s/%s]%s\n", p.TokenID, p.Chain, p.DexType, tag)
				if p.OutcomeName != "" && p.MarketName != "" {
					fmt.Printf("  %s / %s\n", p.OutcomeName, p.MarketName)
				} else if p.MarketName != "" {
					fmt.Printf("  %s\n", p.MarketName)
				}
				if p.Market != "" {
					fmt.Printf("  Market: %s\n", p.Market)
				}
				fmt.Printf("  Range: %.1f%% to %.1f%%\n", p.ProbLow*100, p.ProbHigh*100)
				fmt.Printf("  Tokens: %s / %s\n", p.Token0, p.Token1)
				if liq, ok := liveLiquidity[p.Chain+":"+p.TokenID]; ok {
					fmt.Printf("  On-chain liquidity: %s\n", liq)
				}
				fmt.Printf("  Added: %s", short(p.CreatedAt))
				if p.WithdrawnAt != nil {
					fmt.Printf(" | Withdrawn: %s", short(*p.WithdrawnAt))
				}
				fmt.Print("\n\n")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include withdrawn positions")
	cmd.Flags().BoolVar(&raw, "raw", false, "output full JSON")
	cmd.Flags().BoolVar(&live, "live", false, "query on-chain for current liquidity")
	return cmd
}

// fetchLiveLiquidity reads current liquidity per active position, one RPC
// connection per chain. Failures show up inline instead of aborting.
func fetchLiveLiquidity(cmd *cobra.Command, positions []lpstore.Position) map[string]string {
	byChain := map[string][]lpstore.Position{}
	for _, p := range positions {
		if p.Active() {
			byChain[p.Chain] = append(byChain[p.Chain], p)
		}
	}

	out := map[string]string{}
	for chain, chainPositions := range byChain {
		cfg, err := chains.Get(chain)
		if err != nil {
			for _, p := range chainPositions {
				out[chain+":"+p.TokenID] = "error: " + err.Error()
			}
			continue
		}
		cli, err := dialRead(cmd.Context(), cfg)
		if err != nil {
			for _, p := range chainPositions {
				out[chain+":"+p.TokenID] = "error: " + err.Error()
			}
			continue
		}
		adapter, err := dex.New(cli, cfg)
		if err != nil {
			cli.Close()
			continue
		}
		for _, p := range chainPositions {
			tokenID, ok := new(big.Int).SetString(p.TokenID, 10)
			if !ok {
				out[chain+":"+p.TokenID] = "error: bad token id"
				continue
			}
			pos, err := adapter.Position(cmd.Context(), tokenID)
			if err != nil {
				out[chain+":"+p.TokenID] = "error: " + err.Error()
				continue
			}
			out[chain+":"+p.TokenID] = pos.Liquidity.String()
		}
		cli.Close()
	}
	return out
}

func short(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}
