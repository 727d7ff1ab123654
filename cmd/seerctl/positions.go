package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/seerapi"
	"github.com/seerkit/seerctl/pkg/logger"
)

func newPositionsCmd() *cobra.Command {
	var rawFlag bool
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Show outcome-token holdings across markets via the Seer API",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := ethcli.EnvKeyAddress()
			if err != nil {
				return errors.Wrap(err, "PRIVATE_KEY required")
			}

			// --chain narrows to one chain, no flag means all of them.
			names := chains.Names()
			if chainFlag != "" {
				if _, err := chains.Get(chainFlag); err != nil {
					return err
				}
				names = []string{chainFlag}
			}

			ctx := cmd.Context()
			api := seerapi.NewClient("")

			var (
				mu  sync.Mutex
				wg  sync.WaitGroup
				all []seerapi.Position
			)
			for _, name := range names {
				cfg, err := chains.Get(name)
				if err != nil {
					return err
				}
				wg.Add(1)
				go func(name string, chainID int64) {
					defer wg.Done()
					positions, err := api.Portfolio(ctx, account.Hex(), chainID)
					if err != nil {
						logger.Warnf("fetching %s portfolio: %v", name, err)
						return
					}
					for i := range positions {
						positions[i].Chain = name
					}
					mu.Lock()
					all = append(all, positions...)
					mu.Unlock()
				}(name, cfg.ChainID)
			}
			wg.Wait()

			if rawFlag {
				return printJSON(all)
			}

			type marketGroup struct {
				first    seerapi.Position
				holdings []seerapi.Position
			}
			byMarket := map[string]*marketGroup{}
			var order []string
			for _, p := range all {
				if p.IsInvalidOutcome {
					continue
				}
				g, ok := byMarket[p.MarketID]
				if !ok {
					g = &marketGroup{first: p}
					byMarket[p.MarketID] = g
					order = append(order, p.MarketID)
				}
				g.holdings = append(g.holdings, p)
			}
			sort.Strings(order)

			fmt.Printf("%s\n%d market(s) with positions\n\n", account.Hex(), len(order))
			for _, id := range order {
				g := byMarket[id]
				parts := make([]string, 0, len(g.holdings))
				for _, h := range g.holdings {
					parts = append(parts, fmt.Sprintf("%s: %.4f", h.Outcome, h.TokenBalance))
				}
				fmt.Printf("  %s\n", g.first.MarketName)
				fmt.Printf("  %s | %s\n", g.first.Chain, g.first.MarketID)
				fmt.Printf("  Status: %s | Holdings: %s\n", g.first.MarketStatus, strings.Join(parts, "  |  "))
				if g.first.RedeemedPrice > 0 {
					fmt.Printf("  Redeemable at: %g\n", g.first.RedeemedPrice)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "print the raw JSON positions")
	return cmd
}
