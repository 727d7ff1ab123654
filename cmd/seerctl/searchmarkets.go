package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/seerapi"
)

var sortFields = map[string]string{
	"liquidity": seerapi.SortLiquidity,
	"date":      seerapi.SortDate,
	"opening":   seerapi.SortOpening,
}

func newSearchMarketsCmd() *cobra.Command {
	var (
		queryFlag    string
		statusFlag   string
		categoryFlag string
		creatorFlag  string
		mineFlag     bool
		verifiedFlag bool
		rewardsFlag  bool
		sortFlag     string
		orderFlag    string
		limitFlag    int
		pageFlag     int
		idFlag       string
		rawFlag      bool
	)
	cmd := &cobra.Command{
		Use:   "search-markets",
		Short: "Search markets through the Seer API",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := seerapi.SearchRequest{
				MarketName:     queryFlag,
				OrderDirection: orderFlag,
				Limit:          limitFlag,
				Page:           pageFlag,
			}

			// --chain here is a filter, no flag means all chains.
			if chainFlag != "" {
				cfg, err := chains.Get(chainFlag)
				if err != nil {
					return err
				}
				req.ChainsList = []string{strconv.FormatInt(cfg.ChainID, 10)}
			}
			if statusFlag != "" {
				req.MarketStatusList = []string{statusFlag}
			}
			if categoryFlag != "" {
				req.CategoryList = []string{categoryFlag}
			}
			switch {
			case mineFlag:
				from, err := ethcli.EnvKeyAddress()
				if err != nil {
					return errors.Wrap(err, "--mine requires PRIVATE_KEY")
				}
				req.Creator = from.Hex()
			case creatorFlag != "":
				req.Creator = creatorFlag
			}
			if verifiedFlag {
				req.VerificationStatusList = []string{"verified"}
			}
			if rewardsFlag {
				req.ShowMarketsWithRewards = true
			}
			if field, ok := sortFields[sortFlag]; ok {
				req.OrderBy = field
			} else {
				req.OrderBy = sortFlag
			}
			if idFlag != "" {
				req.MarketName = ""
				req.MarketIDs = []string{strings.ToLower(idFlag)}
				req.Limit = 1
			}

			res, err := seerapi.NewClient("").SearchMarkets(cmd.Context(), req)
			if err != nil {
				return err
			}
			if rawFlag {
				return printJSON(res)
			}

			pages := res.Pages
			if pages == 0 {
				pages = 1
			}
			fmt.Printf("Found %d market(s) (showing %d, page %d/%d)\n\n", res.Count, len(res.Markets), req.Page, pages)
			for _, m := range res.Markets {
				printMarketSummary(m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&queryFlag, "query", "", "search by market name")
	cmd.Flags().StringVar(&statusFlag, "status", "", "open, closed, not_open, answer_not_final, in_dispute or pending_execution")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "filter by category")
	cmd.Flags().StringVar(&creatorFlag, "creator", "", "filter by creator address")
	cmd.Flags().BoolVar(&mineFlag, "mine", false, "markets created by the PRIVATE_KEY account")
	cmd.Flags().BoolVar(&verifiedFlag, "verified", false, "only verified markets")
	cmd.Flags().BoolVar(&rewardsFlag, "rewards", false, "only markets with active farming incentives")
	cmd.Flags().StringVar(&sortFlag, "sort", "liquidity", "sort by liquidity, date or opening")
	cmd.Flags().StringVar(&orderFlag, "order", "desc", "sort direction")
	cmd.Flags().IntVar(&limitFlag, "limit", 10, "max results")
	cmd.Flags().IntVar(&pageFlag, "page", 1, "page number")
	cmd.Flags().StringVar(&idFlag, "id", "", "look up one market by address")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "print the raw JSON response")
	return cmd
}

func printMarketSummary(m seerapi.Market) {
	chain := chainNameByID(m.ChainID)

	var odds []string
	for i, o := range m.Outcomes {
		if o == "Invalid" {
			continue
		}
		odds = append(odds, fmt.Sprintf("%s: %s", o, pct(m.Odds, i)))
	}

	fmt.Printf("  %s\n", m.MarketName)
	fmt.Printf("  %s | %s\n", chain, m.ID)
	fmt.Printf("  https://app.seer.pm/markets/%d/%s\n", m.ChainID, m.ID)
	fmt.Printf("  Odds: %s\n", strings.Join(odds, "  |  "))

	status := "open"
	switch {
	case m.PayoutReported:
		status = "resolved"
	case m.OpeningTs > time.Now().Unix():
		status = "not_open"
	}
	line := fmt.Sprintf("  Liquidity: $%.2f | Status: %s", m.LiquidityUSD, status)
	if m.Incentive > 0 {
		line += fmt.Sprintf(" | Rewards: %.1f SEER/day", m.Incentive)
	}
	fmt.Println(line)
	if m.Verification.Status != "" {
		fmt.Printf("  Verification: %s\n", m.Verification.Status)
	}
	if m.OpeningTs > 0 {
		fmt.Printf("  Opens: %s\n", time.Unix(m.OpeningTs, 0).UTC().Format("2006-01-02"))
	}
	fmt.Println()
}

func chainNameByID(id int64) string {
	if cfg, ok := chains.ByChainID(id); ok {
		return cfg.Name
	}
	return fmt.Sprintf("chain-%d", id)
}

func pct(odds []float64, i int) string {
	if i >= len(odds) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", odds[i])
}
