package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/ethcli"
	"github.com/seerkit/seerctl/internal/market"
	"github.com/seerkit/seerctl/internal/units"
)

// watchlist is the portfolio.json format: a hand-maintained list of
// markets to keep an eye on, with optional review reminders.
type watchlist struct {
	Markets []watchedMarket `json:"markets"`
}

type watchedMarket struct {
	Address        string   `json:"address"`
	Question       string   `json:"question"`
	PositionIDs    []int64  `json:"positionIds"`
	ReviewTriggers []string `json:"reviewTriggers"`
	NextReview     string   `json:"nextReview"`
}

func newPortfolioCmd() *cobra.Command {
	var fileFlag string
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Check the status of every market and LP position in a portfolio.json watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(fileFlag)
			if err != nil {
				return errors.Wrapf(err, "could not read %s", fileFlag)
			}
			var list watchlist
			if err := json.Unmarshal(raw, &list); err != nil {
				return errors.Wrapf(err, "could not parse %s", fileFlag)
			}
			if len(list.Markets) == 0 {
				return errors.Errorf("%s has no markets", fileFlag)
			}

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

			collateral, err := cli.BalanceOf(ctx, cfg.Collateral.Address, cli.From())
			if err != nil {
				return err
			}
			fmt.Println("\n=== Portfolio Status ===")
			fmt.Printf("Wallet: %s\n", cli.From().Hex())
			fmt.Printf("%s held: %s\n\n", cfg.Collateral.Symbol, units.FormatWei(collateral, cfg.Collateral.Decimals))

			mkt := market.NewClient(cli, cfg)
			adapter, err := dex.New(cli, cfg)
			if err != nil {
				return err
			}

			for _, entry := range list.Markets {
				if err := reportMarket(ctx, cli, cfg.Collateral.Symbol, mkt, adapter, entry); err != nil {
					return err
				}
			}
			fmt.Println("=== End of Portfolio ===")
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&fileFlag, "file", "portfolio.json", "path to the watchlist file")
	return cmd
}

func reportMarket(ctx context.Context, cli *ethcli.Client, collateralSymbol string, mkt *market.Client, adapter dex.Adapter, entry watchedMarket) error {
	fmt.Println("---")
	fmt.Printf("Question: %s\n", entry.Question)
	fmt.Printf("Market: %s\n", entry.Address)

	addr, err := parseAddress(entry.Address, "market")
	if err != nil {
		return err
	}
	info, err := mkt.Get(ctx, addr)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	var openingTs, finalizeTs int64
	if len(info.Questions) > 0 {
		openingTs = int64(info.Questions[0].OpeningTs)
		finalizeTs = int64(info.Questions[0].FinalizeTs)
	}

	status := "active"
	switch {
	case info.PayoutReported:
		status = "resolved"
	case finalizeTs > 0 && finalizeTs <= now:
		status = "finalized, awaiting resolve"
	case openingTs > now:
		status = "not yet open"
	}
	fmt.Printf("Status: %s\n", status)
	if openingTs > 0 {
		fmt.Printf("Opens: %s\n", time.Unix(openingTs, 0).UTC().Format("2006-01-02"))
	}
	if info.PayoutReported {
		parts := make([]string, 0, len(info.PayoutNumerators))
		for i, n := range info.PayoutNumerators {
			if i < len(info.Outcomes) {
				parts = append(parts, fmt.Sprintf("%s=%s", info.Outcomes[i], n.String()))
			}
		}
		fmt.Printf("Payout: %s\n", strings.Join(parts, ", "))
	}

	fmt.Println("Outcome tokens held:")
	for i, token := range info.WrappedTokens {
		bal, err := cli.BalanceOf(ctx, token, cli.From())
		if err != nil {
			return err
		}
		if bal.Sign() > 0 && i < len(info.Outcomes) {
			fmt.Printf("  %s: %s\n", info.Outcomes[i], units.FormatWei(bal, 18))
		}
	}

	if len(entry.PositionIDs) > 0 {
		fmt.Println("LP positions:")
		for _, id := range entry.PositionIDs {
			reportLPosition(ctx, adapter, info, collateralSymbol, id)
		}
	}

	if entry.NextReview != "" {
		line := fmt.Sprintf("Next review: %s", entry.NextReview)
		if due, err := time.Parse("2006-01-02", entry.NextReview); err == nil && !due.After(time.Now()) {
			line += " (OVERDUE)"
		}
		fmt.Println(line)
	}
	if len(entry.ReviewTriggers) > 0 {
		fmt.Printf("Review triggers: %s\n", strings.Join(entry.ReviewTriggers, ", "))
	}
	fmt.Println()
	return nil
}

func reportLPosition(ctx context.Context, adapter dex.Adapter, info *market.Info, collateralSymbol string, tokenID int64) {
	pos, err := adapter.Position(ctx, big.NewInt(tokenID))
	if err != nil {
		fmt.Printf("  #%d: (error reading position: %v)\n", tokenID, err)
		return
	}
	if pos.Liquidity.Sign() == 0 {
		fmt.Printf("  #%d: (empty, liquidity=0)\n", tokenID)
		return
	}
	outcomeName := "?"
	for i, token := range info.WrappedTokens {
		if (token == pos.Token0 || token == pos.Token1) && i < len(info.Outcomes) {
			outcomeName = info.Outcomes[i]
			break
		}
	}
	fmt.Printf("  #%d: %s/%s, liquidity=%s, ticks=[%d,%d]\n",
		tokenID, outcomeName, collateralSymbol, pos.Liquidity.String(), pos.TickLower, pos.TickUpper)
}
