package main

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/market"
	"github.com/seerkit/seerctl/internal/units"
)

func newCreateMarketCmd() *cobra.Command {
	var (
		typeFlag          string
		nameFlag          string
		outcomesFlag      string
		tokensFlag        string
		categoryFlag      string
		langFlag          string
		openingTimeFlag   string
		minBondFlag       string
		lowerBoundFlag    string
		upperBoundFlag    string
		questionStartFlag string
		questionEndFlag   string
		outcomeTypeFlag   string
		parentMarketFlag  string
		parentOutcomeFlag int64
	)
	cmd := &cobra.Command{
		Use:   "create-market",
		Short: "Create a categorical, scalar or multi-scalar market through the factory",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := market.Kind(typeFlag)

			if kind != market.KindMultiScalar && nameFlag == "" {
				return errors.New("--name is required for categorical and scalar markets")
			}

			outcomes := splitCSV(outcomesFlag)
			tokens := splitCSV(tokensFlag)
			if len(outcomes) == 0 || len(tokens) == 0 {
				return errors.New("--outcomes and --tokens are required")
			}
			if len(outcomes) != len(tokens) {
				return errors.Errorf("got %d outcomes but %d token names", len(outcomes), len(tokens))
			}

			openingTime := time.Now()
			if openingTimeFlag != "" {
				var err error
				openingTime, err = time.Parse("2006-01-02", openingTimeFlag)
				if err != nil {
					return errors.Wrap(err, "invalid --opening-time, expected YYYY-MM-DD")
				}
			}

			minBond, err := units.ParseWei(minBondFlag, 18)
			if err != nil {
				return errors.Wrap(err, "invalid --min-bond")
			}
			lowerBound, ok := new(big.Int).SetString(lowerBoundFlag, 10)
			if !ok {
				return errors.New("invalid --lower-bound")
			}
			upperBound, ok := new(big.Int).SetString(upperBoundFlag, 10)
			if !ok {
				return errors.New("invalid --upper-bound")
			}

			parentMarket := common.Address{}
			if parentMarketFlag != "" {
				parentMarket, err = parseAddress(parentMarketFlag, "parent market")
				if err != nil {
					return err
				}
			}

			params := market.CreateParams{
				MarketName:    nameFlag,
				Outcomes:      outcomes,
				QuestionStart: questionStartFlag,
				QuestionEnd:   questionEndFlag,
				OutcomeType:   outcomeTypeFlag,
				ParentOutcome: big.NewInt(parentOutcomeFlag),
				ParentMarket:  parentMarket,
				Category:      categoryFlag,
				Lang:          langFlag,
				LowerBound:    lowerBound,
				UpperBound:    upperBound,
				MinBond:       minBond,
				OpeningTime:   uint32(openingTime.Unix()),
				TokenNames:    tokens,
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

			fmt.Printf("Creating %s market on %s...\n", kind, cfg.Name)
			created, err := market.NewClient(cli, cfg).Create(ctx, kind, params)
			if err != nil {
				return err
			}

			fmt.Printf("Tx: %s\n", created.TxHash.Hex())
			fmt.Printf("Market address: %s\n", created.Market.Hex())
			fmt.Printf("Condition ID: %s\n", common.Hash(created.ConditionID).Hex())
			ids := make([]string, len(created.QuestionIDs))
			for i, id := range created.QuestionIDs {
				ids[i] = common.Hash(id).Hex()
			}
			fmt.Printf("Question IDs: %s\n", strings.Join(ids, ", "))
			fmt.Printf("Confirmed in block %d.\n", created.Block)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeFlag, "type", "", "market type: categorical, scalar or multi-scalar")
	cmd.Flags().StringVar(&nameFlag, "name", "", "market question (not used for multi-scalar)")
	cmd.Flags().StringVar(&outcomesFlag, "outcomes", "", "comma separated outcome names")
	cmd.Flags().StringVar(&tokensFlag, "tokens", "", "comma separated outcome token symbols")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "market category")
	cmd.Flags().StringVar(&langFlag, "lang", "en", "market language")
	cmd.Flags().StringVar(&openingTimeFlag, "opening-time", "", "question opening date YYYY-MM-DD (default now)")
	cmd.Flags().StringVar(&minBondFlag, "min-bond", "", "minimum reality.eth bond in whole native tokens")
	cmd.Flags().StringVar(&lowerBoundFlag, "lower-bound", "0", "scalar lower bound")
	cmd.Flags().StringVar(&upperBoundFlag, "upper-bound", "0", "scalar / multi-scalar upper bound")
	cmd.Flags().StringVar(&questionStartFlag, "question-start", "", "multi-scalar question prefix")
	cmd.Flags().StringVar(&questionEndFlag, "question-end", "", "multi-scalar question suffix")
	cmd.Flags().StringVar(&outcomeTypeFlag, "outcome-type", "", "multi-scalar outcome noun")
	cmd.Flags().StringVar(&parentMarketFlag, "parent-market", "", "parent market for conditional markets")
	cmd.Flags().Int64Var(&parentOutcomeFlag, "parent-outcome", 0, "parent outcome index for conditional markets")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("outcomes")
	_ = cmd.MarkFlagRequired("tokens")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("min-bond")
	return cmd
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
