package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/market"
)

// marketJSON flattens market.Info into the shape the JSON output uses,
// with big integers rendered as decimal strings.
type marketJSON struct {
	ID               string         `json:"id"`
	MarketName       string         `json:"marketName"`
	Outcomes         []string       `json:"outcomes"`
	WrappedTokens    []string       `json:"wrappedTokens"`
	CollateralToken  string         `json:"collateralToken"`
	CollateralToken1 string         `json:"collateralToken1"`
	CollateralToken2 string         `json:"collateralToken2"`
	LowerBound       string         `json:"lowerBound"`
	UpperBound       string         `json:"upperBound"`
	ConditionID      string         `json:"conditionId"`
	QuestionID       string         `json:"questionId"`
	QuestionsIDs     []string       `json:"questionsIds"`
	EncodedQuestions []string       `json:"encodedQuestions"`
	PayoutReported   bool           `json:"payoutReported"`
	PayoutNumerators []string       `json:"payoutNumerators"`
	OutcomesSupply   string         `json:"outcomesSupply"`
	ParentMarket     string         `json:"parentMarket"`
	ParentOutcome    string         `json:"parentOutcome"`
	ParentCollection string         `json:"parentCollectionId"`
	Questions        []questionJSON `json:"questions"`
}

type questionJSON struct {
	Arbitrator           string `json:"arbitrator"`
	OpeningTs            uint32 `json:"opening_ts"`
	Timeout              uint32 `json:"timeout"`
	FinalizeTs           uint32 `json:"finalize_ts"`
	IsPendingArbitration bool   `json:"is_pending_arbitration"`
	BestAnswer           string `json:"best_answer"`
	Bond                 string `json:"bond"`
	MinBond              string `json:"min_bond"`
}

func newReadMarketCmd() *cobra.Command {
	var marketFlag string
	cmd := &cobra.Command{
		Use:   "read-market",
		Short: "Dump the full on-chain state of a market as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}
			addr, err := parseAddress(marketFlag, "market")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cli, err := dialRead(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			info, err := market.NewClient(cli, cfg).Get(ctx, addr)
			if err != nil {
				return err
			}
			return printJSON(serializeMarket(info))
		},
	}
	cmd.Flags().StringVar(&marketFlag, "market", "", "market address")
	_ = cmd.MarkFlagRequired("market")
	return cmd
}

func serializeMarket(info *market.Info) marketJSON {
	out := marketJSON{
		ID:               info.Id.Hex(),
		MarketName:       info.MarketName,
		Outcomes:         info.Outcomes,
		CollateralToken:  info.CollateralToken.Hex(),
		CollateralToken1: info.CollateralToken1.Hex(),
		CollateralToken2: info.CollateralToken2.Hex(),
		LowerBound:       info.LowerBound.String(),
		UpperBound:       info.UpperBound.String(),
		ConditionID:      common.Hash(info.ConditionId).Hex(),
		QuestionID:       common.Hash(info.QuestionId).Hex(),
		EncodedQuestions: info.EncodedQuestions,
		PayoutReported:   info.PayoutReported,
		OutcomesSupply:   info.OutcomesSupply.String(),
		ParentMarket:     info.ParentMarket.Id.Hex(),
		ParentOutcome:    info.ParentOutcome.String(),
		ParentCollection: common.Hash(info.ParentCollectionId).Hex(),
	}
	for _, t := range info.WrappedTokens {
		out.WrappedTokens = append(out.WrappedTokens, t.Hex())
	}
	for _, id := range info.QuestionsIds {
		out.QuestionsIDs = append(out.QuestionsIDs, common.Hash(id).Hex())
	}
	for _, n := range info.PayoutNumerators {
		out.PayoutNumerators = append(out.PayoutNumerators, n.String())
	}
	for _, q := range info.Questions {
		out.Questions = append(out.Questions, questionJSON{
			Arbitrator:           q.Arbitrator.Hex(),
			OpeningTs:            q.OpeningTs,
			Timeout:              q.Timeout,
			FinalizeTs:           q.FinalizeTs,
			IsPendingArbitration: q.IsPendingArbitration,
			BestAnswer:           common.Hash(q.BestAnswer).Hex(),
			Bond:                 q.Bond.String(),
			MinBond:              q.MinBond.String(),
		})
	}
	return out
}
