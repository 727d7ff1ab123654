package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/market"
	"github.com/seerkit/seerctl/internal/units"
)

func newAnswerQuestionCmd() *cobra.Command {
	var (
		questionIDFlag  string
		answerIndexFlag string
		answerValueFlag uint64
		bondFlag        string
	)
	cmd := &cobra.Command{
		Use:   "answer-question",
		Short: "Submit a bonded answer to a Reality.eth question",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveChain()
			if err != nil {
				return err
			}

			var answer common.Hash
			switch {
			case cmd.Flags().Changed("answer-index"):
				answer, err = market.AnswerFromIndex(answerIndexFlag)
				if err != nil {
					return err
				}
			case cmd.Flags().Changed("answer-value"):
				answer = market.AnswerFromValue(answerValueFlag)
			default:
				return errors.New("provide --answer-index (categorical) or --answer-value (scalar)")
			}

			bond, err := units.ParseWei(bondFlag, 18)
			if err != nil {
				return errors.Wrap(err, "invalid --bond")
			}

			ctx := cmd.Context()
			cli, err := dialSigner(ctx, cfg)
			if err != nil {
				return err
			}
			defer cli.Close()

			fmt.Printf("Submitting answer %s with %s %s bond...\n", answer.Hex(), bondFlag, cfg.NativeSymbol)
			txHash, err := market.NewClient(cli, cfg).SubmitAnswer(ctx, common.HexToHash(questionIDFlag), answer, bond)
			if err != nil {
				return err
			}
			fmt.Printf("Tx: %s\n", txHash.Hex())
			fmt.Println("Answer submitted. Timeout starts now (~3.5 days).")
			return nil
		},
	}
	cmd.Flags().StringVar(&questionIDFlag, "question-id", "", "Reality.eth question id")
	cmd.Flags().StringVar(&answerIndexFlag, "answer-index", "", "outcome index, INVALID or ANSWERED_TOO_SOON")
	cmd.Flags().Uint64Var(&answerValueFlag, "answer-value", 0, "scalar answer value")
	cmd.Flags().StringVar(&bondFlag, "bond", "", "bond in whole native tokens")
	_ = cmd.MarkFlagRequired("question-id")
	_ = cmd.MarkFlagRequired("bond")
	return cmd
}
