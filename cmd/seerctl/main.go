// seerctl operates Seer prediction markets from the command line: market
// lifecycle, outcome-token trading, concentrated liquidity provision and
// farming across Gnosis, Mainnet, Optimism and Base.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/pkg/logger"
	"github.com/seerkit/seerctl/pkg/shutdown"
)

var chainFlag string

func main() {
	// Missing .env is fine, PRIVATE_KEY may come from the environment.
	_ = godotenv.Load()

	ctx, cancel := shutdown.Context(context.Background())
	defer cancel()

	root := &cobra.Command{
		Use:           "seerctl",
		Short:         "Operate Seer prediction markets: trade, provide liquidity, farm",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&chainFlag, "chain", "", "chain name (gnosis, mainnet, optimism, base; default from CHAIN env or gnosis)")

	var logLevel string
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{Level: logLevel})
	}

	root.AddCommand(
		newAddLiquidityCmd(),
		newWithdrawLiquidityCmd(),
		newLpPositionsCmd(),
		newSwapCmd(),
		newSplitCmd(),
		newMergeRedeemCmd(),
		newConvertCollateralCmd(),
		newApproveCmd(),
		newBalanceCmd(),
		newCreateMarketCmd(),
		newReadMarketCmd(),
		newResolveMarketCmd(),
		newAnswerQuestionCmd(),
		newSearchMarketsCmd(),
		newPositionsCmd(),
		newPortfolioCmd(),
		newEnterFarmingCmd(),
		newExitFarmingCmd(),
		newAirdropCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
