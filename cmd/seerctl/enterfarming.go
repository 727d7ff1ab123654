package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/farming"
	"github.com/seerkit/seerctl/pkg/logger"
)

func newEnterFarmingCmd() *cobra.Command {
	var (
		tokenIDFlag int64
		poolFlag    string
	)
	cmd := &cobra.Command{
		Use:   "enter-farming",
		Short: "Deposit an LP NFT into the FarmingCenter and start earning SEER",
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

			farm, err := farming.NewClient(cli, cfg)
			if err != nil {
				return err
			}
			adapter, err := dex.New(cli, cfg)
			if err != nil {
				return err
			}
			tokenID := big.NewInt(tokenIDFlag)

			var pool common.Address
			if poolFlag != "" {
				pool, err = parseAddress(poolFlag, "pool")
				if err != nil {
					return err
				}
			} else {
				fmt.Printf("Reading LP position #%d on-chain...\n", tokenIDFlag)
				pos, err := adapter.Position(ctx, tokenID)
				if err != nil {
					return err
				}
				if pos.Liquidity.Sign() == 0 {
					return errors.New("position has zero liquidity, nothing to farm")
				}
				pool, err = adapter.PoolAddress(ctx, pos.Token0, pos.Token1)
				if err != nil {
					return err
				}
				fmt.Printf("Pool: %s\n", pool.Hex())
			}

			fmt.Println("Looking up active farming incentives...")
			incentives, err := farm.Sub.ActiveIncentives(ctx, pool.Hex())
			if err != nil {
				return err
			}
			if len(incentives) == 0 {
				return errors.New("no active farming incentives found for this pool")
			}
			if len(incentives) > 1 {
				logger.Warnf("%d active incentives found, using the first one", len(incentives))
			}
			incentive := incentives[0]
			fmt.Printf("Incentive: %.1f SEER/day\n", incentive.RewardPerDay())

			key, err := farming.KeyFor(&incentive)
			if err != nil {
				return err
			}

			fmt.Printf("\nDepositing LP NFT #%d to FarmingCenter...\n", tokenIDFlag)
			if err := adapter.Manager().TransferNFT(ctx, farm.Center(), tokenID); err != nil {
				return err
			}
			fmt.Println("Deposited.")

			fmt.Println("Entering farming...")
			txHash, err := farm.Enter(ctx, key, tokenID)
			if err != nil {
				return err
			}
			fmt.Printf("Entered farming. Tx: %s\n", txHash.Hex())
			fmt.Printf("\nLP NFT #%d is now farming %.1f SEER/day.\n", tokenIDFlag, incentive.RewardPerDay())
			fmt.Printf("To exit: seerctl exit-farming --token-id %d\n", tokenIDFlag)
			return nil
		},
	}
	cmd.Flags().Int64Var(&tokenIDFlag, "token-id", 0, "LP NFT token id")
	cmd.Flags().StringVar(&poolFlag, "pool", "", "pool address (read from the position when omitted)")
	_ = cmd.MarkFlagRequired("token-id")
	return cmd
}
