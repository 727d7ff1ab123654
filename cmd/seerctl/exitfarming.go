package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/seerkit/seerctl/internal/dex"
	"github.com/seerkit/seerctl/internal/farming"
	"github.com/seerkit/seerctl/pkg/logger"
)

func newExitFarmingCmd() *cobra.Command {
	var (
		tokenIDFlag    int64
		poolFlag       string
		noWithdrawFlag bool
	)
	cmd := &cobra.Command{
		Use:   "exit-farming",
		Short: "Exit farming, claim SEER rewards and withdraw the LP NFT",
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
			tokenID := big.NewInt(tokenIDFlag)

			var pool common.Address
			if poolFlag != "" {
				pool, err = parseAddress(poolFlag, "pool")
				if err != nil {
					return err
				}
			} else {
				// The NFT sits in the farming center, so the subgraph deposit
				// record is the reliable source. On-chain positions() is the
				// fallback.
				fmt.Println("Looking up deposit info from subgraph...")
				deposit, err := farm.Sub.DepositInfo(ctx, strconv.FormatInt(tokenIDFlag, 10))
				if err == nil && deposit != nil && deposit.Pool != "" {
					if !deposit.OnFarmingCenter {
						return errors.New("this NFT is not deposited in the FarmingCenter")
					}
					if deposit.EternalFarming == "" {
						logger.Warnf("NFT is in the FarmingCenter but not in eternal farming, will just withdraw")
					}
					pool = common.HexToAddress(deposit.Pool)
				} else {
					fmt.Println("Reading LP position on-chain...")
					adapter, err := dex.New(cli, cfg)
					if err != nil {
						return err
					}
					pos, err := adapter.Position(ctx, tokenID)
					if err != nil {
						return err
					}
					pool, err = adapter.PoolAddress(ctx, pos.Token0, pos.Token1)
					if err != nil {
						return err
					}
				}
				fmt.Printf("Pool: %s\n", pool.Hex())
			}

			fmt.Println("Looking up farming incentives...")
			incentives, err := farm.Sub.ActiveIncentives(ctx, pool.Hex())
			if err != nil {
				return err
			}
			var incentive *farming.EternalFarming
			if len(incentives) > 0 {
				incentive = &incentives[0]
			} else {
				// Ended incentives still need their key to exit.
				fmt.Println("No active incentives. Checking ended incentives...")
				incentive, err = farm.Sub.LatestIncentive(ctx, pool.Hex())
				if err != nil {
					return err
				}
				if incentive == nil {
					return errors.New("no farming incentives found for this pool at all")
				}
			}
			key, err := farming.KeyFor(incentive)
			if err != nil {
				return err
			}

			fmt.Println("\nExiting farming and claiming rewards...")
			txHash, err := farm.ExitAndClaim(ctx, key, tokenID)
			if err != nil {
				return err
			}
			fmt.Printf("Exited farming and claimed rewards. Tx: %s\n", txHash.Hex())

			if noWithdrawFlag {
				fmt.Println("\nNFT remains in the FarmingCenter (--no-withdraw).")
				return nil
			}

			fmt.Println("\nWithdrawing NFT back to wallet...")
			txHash, err = farm.WithdrawNFT(ctx, tokenID, cli.From())
			if err != nil {
				return err
			}
			fmt.Printf("NFT #%d withdrawn to %s. Tx: %s\n", tokenIDFlag, cli.From().Hex(), txHash.Hex())
			return nil
		},
	}
	cmd.Flags().Int64Var(&tokenIDFlag, "token-id", 0, "LP NFT token id")
	cmd.Flags().StringVar(&poolFlag, "pool", "", "pool address (auto-detected when omitted)")
	cmd.Flags().BoolVar(&noWithdrawFlag, "no-withdraw", false, "exit and claim but leave the NFT in the FarmingCenter")
	_ = cmd.MarkFlagRequired("token-id")
	return cmd
}
