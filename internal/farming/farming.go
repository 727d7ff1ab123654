// Package farming drives Algebra eternal farming on Gnosis: depositing
// LP NFTs into the farming center, entering and exiting incentive
// programs, and claiming rewards. Incentive discovery goes through the
// farming subgraph.
package farming

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

const farmingCenterABIJSON = `[
  {"name":"enterFarming","type":"function","stateMutability":"nonpayable",
   "inputs":[
     {"name":"key","type":"tuple","components":[
       {"name":"rewardToken","type":"address"},{"name":"bonusRewardToken","type":"address"},
       {"name":"pool","type":"address"},{"name":"startTime","type":"uint256"},
       {"name":"endTime","type":"uint256"}]},
     {"name":"tokenId","type":"uint256"},
     {"name":"tokensLocked","type":"uint256"},
     {"name":"isLimit","type":"bool"}],"outputs":[]},
  {"name":"exitFarming","type":"function","stateMutability":"nonpayable",
   "inputs":[
     {"name":"key","type":"tuple","components":[
       {"name":"rewardToken","type":"address"},{"name":"bonusRewardToken","type":"address"},
       {"name":"pool","type":"address"},{"name":"startTime","type":"uint256"},
       {"name":"endTime","type":"uint256"}]},
     {"name":"tokenId","type":"uint256"},
     {"name":"isLimit","type":"bool"}],"outputs":[]},
  {"name":"withdrawToken","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"tokenId","type":"uint256"},{"name":"to","type":"address"},{"name":"data","type":"bytes"}],"outputs":[]},
  {"name":"multicall","type":"function","stateMutability":"payable",
   "inputs":[{"name":"data","type":"bytes[]"}],"outputs":[{"name":"results","type":"bytes[]"}]},
  {"name":"claimReward","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"rewardToken","type":"address"},{"name":"to","type":"address"},
     {"name":"amountRequestedIncentive","type":"uint256"},{"name":"amountRequestedEternal","type":"uint256"}],
   "outputs":[{"name":"reward","type":"uint256"}]}
]`

var farmingCenterABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(farmingCenterABIJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// IncentiveKey identifies one incentive program on the farming contracts.
type IncentiveKey struct {
	RewardToken      common.Address
	BonusRewardToken common.Address
	Pool             common.Address
	StartTime        *big.Int
	EndTime          *big.Int
}

// KeyFor builds the contract-level incentive key from a subgraph record.
func KeyFor(f *EternalFarming) (IncentiveKey, error) {
	start, ok := new(big.Int).SetString(f.StartTime, 10)
	if !ok {
		return IncentiveKey{}, errors.Errorf("bad incentive startTime %q", f.StartTime)
	}
	end, ok := new(big.Int).SetString(f.EndTime, 10)
	if !ok {
		return IncentiveKey{}, errors.Errorf("bad incentive endTime %q", f.EndTime)
	}
	return IncentiveKey{
		RewardToken:      common.HexToAddress(f.RewardToken),
		BonusRewardToken: common.HexToAddress(f.BonusRewardToken),
		Pool:             common.HexToAddress(f.Pool),
		StartTime:        start,
		EndTime:          end,
	}, nil
}

// Client operates the farming center of one chain.
type Client struct {
	cli    *ethcli.Client
	center common.Address
	Sub    *Subgraph
}

// NewClient fails on chains without a farming deployment.
func NewClient(cli *ethcli.Client, cfg chains.Config) (*Client, error) {
	if cfg.Farming == nil {
		return nil, errors.Errorf("farming is only available on gnosis, chain %q has no farming deployment", cfg.Name)
	}
	return &Client{cli: cli, center: cfg.Farming.Center, Sub: NewSubgraph("")}, nil
}

func (c *Client) Center() common.Address {
	return c.center
}

// Enter registers a deposited NFT with an incentive. The NFT must
// already sit in the farming center via safeTransferFrom.
func (c *Client) Enter(ctx context.Context, key IncentiveKey, tokenID *big.Int) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.center, farmingCenterABI, "enterFarming", ethcli.TxOpts{},
		key, tokenID, big.NewInt(0), false)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// ExitAndClaim leaves the incentive and sweeps all accrued rewards to
// the signer in one transaction through the center's multicall.
func (c *Client) ExitAndClaim(ctx context.Context, key IncentiveKey, tokenID *big.Int) (common.Hash, error) {
	exitData, err := farmingCenterABI.Pack("exitFarming", key, tokenID, false)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "encode exitFarming")
	}
	claimData, err := farmingCenterABI.Pack("claimReward", key.RewardToken, c.cli.From(), big.NewInt(0), maxUint128)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "encode claimReward")
	}

	receipt, err := c.cli.Send(ctx, c.center, farmingCenterABI, "multicall", ethcli.TxOpts{},
		[][]byte{exitData, claimData})
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// WithdrawNFT returns a deposited NFT from the farming center to the
// given wallet.
func (c *Client) WithdrawNFT(ctx context.Context, tokenID *big.Int, to common.Address) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.center, farmingCenterABI, "withdrawToken", ethcli.TxOpts{},
		tokenID, to, []byte{})
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}
