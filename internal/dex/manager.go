package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/seerkit/seerctl/internal/ethcli"
)

// PositionManager wraps the NFT side of the position manager contract.
// Enumeration, liquidity removal, fee collection and transfer share the
// same ABI across both pool families.
type PositionManager struct {
	cli  *ethcli.Client
	addr common.Address
}

func (m *PositionManager) Address() common.Address {
	return m.addr
}

// OwnedTokenIDs enumerates every position NFT held by owner.
func (m *PositionManager) OwnedTokenIDs(ctx context.Context, owner common.Address) ([]*big.Int, error) {
	out, err := m.cli.Call(ctx, m.addr, sharedManagerABI, "balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("position count: %w", err)
	}
	count := out[0].(*big.Int).Int64()

	ids := make([]*big.Int, 0, count)
	for i := int64(0); i < count; i++ {
		out, err := m.cli.Call(ctx, m.addr, sharedManagerABI, "tokenOfOwnerByIndex", owner, big.NewInt(i))
		if err != nil {
			return nil, fmt.Errorf("position at index %d: %w", i, err)
		}
		ids = append(ids, out[0].(*big.Int))
	}
	return ids, nil
}

type decreaseLiquidityParams struct {
	TokenId    *big.Int
	Liquidity  *big.Int
	Amount0Min *big.Int
	Amount1Min *big.Int
	Deadline   *big.Int
}

// DecreaseLiquidity burns the full liquidity of a position. The tokens
// stay owed to the position until Collect pulls them out.
func (m *PositionManager) DecreaseLiquidity(ctx context.Context, tokenID, liquidity *big.Int) error {
	params := decreaseLiquidityParams{
		TokenId:    tokenID,
		Liquidity:  liquidity,
		Amount0Min: big.NewInt(0),
		Amount1Min: big.NewInt(0),
		Deadline:   deadline(),
	}
	_, err := m.cli.Send(ctx, m.addr, sharedManagerABI, "decreaseLiquidity", ethcli.TxOpts{}, params)
	return err
}

type collectParams struct {
	TokenId    *big.Int
	Recipient  common.Address
	Amount0Max *big.Int
	Amount1Max *big.Int
}

// Collect sweeps all owed tokens and accrued fees to recipient.
func (m *PositionManager) Collect(ctx context.Context, tokenID *big.Int, recipient common.Address) error {
	params := collectParams{
		TokenId:    tokenID,
		Recipient:  recipient,
		Amount0Max: MaxUint128,
		Amount1Max: MaxUint128,
	}
	_, err := m.cli.Send(ctx, m.addr, sharedManagerABI, "collect", ethcli.TxOpts{}, params)
	return err
}

// Burn destroys an emptied position NFT. Reverts while liquidity or
// uncollected tokens remain.
func (m *PositionManager) Burn(ctx context.Context, tokenID *big.Int) error {
	_, err := m.cli.Send(ctx, m.addr, sharedManagerABI, "burn", ethcli.TxOpts{}, tokenID)
	return err
}

// TransferNFT moves a position NFT to another holder. Farming deposits
// work this way: the NFT goes to the farming center via safeTransferFrom.
func (m *PositionManager) TransferNFT(ctx context.Context, to common.Address, tokenID *big.Int) error {
	_, err := m.cli.Send(ctx, m.addr, sharedManagerABI, "safeTransferFrom", ethcli.TxOpts{}, m.cli.From(), to, tokenID)
	return err
}
