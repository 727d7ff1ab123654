package ethcli

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

const erc20ABIJSON = `[
  {"name":"balanceOf","type":"function","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],
   "outputs":[{"type":"uint256"}]},
  {"name":"allowance","type":"function","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],
   "outputs":[{"type":"uint256"}]},
  {"name":"approve","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],
   "outputs":[{"type":"bool"}]},
  {"name":"symbol","type":"function","stateMutability":"view",
   "inputs":[],"outputs":[{"type":"string"}]}
]`

// erc4626ABIJSON covers the vault surface used here: the share-to-asset
// exchange rate read plus deposit/redeem and the underlying asset lookup.
const erc4626ABIJSON = `[
  {"name":"convertToAssets","type":"function","stateMutability":"view",
   "inputs":[{"name":"shares","type":"uint256"}],
   "outputs":[{"type":"uint256"}]},
  {"name":"deposit","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"}],
   "outputs":[{"name":"shares","type":"uint256"}]},
  {"name":"redeem","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"shares","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],
   "outputs":[{"name":"assets","type":"uint256"}]},
  {"name":"asset","type":"function","stateMutability":"view",
   "inputs":[],"outputs":[{"type":"address"}]}
]`

var (
	erc20ABI   = mustParseABI(erc20ABIJSON)
	erc4626ABI = mustParseABI(erc4626ABIJSON)

	// MaxUint256 is the unlimited-approval amount.
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}

// BalanceOf reads an ERC-20 balance.
func (c *Client) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, token, erc20ABI, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Allowance reads an ERC-20 allowance.
func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	out, err := c.Call(ctx, token, erc20ABI, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

// Approve grants an ERC-20 allowance and waits for confirmation.
func (c *Client) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*ethtypes.Receipt, error) {
	return c.Send(ctx, token, erc20ABI, "approve", TxOpts{}, spender, amount)
}

// TokenSymbol reads an ERC-20 symbol.
func (c *Client) TokenSymbol(ctx context.Context, token common.Address) (string, error) {
	out, err := c.Call(ctx, token, erc20ABI, "symbol")
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// ConvertToAssets reads the ERC-4626 share-to-asset exchange rate for the
// given share amount. This is the only live external read the liquidity
// sizing depends on; when it fails the caller must abort rather than guess
// a rate.
func (c *Client) ConvertToAssets(ctx context.Context, vault common.Address, shares *big.Int) (*big.Int, error) {
	out, err := c.Call(ctx, vault, erc4626ABI, "convertToAssets", shares)
	if err != nil {
		return nil, fmt.Errorf("collateral %s does not answer ERC-4626 convertToAssets: %w", vault.Hex(), err)
	}
	return out[0].(*big.Int), nil
}

// VaultDeposit deposits underlying assets into an ERC-4626 vault.
func (c *Client) VaultDeposit(ctx context.Context, vault common.Address, assets *big.Int, receiver common.Address) (*ethtypes.Receipt, error) {
	return c.Send(ctx, vault, erc4626ABI, "deposit", TxOpts{}, assets, receiver)
}

// VaultRedeem redeems vault shares back to the underlying asset.
func (c *Client) VaultRedeem(ctx context.Context, vault common.Address, shares *big.Int, receiver, owner common.Address) (*ethtypes.Receipt, error) {
	return c.Send(ctx, vault, erc4626ABI, "redeem", TxOpts{}, shares, receiver, owner)
}

// VaultAsset returns the vault's underlying ERC-20.
func (c *Client) VaultAsset(ctx context.Context, vault common.Address) (common.Address, error) {
	out, err := c.Call(ctx, vault, erc4626ABI, "asset")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}
