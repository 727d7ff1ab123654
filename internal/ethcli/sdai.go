package ethcli

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Gnosis sDAI adapter. Unlike plain ERC-4626 vaults it takes the native
// token directly, so deposits carry value and need no prior approval.
const sdaiAdapterABIJSON = `[
  {"name":"depositXDAI","type":"function","stateMutability":"payable",
   "inputs":[{"name":"receiver","type":"address"}],"outputs":[{"type":"uint256"}]},
  {"name":"redeemXDAI","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"shares","type":"uint256"},{"name":"receiver","type":"address"}],"outputs":[{"type":"uint256"}]}
]`

var sdaiAdapterABI = mustParseABI(sdaiAdapterABIJSON)

// AdapterDepositNative wraps native xDAI into sDAI through the adapter.
func (c *Client) AdapterDepositNative(ctx context.Context, adapter common.Address, amount *big.Int, receiver common.Address) (*ethtypes.Receipt, error) {
	return c.Send(ctx, adapter, sdaiAdapterABI, "depositXDAI", TxOpts{Value: amount}, receiver)
}

// AdapterRedeemNative unwraps sDAI shares back to native xDAI. The
// adapter pulls the shares, so it needs an allowance first.
func (c *Client) AdapterRedeemNative(ctx context.Context, adapter common.Address, shares *big.Int, receiver common.Address) (*ethtypes.Receipt, error) {
	return c.Send(ctx, adapter, sdaiAdapterABI, "redeemXDAI", TxOpts{}, shares, receiver)
}
