// Package ethcli wraps go-ethereum's ethclient with the call/simulate/send
// primitives every on-chain operation in this repository is built from.
//
// Writes follow a fixed two-phase shape: gas estimation (and, where a return
// value is needed, an explicit eth_call simulation) runs against the node
// before the signed transaction is submitted, so calls that would revert are
// caught without spending gas.
package ethcli

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client is a chain connection, optionally holding a signing key. Read-only
// commands dial without a key; commands that submit transactions require one.
type Client struct {
	eth     *ethclient.Client
	chainID *big.Int
	key     *ecdsa.PrivateKey
	from    common.Address
}

// Dial opens a read-only connection.
func Dial(ctx context.Context, rpcURL string, chainID int64) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", rpcURL, err)
	}
	return &Client{eth: eth, chainID: big.NewInt(chainID)}, nil
}

// DialWithKey opens a connection with a signing key loaded from the given
// hex private key (0x prefix optional).
func DialWithKey(ctx context.Context, rpcURL string, chainID int64, hexKey string) (*Client, error) {
	c, err := Dial(ctx, rpcURL, chainID)
	if err != nil {
		return nil, err
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	c.key = key
	c.from = crypto.PubkeyToAddress(key.PublicKey)
	return c, nil
}

// DialWithEnvKey is DialWithKey using the PRIVATE_KEY env var.
func DialWithEnvKey(ctx context.Context, rpcURL string, chainID int64) (*Client, error) {
	pk := os.Getenv("PRIVATE_KEY")
	if pk == "" {
		return nil, fmt.Errorf("PRIVATE_KEY env var required")
	}
	return DialWithKey(ctx, rpcURL, chainID, pk)
}

// EnvKeyAddress derives the signer address from the PRIVATE_KEY env var
// without opening an RPC connection.
func EnvKeyAddress() (common.Address, error) {
	pk := os.Getenv("PRIVATE_KEY")
	if pk == "" {
		return common.Address{}, fmt.Errorf("PRIVATE_KEY env var required")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(pk, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("parse private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	if c.eth != nil {
		c.eth.Close()
	}
}

// From returns the signing address. Zero for read-only clients.
func (c *Client) From() common.Address {
	return c.from
}

// CanSign reports whether a key is loaded.
func (c *Client) CanSign() bool {
	return c.key != nil
}

// NativeBalance reads the native-currency balance of an address.
func (c *Client) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.eth.BalanceAt(ctx, addr, nil)
}

// Call packs and executes a view call, returning the unpacked outputs.
func (c *Client) Call(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}
	out, err := contractABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s result: %w", method, err)
	}
	return out, nil
}

// Simulate executes a state-changing call as eth_call from the signing
// address and returns the unpacked outputs. Used where the caller needs the
// return value of a write (pool address, minted token ID) before submitting
// the real transaction, and as the dry-run half of the two-phase check.
func (c *Client) Simulate(ctx context.Context, to common.Address, contractABI abi.ABI, method string, value *big.Int, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{From: c.from, To: &to, Data: data, Value: value}
	raw, err := c.eth.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("simulate %s on %s: %w", method, to.Hex(), err)
	}
	out, err := contractABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s result: %w", method, err)
	}
	return out, nil
}

// TxOpts carries the optional knobs on Send.
type TxOpts struct {
	// Value is the native currency attached to the call, nil for zero.
	Value *big.Int
	// GasLimit overrides gas estimation when non-zero.
	GasLimit uint64
}

// Send packs, signs, submits and waits for a transaction. Gas is estimated
// first, so a reverting call aborts before anything is spent. Submitted
// transactions that fail on-chain are surfaced as-is; there is no retry.
func (c *Client) Send(ctx context.Context, to common.Address, contractABI abi.ABI, method string, opts TxOpts, args ...interface{}) (*ethtypes.Receipt, error) {
	if c.key == nil {
		return nil, fmt.Errorf("no signing key loaded, set PRIVATE_KEY")
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	value := opts.Value
	if value == nil {
		value = big.NewInt(0)
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch gas price: %w", err)
	}

	gasLimit := opts.GasLimit
	if gasLimit == 0 {
		gasLimit, err = c.eth.EstimateGas(ctx, ethereum.CallMsg{
			From: c.from, To: &to, Data: data, Value: value,
		})
		if err != nil {
			return nil, fmt.Errorf("%s would revert: %w", method, err)
		}
	}

	tx := ethtypes.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("submit %s: %w", method, err)
	}
	return c.waitMined(ctx, signed)
}

// waitMined blocks until the transaction is included. No timeout beyond the
// caller's context; a transaction that never confirms blocks indefinitely.
func (c *Client) waitMined(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for tx %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("tx %s reverted on-chain", tx.Hash().Hex())
	}
	return receipt, nil
}
