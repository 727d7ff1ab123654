package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

func resolveChain() (chains.Config, error) {
	return chains.Resolve(chainFlag)
}

// dialRead opens an RPC connection without a signing key.
func dialRead(ctx context.Context, cfg chains.Config) (*ethcli.Client, error) {
	return ethcli.Dial(ctx, cfg.RPCURL, cfg.ChainID)
}

// dialSigner opens an RPC connection with the PRIVATE_KEY signer.
func dialSigner(ctx context.Context, cfg chains.Config) (*ethcli.Client, error) {
	return ethcli.DialWithEnvKey(ctx, cfg.RPCURL, cfg.ChainID)
}

func parseAddress(s, label string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("%s must be a hex address, got %q", label, s)
	}
	return common.HexToAddress(s), nil
}

func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(raw))
	return nil
}
