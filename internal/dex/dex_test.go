package dex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

func TestMinAmountOut(t *testing.T) {
	tests := []struct {
		name        string
		amountIn    string
		slippageBps int64
		want        string
	}{
		{"one percent", "1000000000000000000", 100, "990000000000000000"},
		{"zero slippage", "1000000000000000000", 0, "1000000000000000000"},
		{"half percent odd amount", "1000000000000000001", 50, "995000000000000000"},
		{"full slippage", "12345", 10000, "0"},
		{"small amount rounds down", "99", 100, "98"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ok := new(big.Int).SetString(tt.amountIn, 10)
			require.True(t, ok)
			got := MinAmountOut(in, tt.slippageBps)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewSelectsFamily(t *testing.T) {
	cli := &ethcli.Client{}

	gnosis, err := chains.Get("gnosis")
	require.NoError(t, err)
	adapter, err := New(cli, gnosis)
	require.NoError(t, err)
	assert.IsType(t, &algebraAdapter{}, adapter)
	assert.Equal(t, gnosis.Dex.PositionManager, adapter.Manager().Address())

	mainnet, err := chains.Get("mainnet")
	require.NoError(t, err)
	adapter, err = New(cli, mainnet)
	require.NoError(t, err)
	assert.IsType(t, &uniswapV3Adapter{}, adapter)
	assert.Equal(t, mainnet.Dex.PositionManager, adapter.Manager().Address())
}

func TestNewRejectsUnknownFamily(t *testing.T) {
	cfg, err := chains.Get("gnosis")
	require.NoError(t, err)
	cfg.Dex.Family = "sushi"

	_, err = New(&ethcli.Client{}, cfg)
	assert.Error(t, err)
}

func TestDeadlineInFuture(t *testing.T) {
	d := deadline()
	assert.Positive(t, d.Int64())
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, int64(0), orZero(nil).Int64())
	assert.Equal(t, int64(7), orZero(big.NewInt(7)).Int64())
}
