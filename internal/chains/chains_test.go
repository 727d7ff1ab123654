package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownChains(t *testing.T) {
	for _, name := range Names() {
		cfg, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, cfg.Name)
		assert.NotZero(t, cfg.ChainID)
		assert.NotEmpty(t, cfg.RPCURL)
		assert.NotZero(t, cfg.Dex.TickSpacing)
		assert.NotEmpty(t, cfg.Collateral.Symbol)
	}
}

func TestGetUnknownChain(t *testing.T) {
	_, err := Get("polygon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chain")
	assert.Contains(t, err.Error(), "gnosis")
}

func TestFamilyParameters(t *testing.T) {
	gnosis, err := Get("gnosis")
	require.NoError(t, err)
	assert.Equal(t, FamilyAlgebra, gnosis.Dex.Family)
	assert.Zero(t, gnosis.Dex.FeeTier, "algebra pools carry no fee tier")
	require.NotNil(t, gnosis.Farming)

	base, err := Get("base")
	require.NoError(t, err)
	assert.Equal(t, FamilyUniswapV3, base.Dex.Family)
	assert.NotZero(t, base.Dex.FeeTier)
	assert.Nil(t, base.Farming, "farming is gnosis-only")
}

func TestResolveEnvFallback(t *testing.T) {
	t.Setenv("CHAIN", "base")
	t.Setenv("RPC_URL", "")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.Name)

	// Flag wins over env.
	cfg, err = Resolve("gnosis")
	require.NoError(t, err)
	assert.Equal(t, "gnosis", cfg.Name)
}

func TestResolveRPCOverride(t *testing.T) {
	t.Setenv("CHAIN", "")
	t.Setenv("RPC_URL", "http://localhost:8545")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultChain, cfg.Name)
	assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
}

func TestByChainID(t *testing.T) {
	cfg, ok := ByChainID(100)
	require.True(t, ok)
	assert.Equal(t, "gnosis", cfg.Name)

	_, ok = ByChainID(137)
	assert.False(t, ok)
}
