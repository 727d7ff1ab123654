// Package chains holds the static per-chain configuration table: contract
// addresses, collateral descriptors and DEX parameters for every chain the
// CLI knows how to operate on. The table is immutable after process start;
// components receive a Config value and never reach back into package state.
package chains

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// DexFamily selects which concentrated-liquidity AMM implementation a chain
// runs. The two families expose the same operations but different parameter
// shapes; see internal/dex.
type DexFamily string

const (
	// FamilyAlgebra is the fee-less Algebra implementation (SwaprV3 on Gnosis).
	FamilyAlgebra DexFamily = "algebra"
	// FamilyUniswapV3 is the fee-tiered Uniswap V3 implementation.
	FamilyUniswapV3 DexFamily = "uniswapv3"
)

// DexConfig describes the concentrated-liquidity DEX deployed on a chain.
type DexConfig struct {
	Family          DexFamily
	Router          common.Address
	PositionManager common.Address
	Factory         common.Address
	// FeeTier is the fixed fee tier for FamilyUniswapV3 pools, zero for
	// FamilyAlgebra which has no fee parameter.
	FeeTier     uint32
	TickSpacing int
}

// CollateralConfig describes the yield-bearing collateral asset backing
// outcome tokens on a chain.
type CollateralConfig struct {
	Symbol   string
	Address  common.Address
	Decimals int
	// Adapter is the native-currency deposit/redeem adapter (xDAI<->sDAI on
	// Gnosis). Zero address when the vault is entered with an ERC-20 asset.
	Adapter common.Address
}

// FarmingConfig holds the Algebra eternal-farming contracts. Only Gnosis
// has one; nil elsewhere.
type FarmingConfig struct {
	Center         common.Address
	EternalFarming common.Address
}

// Config is one chain's entry in the registry.
type Config struct {
	Name         string
	ChainID      int64
	NativeSymbol string
	RPCURL       string

	MarketFactory     common.Address
	Router            common.Address
	RealityProxy      common.Address
	MarketView        common.Address
	ConditionalTokens common.Address
	RealityETH        common.Address

	Collateral CollateralConfig
	Dex        DexConfig
	Farming    *FarmingConfig
}

// DefaultChain is used when neither the --chain flag nor the CHAIN env var
// is set.
const DefaultChain = "gnosis"

var registry = map[string]Config{
	"gnosis": {
		Name:         "gnosis",
		ChainID:      100,
		NativeSymbol: "xDAI",
		RPCURL:       "https://rpc.gnosis.gateway.fm",

		MarketFactory:     common.HexToAddress("0x83183DA839Ce8228E31Ae41222EaD9EDBb5cDcf1"),
		Router:            common.HexToAddress("0xeC9048b59b3467415b1a38F63416407eA0c70fB8"),
		RealityProxy:      common.HexToAddress("0xc260ADfAC11f97c001dC143d2a4F45b98e0f2D6C"),
		MarketView:        common.HexToAddress("0x95493F3e3F151eD9ee9338a4Fc1f49c00890F59C"),
		ConditionalTokens: common.HexToAddress("0xCeAfDD6bc0bEF976fdCd1112955828E00543c0Ce"),
		RealityETH:        common.HexToAddress("0xE78996A233895bE74a66F451f1019cA9734205cc"),

		Collateral: CollateralConfig{
			Symbol:   "sDAI",
			Address:  common.HexToAddress("0xaf204776c7245bf4147c2612bf6e5972ee483701"),
			Decimals: 18,
			Adapter:  common.HexToAddress("0xD499b51fcFc66bd31248ef4b28d656d67E591A94"),
		},
		Dex: DexConfig{
			Family:          FamilyAlgebra,
			Router:          common.HexToAddress("0x2d3F3f0C9fAeF4A8e2d900a3AAe2E7c8f36A98B9"),
			PositionManager: common.HexToAddress("0x91fd594c46d8b01e62dbdebed2401dde01817834"),
			Factory:         common.HexToAddress("0xA0864cCA6E114013AB0e27cbd5B6f4c8947da766"),
			TickSpacing:     60,
		},
		Farming: &FarmingConfig{
			Center:         common.HexToAddress("0xde51ddf1ae7d5bbd7bf1a0e40aaa1f6c12579106"),
			EternalFarming: common.HexToAddress("0x607BbfD4CEbd869AaD04331F8a2AD0C3C396674b"),
		},
	},

	"mainnet": {
		Name:         "mainnet",
		ChainID:      1,
		NativeSymbol: "ETH",
		RPCURL:       "https://eth.llamarpc.com",

		MarketFactory:     common.HexToAddress("0x1F728c2fD6a3008935c1446a965a313E657b7904"),
		Router:            common.HexToAddress("0x886Ef0A78faBbAE942F1dA1791A8ed02a5aF8BC6"),
		RealityProxy:      common.HexToAddress("0xC72f738e331b6B7A5d77661277074BB60Ca0Ca9E"),
		MarketView:        common.HexToAddress("0xB2aB74afe47e6f9D8c392FA15b139Ac02684771a"),
		ConditionalTokens: common.HexToAddress("0xC59b0e4De5F1248C1140964E0fF287B192407E0C"),
		RealityETH:        common.HexToAddress("0x5b7dd1e86623548af054a4985f7fc8ccbb554e2c"),

		Collateral: CollateralConfig{
			Symbol:   "sDAI",
			Address:  common.HexToAddress("0x83F20F44975D03b1b09e64809B757c47f942BEeA"),
			Decimals: 18,
		},
		Dex: DexConfig{
			Family:          FamilyUniswapV3,
			Router:          common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564"),
			PositionManager: common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88"),
			Factory:         common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
			FeeTier:         3000,
			TickSpacing:     60,
		},
	},

	"optimism": {
		Name:         "optimism",
		ChainID:      10,
		NativeSymbol: "ETH",
		RPCURL:       "https://mainnet.optimism.io",

		MarketFactory:     common.HexToAddress("0x886Ef0A78faBbAE942F1dA1791A8ed02a5aF8BC6"),
		Router:            common.HexToAddress("0x179d8F8c811B8C759c33809dbc6c5ceDc62D05DD"),
		RealityProxy:      common.HexToAddress("0xfE8bF5140F00de6F75BAFa3Ca0f4ebf2084A46B2"),
		MarketView:        common.HexToAddress("0x44921b4c7510Fb306d8E58cF3894fA2bc8a79F00"),
		ConditionalTokens: common.HexToAddress("0x8bdC504dC3A05310059c1c67E0A2667309D27B93"),
		RealityETH:        common.HexToAddress("0x0eF940F7f053a2eF5D6578841072488aF0c7d89A"),

		Collateral: CollateralConfig{
			Symbol:   "sUSDS",
			Address:  common.HexToAddress("0xb5b2dc7fd34c249f4be7fb1fcea07950784229e0"),
			Decimals: 18,
		},
		Dex: DexConfig{
			Family:          FamilyUniswapV3,
			Router:          common.HexToAddress("0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45"),
			PositionManager: common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88"),
			Factory:         common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984"),
			FeeTier:         100,
			TickSpacing:     60,
		},
	},

	"base": {
		Name:         "base",
		ChainID:      8453,
		NativeSymbol: "ETH",
		RPCURL:       "https://mainnet.base.org",

		MarketFactory:     common.HexToAddress("0x886Ef0A78faBbAE942F1dA1791A8ed02a5aF8BC6"),
		Router:            common.HexToAddress("0x3124e97ebF4c9592A17d40E54623953Ff3c77a73"),
		RealityProxy:      common.HexToAddress("0xfE8bF5140F00de6F75BAFa3Ca0f4ebf2084A46B2"),
		MarketView:        common.HexToAddress("0x179d8F8c811B8C759c33809dbc6c5ceDc62D05DD"),
		ConditionalTokens: common.HexToAddress("0xAb797C4C6022A401c31543E316D3cd04c67a87fC"),
		RealityETH:        common.HexToAddress("0x2F39f464d16402Ca3D8527dA89617b73DE2F60e8"),

		Collateral: CollateralConfig{
			Symbol:   "sUSDS",
			Address:  common.HexToAddress("0x5875eee11cf8398102fdad704c9e96607675467a"),
			Decimals: 18,
		},
		Dex: DexConfig{
			Family:          FamilyUniswapV3,
			Router:          common.HexToAddress("0x2626664c2603336E57B271c5C0b26F421741e481"),
			PositionManager: common.HexToAddress("0x03a520b32C04BF3bEEf7BEb72E919cf822Ed34f1"),
			Factory:         common.HexToAddress("0x33128a8fC17869897dcE68Ed026d694621f6FDfD"),
			FeeTier:         3000,
			TickSpacing:     60,
		},
	},
}

// Names lists all registered chain names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the configuration for a chain name.
func Get(name string) (Config, error) {
	cfg, ok := registry[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown chain %q, supported: %s", name, strings.Join(Names(), ", "))
	}
	return cfg, nil
}

// Resolve picks the chain from the --chain flag value, falling back to the
// CHAIN env var and then DefaultChain, and applies RPC overrides: the
// RPC_URL env var first, then the optional ~/.seerctl.yaml override file.
func Resolve(flagValue string) (Config, error) {
	name := flagValue
	if name == "" {
		name = os.Getenv("CHAIN")
	}
	if name == "" {
		name = DefaultChain
	}
	cfg, err := Get(name)
	if err != nil {
		return Config{}, err
	}
	if url := os.Getenv("RPC_URL"); url != "" {
		cfg.RPCURL = url
		return cfg, nil
	}
	if url := fileOverride(name); url != "" {
		cfg.RPCURL = url
	}
	return cfg, nil
}

// overridesFile is the optional per-user settings file.
type overridesFile struct {
	RPC map[string]string `yaml:"rpc"`
}

func fileOverride(chain string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	raw, err := os.ReadFile(filepath.Join(home, ".seerctl.yaml"))
	if err != nil {
		return ""
	}
	var f overridesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return ""
	}
	return f.RPC[chain]
}

// ByChainID maps a numeric chain ID back to its registry entry, used when
// the market-data API returns chain IDs.
func ByChainID(id int64) (Config, bool) {
	for _, cfg := range registry {
		if cfg.ChainID == id {
			return cfg, true
		}
	}
	return Config{}, false
}
