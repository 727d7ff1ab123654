package dex

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// The Algebra and Uniswap V3 position managers share everything except the
// fee tier: Algebra pools are identified by the pair alone, Uniswap V3
// pools by (pair, fee), and the fee threads through pool creation, the
// positions() tuple, minting and swaps.

const algebraManagerABIJSON = `[
  {"name":"createAndInitializePoolIfNecessary","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"token0","type":"address"},{"name":"token1","type":"address"},
             {"name":"sqrtPriceX96","type":"uint160"}],
   "outputs":[{"name":"pool","type":"address"}]},
  {"name":"mint","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"token0","type":"address"},{"name":"token1","type":"address"},
     {"name":"tickLower","type":"int24"},{"name":"tickUpper","type":"int24"},
     {"name":"amount0Desired","type":"uint256"},{"name":"amount1Desired","type":"uint256"},
     {"name":"amount0Min","type":"uint256"},{"name":"amount1Min","type":"uint256"},
     {"name":"recipient","type":"address"},{"name":"deadline","type":"uint256"}]}],
   "outputs":[{"name":"tokenId","type":"uint256"},{"name":"liquidity","type":"uint128"},
              {"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}]},
  {"name":"positions","type":"function","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"nonce","type":"uint96"},{"name":"operator","type":"address"},
     {"name":"token0","type":"address"},{"name":"token1","type":"address"},
     {"name":"tickLower","type":"int24"},{"name":"tickUpper","type":"int24"},
     {"name":"liquidity","type":"uint128"},
     {"name":"feeGrowthInside0LastX128","type":"uint256"},{"name":"feeGrowthInside1LastX128","type":"uint256"},
     {"name":"tokensOwed0","type":"uint128"},{"name":"tokensOwed1","type":"uint128"}]}
]`

const uniswapV3ManagerABIJSON = `[
  {"name":"createAndInitializePoolIfNecessary","type":"function","stateMutability":"payable",
   "inputs":[{"name":"token0","type":"address"},{"name":"token1","type":"address"},
             {"name":"fee","type":"uint24"},{"name":"sqrtPriceX96","type":"uint160"}],
   "outputs":[{"name":"pool","type":"address"}]},
  {"name":"mint","type":"function","stateMutability":"payable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"token0","type":"address"},{"name":"token1","type":"address"},
     {"name":"fee","type":"uint24"},
     {"name":"tickLower","type":"int24"},{"name":"tickUpper","type":"int24"},
     {"name":"amount0Desired","type":"uint256"},{"name":"amount1Desired","type":"uint256"},
     {"name":"amount0Min","type":"uint256"},{"name":"amount1Min","type":"uint256"},
     {"name":"recipient","type":"address"},{"name":"deadline","type":"uint256"}]}],
   "outputs":[{"name":"tokenId","type":"uint256"},{"name":"liquidity","type":"uint128"},
              {"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}]},
  {"name":"positions","type":"function","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"nonce","type":"uint96"},{"name":"operator","type":"address"},
     {"name":"token0","type":"address"},{"name":"token1","type":"address"},
     {"name":"fee","type":"uint24"},
     {"name":"tickLower","type":"int24"},{"name":"tickUpper","type":"int24"},
     {"name":"liquidity","type":"uint128"},
     {"name":"feeGrowthInside0LastX128","type":"uint256"},{"name":"feeGrowthInside1LastX128","type":"uint256"},
     {"name":"tokensOwed0","type":"uint128"},{"name":"tokensOwed1","type":"uint128"}]}
]`

// sharedManagerABIJSON covers the NFT operations whose shape is identical
// across both families.
const sharedManagerABIJSON = `[
  {"name":"balanceOf","type":"function","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],"outputs":[{"type":"uint256"}]},
  {"name":"tokenOfOwnerByIndex","type":"function","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],
   "outputs":[{"type":"uint256"}]},
  {"name":"decreaseLiquidity","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"tokenId","type":"uint256"},{"name":"liquidity","type":"uint128"},
     {"name":"amount0Min","type":"uint256"},{"name":"amount1Min","type":"uint256"},
     {"name":"deadline","type":"uint256"}]}],
   "outputs":[{"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}]},
  {"name":"collect","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"tokenId","type":"uint256"},{"name":"recipient","type":"address"},
     {"name":"amount0Max","type":"uint128"},{"name":"amount1Max","type":"uint128"}]}],
   "outputs":[{"name":"amount0","type":"uint256"},{"name":"amount1","type":"uint256"}]},
  {"name":"burn","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]},
  {"name":"safeTransferFrom","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},
             {"name":"tokenId","type":"uint256"}],"outputs":[]}
]`

const algebraFactoryABIJSON = `[
  {"name":"poolByPair","type":"function","stateMutability":"view",
   "inputs":[{"name":"tokenA","type":"address"},{"name":"tokenB","type":"address"}],
   "outputs":[{"name":"pool","type":"address"}]}
]`

const uniswapV3FactoryABIJSON = `[
  {"name":"getPool","type":"function","stateMutability":"view",
   "inputs":[{"name":"tokenA","type":"address"},{"name":"tokenB","type":"address"},
             {"name":"fee","type":"uint24"}],
   "outputs":[{"name":"pool","type":"address"}]}
]`

// Algebra exposes pool state as globalState(), Uniswap V3 as slot0(); both
// lead with (sqrtPriceX96, tick).
const algebraPoolABIJSON = `[
  {"name":"globalState","type":"function","stateMutability":"view","inputs":[],
   "outputs":[{"name":"price","type":"uint160"},{"name":"tick","type":"int24"},
     {"name":"fee","type":"uint16"},{"name":"timepointIndex","type":"uint16"},
     {"name":"communityFeeToken0","type":"uint8"},{"name":"communityFeeToken1","type":"uint8"},
     {"name":"unlocked","type":"bool"}]}
]`

const uniswapV3PoolABIJSON = `[
  {"name":"slot0","type":"function","stateMutability":"view","inputs":[],
   "outputs":[{"name":"sqrtPriceX96","type":"uint160"},{"name":"tick","type":"int24"},
     {"name":"observationIndex","type":"uint16"},{"name":"observationCardinality","type":"uint16"},
     {"name":"observationCardinalityNext","type":"uint16"},{"name":"feeProtocol","type":"uint8"},
     {"name":"unlocked","type":"bool"}]}
]`

const algebraRouterABIJSON = `[
  {"name":"exactInputSingle","type":"function","stateMutability":"payable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"tokenIn","type":"address"},{"name":"tokenOut","type":"address"},
     {"name":"recipient","type":"address"},{"name":"deadline","type":"uint256"},
     {"name":"amountIn","type":"uint256"},{"name":"amountOutMinimum","type":"uint256"},
     {"name":"sqrtPriceLimitX96","type":"uint160"}]}],
   "outputs":[{"name":"amountOut","type":"uint256"}]}
]`

const uniswapV3RouterABIJSON = `[
  {"name":"exactInputSingle","type":"function","stateMutability":"payable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"tokenIn","type":"address"},{"name":"tokenOut","type":"address"},
     {"name":"fee","type":"uint24"},{"name":"recipient","type":"address"},
     {"name":"deadline","type":"uint256"},{"name":"amountIn","type":"uint256"},
     {"name":"amountOutMinimum","type":"uint256"},{"name":"sqrtPriceLimitX96","type":"uint160"}]}],
   "outputs":[{"name":"amountOut","type":"uint256"}]}
]`

var (
	algebraManagerABI   = mustParseABI(algebraManagerABIJSON)
	uniswapV3ManagerABI = mustParseABI(uniswapV3ManagerABIJSON)
	sharedManagerABI    = mustParseABI(sharedManagerABIJSON)
	algebraFactoryABI   = mustParseABI(algebraFactoryABIJSON)
	uniswapV3FactoryABI = mustParseABI(uniswapV3FactoryABIJSON)
	algebraPoolABI      = mustParseABI(algebraPoolABIJSON)
	uniswapV3PoolABI    = mustParseABI(uniswapV3PoolABIJSON)
	algebraRouterABI    = mustParseABI(algebraRouterABIJSON)
	uniswapV3RouterABI  = mustParseABI(uniswapV3RouterABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}
