package market

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const marketViewABIJSON = `[
  {"name":"getMarket","type":"function","stateMutability":"view",
   "inputs":[{"name":"marketFactory","type":"address"},{"name":"market","type":"address"}],
   "outputs":[{"type":"tuple","components":[
     {"name":"id","type":"address"},{"name":"marketName","type":"string"},
     {"name":"outcomes","type":"string[]"},
     {"name":"parentMarket","type":"tuple","components":[
       {"name":"id","type":"address"},{"name":"marketName","type":"string"},
       {"name":"outcomes","type":"string[]"},{"name":"wrappedTokens","type":"address[]"},
       {"name":"conditionId","type":"bytes32"},{"name":"payoutReported","type":"bool"},
       {"name":"payoutNumerators","type":"uint256[]"}]},
     {"name":"parentOutcome","type":"uint256"},
     {"name":"collateralToken","type":"address"},
     {"name":"wrappedTokens","type":"address[]"},
     {"name":"outcomesSupply","type":"uint256"},
     {"name":"lowerBound","type":"uint256"},{"name":"upperBound","type":"uint256"},
     {"name":"parentCollectionId","type":"bytes32"},
     {"name":"collateralToken1","type":"address"},{"name":"collateralToken2","type":"address"},
     {"name":"conditionId","type":"bytes32"},{"name":"questionId","type":"bytes32"},
     {"name":"templateId","type":"uint256"},
     {"name":"questions","type":"tuple[]","components":[
       {"name":"content_hash","type":"bytes32"},{"name":"arbitrator","type":"address"},
       {"name":"opening_ts","type":"uint32"},{"name":"timeout","type":"uint32"},
       {"name":"finalize_ts","type":"uint32"},{"name":"is_pending_arbitration","type":"bool"},
       {"name":"bounty","type":"uint256"},{"name":"best_answer","type":"bytes32"},
       {"name":"history_hash","type":"bytes32"},{"name":"bond","type":"uint256"},
       {"name":"min_bond","type":"uint256"}]},
     {"name":"questionsIds","type":"bytes32[]"},{"name":"encodedQuestions","type":"string[]"},
     {"name":"payoutReported","type":"bool"},{"name":"payoutNumerators","type":"uint256[]"}]}]}
]`

const routerABIJSON = `[
  {"name":"splitPosition","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"collateralToken","type":"address"},{"name":"market","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
  {"name":"mergePositions","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"collateralToken","type":"address"},{"name":"market","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
  {"name":"redeemPositions","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"collateralToken","type":"address"},{"name":"market","type":"address"},{"name":"outcomeIndexes","type":"uint256[]"},{"name":"amounts","type":"uint256[]"}],"outputs":[]}
]`

const factoryABIJSON = `[
  {"name":"createCategoricalMarket","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"marketName","type":"string"},{"name":"outcomes","type":"string[]"},
     {"name":"questionStart","type":"string"},{"name":"questionEnd","type":"string"},
     {"name":"outcomeType","type":"string"},{"name":"parentOutcome","type":"uint256"},
     {"name":"parentMarket","type":"address"},{"name":"category","type":"string"},
     {"name":"lang","type":"string"},{"name":"lowerBound","type":"uint256"},
     {"name":"upperBound","type":"uint256"},{"name":"minBond","type":"uint256"},
     {"name":"openingTime","type":"uint32"},{"name":"tokenNames","type":"string[]"}]}],
   "outputs":[{"type":"address"}]},
  {"name":"createScalarMarket","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"marketName","type":"string"},{"name":"outcomes","type":"string[]"},
     {"name":"questionStart","type":"string"},{"name":"questionEnd","type":"string"},
     {"name":"outcomeType","type":"string"},{"name":"parentOutcome","type":"uint256"},
     {"name":"parentMarket","type":"address"},{"name":"category","type":"string"},
     {"name":"lang","type":"string"},{"name":"lowerBound","type":"uint256"},
     {"name":"upperBound","type":"uint256"},{"name":"minBond","type":"uint256"},
     {"name":"openingTime","type":"uint32"},{"name":"tokenNames","type":"string[]"}]}],
   "outputs":[{"type":"address"}]},
  {"name":"createMultiScalarMarket","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"params","type":"tuple","components":[
     {"name":"marketName","type":"string"},{"name":"outcomes","type":"string[]"},
     {"name":"questionStart","type":"string"},{"name":"questionEnd","type":"string"},
     {"name":"outcomeType","type":"string"},{"name":"parentOutcome","type":"uint256"},
     {"name":"parentMarket","type":"address"},{"name":"category","type":"string"},
     {"name":"lang","type":"string"},{"name":"lowerBound","type":"uint256"},
     {"name":"upperBound","type":"uint256"},{"name":"minBond","type":"uint256"},
     {"name":"openingTime","type":"uint32"},{"name":"tokenNames","type":"string[]"}]}],
   "outputs":[{"type":"address"}]},
  {"name":"NewMarket","type":"event","inputs":[
    {"name":"market","type":"address","indexed":true},
    {"name":"marketName","type":"string","indexed":false},
    {"name":"parentMarket","type":"address","indexed":false},
    {"name":"conditionId","type":"bytes32","indexed":false},
    {"name":"questionId","type":"bytes32","indexed":false},
    {"name":"questionsIds","type":"bytes32[]","indexed":false}]}
]`

const realityProxyABIJSON = `[
  {"name":"resolve","type":"function","stateMutability":"nonpayable",
   "inputs":[{"name":"market","type":"address"}],"outputs":[]}
]`

const realityETHABIJSON = `[
  {"name":"submitAnswer","type":"function","stateMutability":"payable",
   "inputs":[{"name":"question_id","type":"bytes32"},{"name":"answer","type":"bytes32"},{"name":"max_previous","type":"uint256"}],"outputs":[]}
]`

var (
	marketViewABI   = mustParseABI(marketViewABIJSON)
	routerABI       = mustParseABI(routerABIJSON)
	factoryABI      = mustParseABI(factoryABIJSON)
	realityProxyABI = mustParseABI(realityProxyABIJSON)
	realityETHABI   = mustParseABI(realityETHABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return parsed
}
