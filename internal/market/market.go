// Package market talks to the Seer market contracts: the factory that
// creates markets, the view helper that reads them, the router that
// splits, merges and redeems outcome tokens, and the Reality.eth
// resolution path.
package market

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

// Reality.eth answer sentinels.
var (
	AnswerInvalid         = common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	AnswerAnsweredTooSoon = common.HexToHash("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe")
)

// Question mirrors the Reality.eth question struct inside a market view.
type Question struct {
	ContentHash          [32]byte
	Arbitrator           common.Address
	OpeningTs            uint32
	Timeout              uint32
	FinalizeTs           uint32
	IsPendingArbitration bool
	Bounty               *big.Int
	BestAnswer           [32]byte
	HistoryHash          [32]byte
	Bond                 *big.Int
	MinBond              *big.Int
}

// ParentInfo is the embedded parent market of a conditional market. The
// zero address id means the market has no parent.
type ParentInfo struct {
	Id               common.Address
	MarketName       string
	Outcomes         []string
	WrappedTokens    []common.Address
	ConditionId      [32]byte
	PayoutReported   bool
	PayoutNumerators []*big.Int
}

// Info is the full on-chain state of a market as returned by MarketView.
type Info struct {
	Id                 common.Address
	MarketName         string
	Outcomes           []string
	ParentMarket       ParentInfo
	ParentOutcome      *big.Int
	CollateralToken    common.Address
	WrappedTokens      []common.Address
	OutcomesSupply     *big.Int
	LowerBound         *big.Int
	UpperBound         *big.Int
	ParentCollectionId [32]byte
	CollateralToken1   common.Address
	CollateralToken2   common.Address
	ConditionId        [32]byte
	QuestionId         [32]byte
	TemplateId         *big.Int
	Questions          []Question
	QuestionsIds       [][32]byte
	EncodedQuestions   []string
	PayoutReported     bool
	PayoutNumerators   []*big.Int
}

// OutcomeToken resolves an outcome token address by index.
func (m *Info) OutcomeToken(index int) (common.Address, error) {
	if index < 0 || index >= len(m.WrappedTokens) {
		return common.Address{}, errors.Errorf("outcome index %d out of range, market has %d outcomes", index, len(m.WrappedTokens))
	}
	return m.WrappedTokens[index], nil
}

// Client bundles the market contracts of one chain.
type Client struct {
	cli *ethcli.Client
	cfg chains.Config
}

func NewClient(cli *ethcli.Client, cfg chains.Config) *Client {
	return &Client{cli: cli, cfg: cfg}
}

// Get reads the full market state through the MarketView helper.
func (c *Client) Get(ctx context.Context, market common.Address) (*Info, error) {
	out, err := c.cli.Call(ctx, c.cfg.MarketView, marketViewABI, "getMarket", c.cfg.MarketFactory, market)
	if err != nil {
		return nil, errors.Wrapf(err, "read market %s", market.Hex())
	}
	info := abi.ConvertType(out[0], new(Info)).(*Info)
	return info, nil
}

// Split locks collateral in the router and mints one unit of every
// outcome token per unit of collateral.
func (c *Client) Split(ctx context.Context, market common.Address, amount *big.Int) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.cfg.Router, routerABI, "splitPosition", ethcli.TxOpts{},
		c.cfg.Collateral.Address, market, amount)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// Merge burns a complete set of outcome tokens and releases collateral.
func (c *Client) Merge(ctx context.Context, market common.Address, amount *big.Int) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.cfg.Router, routerABI, "mergePositions", ethcli.TxOpts{},
		c.cfg.Collateral.Address, market, amount)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// MaxMergeable returns the largest complete-set amount the holder can
// merge: the minimum balance across all outcome tokens.
func (c *Client) MaxMergeable(ctx context.Context, info *Info, holder common.Address) (*big.Int, []*big.Int, error) {
	if len(info.WrappedTokens) == 0 {
		return nil, nil, errors.New("market has no outcome tokens")
	}
	balances := make([]*big.Int, 0, len(info.WrappedTokens))
	var min *big.Int
	for _, token := range info.WrappedTokens {
		bal, err := c.cli.BalanceOf(ctx, token, holder)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "balance of outcome token %s", token.Hex())
		}
		balances = append(balances, bal)
		if min == nil || bal.Cmp(min) < 0 {
			min = bal
		}
	}
	return min, balances, nil
}

// Redeem converts winning outcome tokens back to collateral after the
// market reported payouts.
func (c *Client) Redeem(ctx context.Context, market common.Address, outcomeIndexes []*big.Int, amounts []*big.Int) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.cfg.Router, routerABI, "redeemPositions", ethcli.TxOpts{},
		c.cfg.Collateral.Address, market, outcomeIndexes, amounts)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// Resolve pushes the finalized Reality.eth answers into the conditional
// tokens framework via the reality proxy.
func (c *Client) Resolve(ctx context.Context, market common.Address) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.cfg.RealityProxy, realityProxyABI, "resolve", ethcli.TxOpts{}, market)
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// SubmitAnswer posts an answer to a Reality.eth question, bonding the
// given native amount behind it.
func (c *Client) SubmitAnswer(ctx context.Context, questionID common.Hash, answer common.Hash, bond *big.Int) (common.Hash, error) {
	receipt, err := c.cli.Send(ctx, c.cfg.RealityETH, realityETHABI, "submitAnswer",
		ethcli.TxOpts{Value: bond}, questionID, answer, big.NewInt(0))
	if err != nil {
		return common.Hash{}, err
	}
	return receipt.TxHash, nil
}

// AnswerFromIndex encodes a categorical answer. The keywords INVALID and
// ANSWERED_TOO_SOON map to their Reality.eth sentinel values.
func AnswerFromIndex(raw string) (common.Hash, error) {
	switch strings.ToUpper(raw) {
	case "INVALID":
		return AnswerInvalid, nil
	case "ANSWERED_TOO_SOON":
		return AnswerAnsweredTooSoon, nil
	}
	idx, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return common.Hash{}, errors.Errorf("invalid answer index %q", raw)
	}
	return common.BigToHash(new(big.Int).SetUint64(idx)), nil
}

// AnswerFromValue encodes a scalar answer as a left-padded uint256.
func AnswerFromValue(value uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(value))
}

// Kind selects which factory constructor a new market goes through.
type Kind string

const (
	KindCategorical Kind = "categorical"
	KindScalar      Kind = "scalar"
	KindMultiScalar Kind = "multi-scalar"
)

func (k Kind) factoryMethod() (string, error) {
	switch k {
	case KindCategorical:
		return "createCategoricalMarket", nil
	case KindScalar:
		return "createScalarMarket", nil
	case KindMultiScalar:
		return "createMultiScalarMarket", nil
	}
	return "", errors.Errorf("market type must be %s, %s or %s", KindCategorical, KindScalar, KindMultiScalar)
}

// CreateParams is the factory parameter tuple shared by all market types.
type CreateParams struct {
	MarketName    string
	Outcomes      []string
	QuestionStart string
	QuestionEnd   string
	OutcomeType   string
	ParentOutcome *big.Int
	ParentMarket  common.Address
	Category      string
	Lang          string
	LowerBound    *big.Int
	UpperBound    *big.Int
	MinBond       *big.Int
	OpeningTime   uint32
	TokenNames    []string
}

// Created describes a freshly deployed market, decoded from the factory's
// NewMarket event.
type Created struct {
	Market      common.Address
	ConditionID [32]byte
	QuestionIDs [][32]byte
	TxHash      common.Hash
	Block       uint64
}

// Create deploys a market through the factory and decodes the NewMarket
// event from the receipt.
func (c *Client) Create(ctx context.Context, kind Kind, params CreateParams) (*Created, error) {
	method, err := kind.factoryMethod()
	if err != nil {
		return nil, err
	}

	receipt, err := c.cli.Send(ctx, c.cfg.MarketFactory, factoryABI, method, ethcli.TxOpts{}, params)
	if err != nil {
		return nil, err
	}

	created := &Created{TxHash: receipt.TxHash, Block: receipt.BlockNumber.Uint64()}
	event := factoryABI.Events["NewMarket"]
	for _, log := range receipt.Logs {
		if len(log.Topics) < 2 || log.Topics[0] != event.ID {
			continue
		}
		created.Market = common.BytesToAddress(log.Topics[1].Bytes())

		var data struct {
			MarketName   string
			ParentMarket common.Address
			ConditionId  [32]byte
			QuestionId   [32]byte
			QuestionsIds [][32]byte
		}
		if err := factoryABI.UnpackIntoInterface(&data, "NewMarket", log.Data); err != nil {
			return nil, errors.Wrap(err, "decode NewMarket event")
		}
		created.ConditionID = data.ConditionId
		created.QuestionIDs = data.QuestionsIds
		return created, nil
	}
	return nil, fmt.Errorf("transaction %s emitted no NewMarket event", receipt.TxHash.Hex())
}
