// Package seerapi wraps the public Seer HTTP API: market search and the
// account portfolio endpoint. No key is needed, both are open reads.
package seerapi

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://app.seer.pm/.netlify/functions"

// Sort fields accepted by the search endpoint.
const (
	SortLiquidity = "liquidityUSD"
	SortDate      = "creationDate"
	SortOpening   = "openingTs"
)

type Client struct {
	client *resty.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == 429 {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
				}
				return 10 * time.Second, nil
			}
			return 0, nil
		})

	return &Client{client: client}
}

// SearchRequest is the markets-search POST body. Zero-value fields are
// omitted so the server applies its defaults.
type SearchRequest struct {
	MarketName             string   `json:"marketName,omitempty"`
	ChainsList             []string `json:"chainsList,omitempty"`
	MarketStatusList       []string `json:"marketStatusList,omitempty"`
	CategoryList           []string `json:"categoryList,omitempty"`
	Creator                string   `json:"creator,omitempty"`
	VerificationStatusList []string `json:"verificationStatusList,omitempty"`
	ShowMarketsWithRewards bool     `json:"showMarketsWithRewards,omitempty"`
	OrderBy                string   `json:"orderBy,omitempty"`
	OrderDirection         string   `json:"orderDirection,omitempty"`
	Limit                  int      `json:"limit,omitempty"`
	Page                   int      `json:"page,omitempty"`
	MarketIDs              []string `json:"marketIds,omitempty"`
}

type Verification struct {
	Status string `json:"status"`
}

// Market is one search result. Odds line up with Outcomes by index.
type Market struct {
	ID             string       `json:"id"`
	MarketName     string       `json:"marketName"`
	ChainID        int64        `json:"chainId"`
	Outcomes       []string     `json:"outcomes"`
	WrappedTokens  []string     `json:"wrappedTokens"`
	Odds           []float64    `json:"odds"`
	LiquidityUSD   float64      `json:"liquidityUSD"`
	OpeningTs      int64        `json:"openingTs"`
	PayoutReported bool         `json:"payoutReported"`
	Incentive      float64      `json:"incentive"`
	Verification   Verification `json:"verification"`
}

type SearchResponse struct {
	Markets []Market `json:"markets"`
	Count   int      `json:"count"`
	Pages   int      `json:"pages"`
}

// SearchMarkets queries the markets-search endpoint.
func (c *Client) SearchMarkets(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/markets-search")
	if err != nil {
		return nil, errors.Wrap(err, "markets-search request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("markets-search returned %s: %s", resp.Status(), resp.String())
	}
	return &out, nil
}

// MarketByID looks up a single market by address.
func (c *Client) MarketByID(ctx context.Context, id string) (*Market, error) {
	res, err := c.SearchMarkets(ctx, SearchRequest{
		MarketIDs: []string{strings.ToLower(id)},
		Limit:     1,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Markets) == 0 {
		return nil, errors.Errorf("market %s not found", id)
	}
	return &res.Markets[0], nil
}

// LookupOutcome resolves a market's name and the outcome label of a
// wrapped token. Used to enrich the local LP tracker; callers treat
// failures as non-fatal.
func (c *Client) LookupOutcome(ctx context.Context, marketID string, outcomeToken string) (marketName, outcomeName string, err error) {
	m, err := c.MarketByID(ctx, marketID)
	if err != nil {
		return "", "", err
	}
	for i, token := range m.WrappedTokens {
		if strings.EqualFold(token, outcomeToken) && i < len(m.Outcomes) {
			return m.MarketName, m.Outcomes[i], nil
		}
	}
	return m.MarketName, "", nil
}

// Position is one outcome-token holding from get-portfolio.
type Position struct {
	MarketID         string  `json:"marketId"`
	MarketName       string  `json:"marketName"`
	Outcome          string  `json:"outcome"`
	TokenBalance     float64 `json:"tokenBalance"`
	TokenID          string  `json:"tokenId"`
	MarketStatus     string  `json:"marketStatus"`
	RedeemedPrice    float64 `json:"redeemedPrice"`
	IsInvalidOutcome bool    `json:"isInvalidOutcome"`

	// Chain is filled client-side when aggregating across chains.
	Chain string `json:"-"`
}

// Airdrop is an account's SEER airdrop allocation. Fields the server has
// no data for come back null, hence the pointers.
type Airdrop struct {
	TotalAllocation               *float64 `json:"totalAllocation"`
	CurrentWeekAllocation         *float64 `json:"currentWeekAllocation"`
	MonthlyEstimate               *float64 `json:"monthlyEstimate"`
	OutcomeTokenHoldingAllocation *float64 `json:"outcomeTokenHoldingAllocation"`
	PohUserAllocation             *float64 `json:"pohUserAllocation"`
	MonthlyEstimatePoH            *float64 `json:"monthlyEstimatePoH"`
	SerLppMainnet                 *float64 `json:"serLppMainnet"`
	SerLppGnosis                  *float64 `json:"serLppGnosis"`
}

// AirdropData fetches the airdrop allocation of one address.
func (c *Client) AirdropData(ctx context.Context, address string) (*Airdrop, error) {
	var out Airdrop
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"address": address}).
		SetResult(&out).
		Post("/get-airdrop-data-by-user")
	if err != nil {
		return nil, errors.Wrap(err, "get-airdrop-data request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("get-airdrop-data returned %s: %s", resp.Status(), resp.String())
	}
	return &out, nil
}

// Portfolio fetches all outcome-token positions of account on one chain.
func (c *Client) Portfolio(ctx context.Context, account string, chainID int64) ([]Position, error) {
	var out []Position
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("account", account).
		SetQueryParam("chainId", strconv.FormatInt(chainID, 10)).
		SetResult(&out).
		Get("/get-portfolio")
	if err != nil {
		return nil, errors.Wrap(err, "get-portfolio request")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("get-portfolio returned %s: %s", resp.Status(), resp.String())
	}
	return out, nil
}
