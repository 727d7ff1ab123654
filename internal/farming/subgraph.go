package farming

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// DefaultSubgraphURL is Seer's proxy in front of the Algebra farming
// subgraph. No API key is needed.
const DefaultSubgraphURL = "https://app.seer.pm/subgraph?_subgraph=algebrafarming&_chainId=100"

// EternalFarming is one incentive program on a pool. Numeric fields
// arrive as decimal strings from the subgraph.
type EternalFarming struct {
	ID               string `json:"id"`
	Pool             string `json:"pool"`
	RewardToken      string `json:"rewardToken"`
	BonusRewardToken string `json:"bonusRewardToken"`
	Reward           string `json:"reward"`
	RewardRate       string `json:"rewardRate"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
}

// RewardPerDay converts the per-second reward rate to whole tokens per
// day, assuming an 18-decimal reward token.
func (f *EternalFarming) RewardPerDay() float64 {
	rate, ok := new(big.Int).SetString(f.RewardRate, 10)
	if !ok {
		return 0
	}
	perDay := new(big.Int).Mul(rate, big.NewInt(86400))
	out, _ := new(big.Float).Quo(new(big.Float).SetInt(perDay), big.NewFloat(1e18)).Float64()
	return out
}

// Active reports whether the incentive still pays out at the given time.
// The effective end is capped by reward exhaustion: startTime plus
// reward/rewardRate seconds.
func (f *EternalFarming) Active(now int64) bool {
	rate, ok := new(big.Int).SetString(f.RewardRate, 10)
	if !ok || rate.Sign() == 0 {
		return false
	}
	reward, ok := new(big.Int).SetString(f.Reward, 10)
	if !ok {
		return false
	}
	start, ok := new(big.Int).SetString(f.StartTime, 10)
	if !ok {
		return false
	}
	end, ok := new(big.Int).SetString(f.EndTime, 10)
	if !ok {
		return false
	}

	realEnd := new(big.Int).Add(start, new(big.Int).Quo(reward, rate))
	if end.Cmp(realEnd) > 0 {
		end = realEnd
	}
	return end.Cmp(big.NewInt(now)) > 0
}

// Deposit is the subgraph's view of an NFT held by the farming center.
type Deposit struct {
	ID              string `json:"id"`
	Owner           string `json:"owner"`
	Pool            string `json:"pool"`
	LimitFarming    string `json:"limitFarming"`
	EternalFarming  string `json:"eternalFarming"`
	OnFarmingCenter bool   `json:"onFarmingCenter"`
}

// Subgraph queries the farming subgraph over GraphQL.
type Subgraph struct {
	client *resty.Client
	url    string
}

func NewSubgraph(url string) *Subgraph {
	if url == "" {
		url = DefaultSubgraphURL
	}
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)
	return &Subgraph{client: client, url: url}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

func (s *Subgraph) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	var envelope struct {
		Data   interface{}    `json:"data"`
		Errors []graphQLError `json:"errors"`
	}
	envelope.Data = out

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		SetResult(&envelope).
		Post(s.url)
	if err != nil {
		return errors.Wrap(err, "farming subgraph request")
	}
	if !resp.IsSuccess() {
		return errors.Errorf("farming subgraph returned %s", resp.Status())
	}
	if len(envelope.Errors) > 0 {
		return errors.Errorf("farming subgraph query error: %s", envelope.Errors[0].Message)
	}
	return nil
}

const eternalFarmingsQuery = `
query ($pool: String!) {
  eternalFarmings(where: { pool: $pool }, first: 100) {
    id pool rewardToken bonusRewardToken reward rewardRate startTime endTime
  }
}`

const allFarmingsQuery = `
query ($pool: String!) {
  eternalFarmings(where: { pool: $pool }, first: 10, orderBy: startTime, orderDirection: desc) {
    id pool rewardToken bonusRewardToken reward rewardRate startTime endTime
  }
}`

const depositQuery = `
query ($id: ID!) {
  deposit(id: $id) {
    id owner pool limitFarming eternalFarming onFarmingCenter
  }
}`

// ActiveIncentives returns the incentives on a pool that still pay out.
func (s *Subgraph) ActiveIncentives(ctx context.Context, pool string) ([]EternalFarming, error) {
	var data struct {
		EternalFarmings []EternalFarming `json:"eternalFarmings"`
	}
	vars := map[string]interface{}{"pool": strings.ToLower(pool)}
	if err := s.query(ctx, eternalFarmingsQuery, vars, &data); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	active := make([]EternalFarming, 0, len(data.EternalFarmings))
	for _, f := range data.EternalFarmings {
		if f.Active(now) {
			active = append(active, f)
		}
	}
	return active, nil
}

// LatestIncentive returns the most recent incentive on a pool, active or
// ended. Exit needs the key even after rewards dried up.
func (s *Subgraph) LatestIncentive(ctx context.Context, pool string) (*EternalFarming, error) {
	var data struct {
		EternalFarmings []EternalFarming `json:"eternalFarmings"`
	}
	vars := map[string]interface{}{"pool": strings.ToLower(pool)}
	if err := s.query(ctx, allFarmingsQuery, vars, &data); err != nil {
		return nil, err
	}
	if len(data.EternalFarmings) == 0 {
		return nil, errors.Errorf("no farming incentives found for pool %s", pool)
	}
	return &data.EternalFarmings[0], nil
}

// DepositInfo looks up an NFT deposit. Returns nil when the subgraph has
// never seen this token.
func (s *Subgraph) DepositInfo(ctx context.Context, tokenID string) (*Deposit, error) {
	var data struct {
		Deposit *Deposit `json:"deposit"`
	}
	vars := map[string]interface{}{"id": tokenID}
	if err := s.query(ctx, depositQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.Deposit, nil
}
