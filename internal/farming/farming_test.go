package farming

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seerkit/seerctl/internal/chains"
	"github.com/seerkit/seerctl/internal/ethcli"
)

func TestIncentiveActive(t *testing.T) {
	now := int64(1_700_000_000)
	tests := []struct {
		name    string
		farming EternalFarming
		want    bool
	}{
		{
			"running",
			EternalFarming{Reward: "864000000000000000000000", RewardRate: "1000000000000000000",
				StartTime: "1699990000", EndTime: "1800000000"},
			true,
		},
		{
			"zero rate",
			EternalFarming{Reward: "1000", RewardRate: "0", StartTime: "1699990000", EndTime: "1800000000"},
			false,
		},
		{
			"reward exhausted before stated end",
			EternalFarming{Reward: "1000", RewardRate: "1000", StartTime: "1699990000", EndTime: "1800000000"},
			false,
		},
		{
			"stated end passed",
			EternalFarming{Reward: "864000000000000000000000", RewardRate: "1000000000000000000",
				StartTime: "1600000000", EndTime: "1600001000"},
			false,
		},
		{
			"unparseable rate",
			EternalFarming{Reward: "1000", RewardRate: "abc", StartTime: "1699990000", EndTime: "1800000000"},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.farming.Active(now))
		})
	}
}

func TestRewardPerDay(t *testing.T) {
	f := EternalFarming{RewardRate: "1000000000000000000"} // 1 token/sec
	assert.InDelta(t, 86400.0, f.RewardPerDay(), 1e-6)

	bad := EternalFarming{RewardRate: "nope"}
	assert.Zero(t, bad.RewardPerDay())
}

func TestKeyFor(t *testing.T) {
	key, err := KeyFor(&EternalFarming{
		RewardToken:      "0xaf204776c7245bf4147c2612bf6e5972ee483701",
		BonusRewardToken: "0x0000000000000000000000000000000000000000",
		Pool:             "0x59e9a6a4a2fab866ac2b3abbaca14ba2e018f6b1",
		StartTime:        "1700000000",
		EndTime:          "1800000000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), key.StartTime.Int64())
	assert.Equal(t, int64(1800000000), key.EndTime.Int64())

	_, err = KeyFor(&EternalFarming{StartTime: "x", EndTime: "1"})
	assert.Error(t, err)
}

func TestNewClientRequiresFarmingChain(t *testing.T) {
	base, err := chains.Get("base")
	require.NoError(t, err)
	_, err = NewClient(&ethcli.Client{}, base)
	assert.Error(t, err)

	gnosis, err := chains.Get("gnosis")
	require.NoError(t, err)
	client, err := NewClient(&ethcli.Client{}, gnosis)
	require.NoError(t, err)
	assert.Equal(t, gnosis.Farming.Center, client.Center())
}

func TestActiveIncentivesFiltersViaSubgraph(t *testing.T) {
	active := EternalFarming{
		ID: "0x1", Pool: "0xpool",
		RewardToken: "0xaf204776c7245bf4147c2612bf6e5972ee483701",
		Reward:      "864000000000000000000000", RewardRate: "1000000000000000000",
		StartTime: "1700000000",
		EndTime:   "99999999999",
	}
	ended := active
	ended.ID = "0x2"
	ended.RewardRate = "0"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0xpool", req.Variables["pool"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"eternalFarmings": []EternalFarming{active, ended},
			},
		})
	}))
	defer server.Close()

	// Make sure the running incentive really is active at wall time.
	require.True(t, active.Active(time.Now().Unix()))

	sub := NewSubgraph(server.URL)
	got, err := sub.ActiveIncentives(context.Background(), "0xPOOL")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0x1", got[0].ID)
}

func TestDepositInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"deposit": Deposit{ID: "123", Pool: "0xpool", OnFarmingCenter: true, EternalFarming: "0x1"},
			},
		})
	}))
	defer server.Close()

	sub := NewSubgraph(server.URL)
	dep, err := sub.DepositInfo(context.Background(), "123")
	require.NoError(t, err)
	require.NotNil(t, dep)
	assert.True(t, dep.OnFarmingCenter)
}

func TestSubgraphQueryError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []graphQLError{{Message: "bad query"}},
		})
	}))
	defer server.Close()

	sub := NewSubgraph(server.URL)
	_, err := sub.ActiveIncentives(context.Background(), "0xpool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad query")
}
