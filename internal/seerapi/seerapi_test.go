package seerapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMarkets(t *testing.T) {
	var gotBody SearchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/markets-search", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			Count: 1,
			Pages: 1,
			Markets: []Market{{
				ID:           "0xabc",
				MarketName:   "Will it rain?",
				ChainID:      100,
				Outcomes:     []string{"Yes", "No", "Invalid"},
				Odds:         []float64{62.5, 37.5},
				LiquidityUSD: 1234.5,
			}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	res, err := client.SearchMarkets(context.Background(), SearchRequest{
		MarketName:     "rain",
		ChainsList:     []string{"100"},
		OrderBy:        SortLiquidity,
		OrderDirection: "desc",
		Limit:          10,
		Page:           1,
	})
	require.NoError(t, err)

	assert.Equal(t, "rain", gotBody.MarketName)
	assert.Equal(t, []string{"100"}, gotBody.ChainsList)
	assert.Equal(t, SortLiquidity, gotBody.OrderBy)

	require.Len(t, res.Markets, 1)
	assert.Equal(t, "Will it rain?", res.Markets[0].MarketName)
	assert.Equal(t, int64(100), res.Markets[0].ChainID)
}

func TestSearchMarketsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SearchMarkets(context.Background(), SearchRequest{})
	assert.Error(t, err)
}

func TestMarketByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []string{"0xabcdef"}, body.MarketIDs)
		require.Equal(t, 1, body.Limit)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			Count:   1,
			Markets: []Market{{ID: "0xabcdef", MarketName: "Lookup"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	m, err := client.MarketByID(context.Background(), "0xABCDEF")
	require.NoError(t, err)
	assert.Equal(t, "Lookup", m.MarketName)
}

func TestMarketByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.MarketByID(context.Background(), "0x0")
	assert.Error(t, err)
}

func TestAirdropData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get-airdrop-data-by-user", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "0xwallet", body["address"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"totalAllocation":       1234.56,
			"currentWeekAllocation": 12.5,
			"serLppGnosis":          nil,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	data, err := client.AirdropData(context.Background(), "0xwallet")
	require.NoError(t, err)

	require.NotNil(t, data.TotalAllocation)
	assert.Equal(t, 1234.56, *data.TotalAllocation)
	require.NotNil(t, data.CurrentWeekAllocation)
	assert.Equal(t, 12.5, *data.CurrentWeekAllocation)
	assert.Nil(t, data.SerLppGnosis)
	assert.Nil(t, data.MonthlyEstimate)
}

func TestPortfolio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get-portfolio", r.URL.Path)
		require.Equal(t, "0xwallet", r.URL.Query().Get("account"))
		require.Equal(t, "8453", r.URL.Query().Get("chainId"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Position{
			{MarketID: "0x1", Outcome: "Yes", TokenBalance: 12.5, MarketStatus: "open"},
			{MarketID: "0x1", Outcome: "Invalid", IsInvalidOutcome: true},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	positions, err := client.Portfolio(context.Background(), "0xwallet", 8453)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "Yes", positions[0].Outcome)
	assert.True(t, positions[1].IsInvalidOutcome)
}
