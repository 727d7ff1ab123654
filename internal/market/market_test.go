package market

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerFromIndex(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"zero", "0", "0x0000000000000000000000000000000000000000000000000000000000000000", false},
		{"two", "2", "0x0000000000000000000000000000000000000000000000000000000000000002", false},
		{"invalid sentinel", "INVALID", AnswerInvalid.Hex(), false},
		{"too soon sentinel", "ANSWERED_TOO_SOON", AnswerAnsweredTooSoon.Hex(), false},
		{"lowercase keyword", "invalid", AnswerInvalid.Hex(), false},
		{"garbage", "yes", "", true},
		{"negative", "-1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnswerFromIndex(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Hex())
		})
	}
}

func TestAnswerFromValue(t *testing.T) {
	got := AnswerFromValue(5000)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000001388", got.Hex())
}

func TestSentinelsDiffer(t *testing.T) {
	assert.NotEqual(t, AnswerInvalid, AnswerAnsweredTooSoon)
}

func TestKindFactoryMethod(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindCategorical: "createCategoricalMarket",
		KindScalar:      "createScalarMarket",
		KindMultiScalar: "createMultiScalarMarket",
	} {
		method, err := kind.factoryMethod()
		require.NoError(t, err)
		assert.Equal(t, want, method)
	}

	_, err := Kind("binary").factoryMethod()
	assert.Error(t, err)
}

func TestOutcomeToken(t *testing.T) {
	info := &Info{WrappedTokens: []common.Address{
		common.HexToAddress("0x0000000000000000000000000000000000000001"),
		common.HexToAddress("0x0000000000000000000000000000000000000002"),
	}}

	token, err := info.OutcomeToken(1)
	require.NoError(t, err)
	assert.Equal(t, info.WrappedTokens[1], token)

	_, err = info.OutcomeToken(2)
	assert.Error(t, err)
	_, err = info.OutcomeToken(-1)
	assert.Error(t, err)
}

func TestFactoryABIHasNewMarketEvent(t *testing.T) {
	event, ok := factoryABI.Events["NewMarket"]
	require.True(t, ok)
	assert.Len(t, event.Inputs, 6)
}
