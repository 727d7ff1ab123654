package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWeiAndBack(t *testing.T) {
	wei := ToWei(1.5, 18)
	want, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, 0, wei.Cmp(want))
	assert.Equal(t, 1.5, FromWei(wei, 18))
}

func TestParseWei(t *testing.T) {
	wei, err := ParseWei("0.25", 18)
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("250000000000000000", 10)
	assert.Equal(t, 0, wei.Cmp(want))

	_, err = ParseWei("abc", 18)
	require.Error(t, err)

	_, err = ParseWei("-1", 18)
	require.Error(t, err)
}

func TestFormatWei(t *testing.T) {
	wei, _ := new(big.Int).SetString("1030000000000000000", 10)
	assert.Equal(t, "1.03", FormatWei(wei, 18))
	assert.Equal(t, "0", FormatWei(nil, 18))
}
