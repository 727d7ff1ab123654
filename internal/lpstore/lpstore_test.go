package lpstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "sub", "lp-positions.json"))
}

func samplePosition(tokenID, chain string) Position {
	return Position{
		TokenID:     tokenID,
		Chain:       chain,
		DexType:     "algebra",
		PoolAddress: "0x59e9a6a4a2fab866ac2b3abbaca14ba2e018f6b1",
		Token0:      "0x1111111111111111111111111111111111111111",
		Token1:      "0x2222222222222222222222222222222222222222",
		ProbLow:     0.30,
		ProbHigh:    0.70,
		Market:      "0x3333333333333333333333333333333333333333",
		MarketName:  "Will it happen?",
		OutcomeName: "Yes",
		CreatedAt:   "2026-08-01T10:00:00Z",
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	positions, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestAppendAndLoad(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(samplePosition("101", "gnosis")))
	require.NoError(t, store.Append(samplePosition("102", "base")))

	positions, err := store.Load()
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "101", positions[0].TokenID)
	assert.Equal(t, "base", positions[1].Chain)
	assert.True(t, positions[0].Active())
}

func TestMarkWithdrawn(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(samplePosition("101", "gnosis")))

	found, err := store.MarkWithdrawn("101", "gnosis")
	require.NoError(t, err)
	assert.True(t, found)

	positions, err := store.Load()
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.False(t, positions[0].Active())
	require.NotNil(t, positions[0].WithdrawnAt)
	first := *positions[0].WithdrawnAt

	// A second call finds nothing and keeps the original timestamp.
	found, err = store.MarkWithdrawn("101", "gnosis")
	require.NoError(t, err)
	assert.False(t, found)

	positions, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, first, *positions[0].WithdrawnAt)
}

func TestMarkWithdrawnMatchesChain(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(samplePosition("101", "gnosis")))
	require.NoError(t, store.Append(samplePosition("101", "base")))

	found, err := store.MarkWithdrawn("101", "base")
	require.NoError(t, err)
	assert.True(t, found)

	positions, err := store.Load()
	require.NoError(t, err)
	assert.True(t, positions[0].Active())
	assert.False(t, positions[1].Active())
}

func TestMarkWithdrawnUnknownToken(t *testing.T) {
	store := newTestStore(t)
	found, err := store.MarkWithdrawn("999", "gnosis")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.Load()
	assert.Error(t, err)
}
