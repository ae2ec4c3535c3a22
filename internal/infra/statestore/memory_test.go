//go:build unit

package statestore_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"
	"qomo-drops/internal/infra/statestore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStates() []drop.State {
	return []drop.State{
		{ProductID: "a", CurrentPrice: decimal.NewFromInt(100)},
		{ProductID: "b", CurrentPrice: decimal.NewFromInt(200)},
	}
}

func newStore(t *testing.T) *statestore.MemoryStore {
	t.Helper()
	return statestore.NewMemoryStore(slog.Default(), seedStates())
}

func TestMemoryStoreGet(t *testing.T) {
	store := newStore(t)

	state, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", state.ProductID)

	_, err = store.Get(context.Background(), "missing")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestMemoryStoreList(t *testing.T) {
	store := newStore(t)

	states, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "a", states[0].ProductID)
	assert.Equal(t, "b", states[1].ProductID)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := newStore(t)

	updated, err := store.Update(context.Background(), "a", func(s drop.State) (drop.State, error) {
		s.TotalViews++
		return s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalViews)

	state, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, state.TotalViews)
}

func TestMemoryStoreUpdateErrorKeepsState(t *testing.T) {
	store := newStore(t)
	boom := assert.AnError

	_, err := store.Update(context.Background(), "a", func(s drop.State) (drop.State, error) {
		s.TotalViews = 99
		return s, boom
	})
	assert.ErrorIs(t, err, boom)

	state, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Zero(t, state.TotalViews)
}

// Concurrent updates to one product must serialize; no increment may be lost.
func TestMemoryStoreUpdateAtomicity(t *testing.T) {
	store := newStore(t)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			_, err := store.Update(context.Background(), "a", func(s drop.State) (drop.State, error) {
				s.TotalViews++
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, workers, state.TotalViews)
}

func TestMemoryStoreReset(t *testing.T) {
	store := newStore(t)

	_, err := store.Update(context.Background(), "a", func(s drop.State) (drop.State, error) {
		s.IsSold = true
		return s, nil
	})
	require.NoError(t, err)

	require.NoError(t, store.Reset(context.Background(), seedStates()))

	state, err := store.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, state.IsSold)
}
