//go:build e2e

package statestore_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"
	"qomo-drops/internal/infra/statestore"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgDatabase = "qomo_drops_test"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			WaitingFor: wait.ForListeningPort(nat.Port("5432/tcp")).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pgUser, pgPassword, host, port.Port(), pgDatabase)

	var pool *pgxpool.Pool
	require.Eventually(t, func() bool {
		pool, err = pgxpool.New(ctx, dsn)
		if err != nil {
			return false
		}
		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return false
		}
		return true
	}, 30*time.Second, time.Second, "postgres never became reachable")
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	seed := []drop.State{
		{ProductID: "a", CurrentPrice: decimal.NewFromInt(100), Queue: []string{}},
		{ProductID: "b", CurrentPrice: decimal.NewFromInt(200), Queue: []string{}},
	}
	store, err := statestore.NewPostgresStore(ctx, pool, slog.Default(), seed)
	require.NoError(t, err)

	t.Run("get and list", func(t *testing.T) {
		state, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, state.CurrentPrice.Equal(decimal.NewFromInt(100)))

		_, err = store.Get(ctx, "missing")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		states, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, states, 2)
	})

	t.Run("update is atomic under concurrency", func(t *testing.T) {
		const workers = 20
		var wg sync.WaitGroup
		wg.Add(workers)
		for range workers {
			go func() {
				defer wg.Done()
				_, err := store.Update(ctx, "a", func(s drop.State) (drop.State, error) {
					s.TotalViews++
					return s, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		state, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, workers, state.TotalViews)
	})

	t.Run("update error rolls back", func(t *testing.T) {
		before, err := store.Get(ctx, "b")
		require.NoError(t, err)

		_, err = store.Update(ctx, "b", func(s drop.State) (drop.State, error) {
			s.IsSold = true
			return s, assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)

		after, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, before.IsSold, after.IsSold)
	})

	t.Run("reset reseeds everything", func(t *testing.T) {
		_, err := store.Update(ctx, "a", func(s drop.State) (drop.State, error) {
			s.IsSold = true
			return s, nil
		})
		require.NoError(t, err)

		require.NoError(t, store.Reset(ctx, seed))

		state, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.False(t, state.IsSold)
		assert.Zero(t, state.TotalViews)
	})

	t.Run("seeding does not clobber existing rows", func(t *testing.T) {
		_, err := store.Update(ctx, "a", func(s drop.State) (drop.State, error) {
			s.TotalViews = 7
			return s, nil
		})
		require.NoError(t, err)

		_, err = statestore.NewPostgresStore(ctx, pool, slog.Default(), seed)
		require.NoError(t, err)

		state, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 7, state.TotalViews)
	})
}
