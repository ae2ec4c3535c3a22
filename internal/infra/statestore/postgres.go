package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS drop_states (
    product_id text PRIMARY KEY,
    state      jsonb NOT NULL
)`

// PostgresStore persists each drop state as a jsonb document. Update takes a
// row lock for the product, so the read-modify-write cycle is atomic even
// across processes.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, seed []drop.State) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool, logger: logger}
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return nil, infra.WrapRepoErr(logger, infra.KindStoreFailure, "failed to ensure schema", err)
	}
	// Seed only products that do not exist yet; running states survive restarts.
	for _, state := range seed {
		raw, err := json.Marshal(state)
		if err != nil {
			return nil, infra.WrapRepoErr(logger, infra.KindStoreFailure, "failed to encode seed state", err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO drop_states (product_id, state) VALUES ($1, $2) ON CONFLICT (product_id) DO NOTHING`,
			state.ProductID, raw)
		if err != nil {
			return nil, infra.WrapRepoErr(logger, infra.KindStoreFailure, "failed to seed drop state", err)
		}
	}
	return s, nil
}

func (s *PostgresStore) Get(ctx context.Context, productID string) (drop.State, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM drop_states WHERE product_id = $1`, productID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindNotFound, "drop state not found", nil)
	}
	if err != nil {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to read drop state", err)
	}
	return s.decode(raw)
}

func (s *PostgresStore) List(ctx context.Context) ([]drop.State, error) {
	rows, err := s.pool.Query(ctx, `SELECT state FROM drop_states ORDER BY product_id`)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to list drop states", err)
	}
	defer rows.Close()

	var states []drop.State
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to scan drop state", err)
		}
		state, err := s.decode(raw)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to iterate drop states", err)
	}
	return states, nil
}

func (s *PostgresStore) Update(ctx context.Context, productID string, fn func(drop.State) (drop.State, error)) (drop.State, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT state FROM drop_states WHERE product_id = $1 FOR UPDATE`, productID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindNotFound, "drop state not found", nil)
	}
	if err != nil {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to lock drop state", err)
	}

	state, err := s.decode(raw)
	if err != nil {
		return drop.State{}, err
	}

	next, err := fn(state)
	if err != nil {
		return state, err
	}

	nextRaw, err := json.Marshal(next)
	if err != nil {
		return state, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to encode drop state", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE drop_states SET state = $2 WHERE product_id = $1`, productID, nextRaw); err != nil {
		return state, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to write drop state", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return state, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to commit drop state", err)
	}
	return next, nil
}

func (s *PostgresStore) Reset(ctx context.Context, states []drop.State) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE drop_states`); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to clear drop states", err)
	}
	for _, state := range states {
		raw, err := json.Marshal(state)
		if err != nil {
			return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to encode drop state", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO drop_states (product_id, state) VALUES ($1, $2)`, state.ProductID, raw); err != nil {
			return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to insert drop state", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to commit reset", err)
	}
	return nil
}

func (s *PostgresStore) decode(raw []byte) (drop.State, error) {
	var state drop.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to decode drop state", err)
	}
	return state, nil
}
