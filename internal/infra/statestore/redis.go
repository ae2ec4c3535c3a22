package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "qomo:drop:"

// RedisStore keeps drop states as JSON documents in Redis. Writes for one
// product are serialized by a process-local mutex; the service runs a single
// logical writer per product id, multi-node coordination is out of scope.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRedisStore(ctx context.Context, client *redis.Client, logger *slog.Logger, seed []drop.State) (*RedisStore, error) {
	s := &RedisStore{
		client: client,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
	for _, state := range seed {
		raw, err := json.Marshal(state)
		if err != nil {
			return nil, infra.WrapRepoErr(logger, infra.KindStoreFailure, "failed to encode seed state", err)
		}
		// NX: running states survive restarts, only new products get seeded.
		if err := client.SetNX(ctx, redisKeyPrefix+state.ProductID, raw, 0).Err(); err != nil {
			return nil, infra.WrapRepoErr(logger, infra.KindStoreFailure, "failed to seed drop state", err)
		}
	}
	return s, nil
}

func (s *RedisStore) Get(ctx context.Context, productID string) (drop.State, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+productID).Bytes()
	if errors.Is(err, redis.Nil) {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindNotFound, "drop state not found", nil)
	}
	if err != nil {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to read drop state", err)
	}
	return s.decode(raw)
}

func (s *RedisStore) List(ctx context.Context) ([]drop.State, error) {
	var states []drop.State
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		raw, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to read drop state", err)
		}
		state, err := s.decode(raw)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	if err := iter.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to scan drop states", err)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].ProductID < states[j].ProductID })
	return states, nil
}

func (s *RedisStore) Update(ctx context.Context, productID string, fn func(drop.State) (drop.State, error)) (drop.State, error) {
	lock := s.keyLock(productID)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.Get(ctx, productID)
	if err != nil {
		return drop.State{}, err
	}

	next, err := fn(state)
	if err != nil {
		return state, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return state, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to encode drop state", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+productID, raw, 0).Err(); err != nil {
		return state, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to write drop state", err)
	}
	return next, nil
}

func (s *RedisStore) Reset(ctx context.Context, states []drop.State) error {
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to scan drop states", err)
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to clear drop states", err)
		}
	}

	for _, state := range states {
		raw, err := json.Marshal(state)
		if err != nil {
			return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to encode drop state", err)
		}
		if err := s.client.Set(ctx, redisKeyPrefix+state.ProductID, raw, 0).Err(); err != nil {
			return infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to write drop state", err)
		}
	}
	return nil
}

func (s *RedisStore) keyLock(productID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lock, ok := s.locks[productID]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	s.locks[productID] = lock
	return lock
}

func (s *RedisStore) decode(raw []byte) (drop.State, error) {
	var state drop.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindStoreFailure, "failed to decode drop state", err)
	}
	return state, nil
}
