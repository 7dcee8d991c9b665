// Package cache provides a Redis read-through decorator for store.CakeStore.
//
// Single cakes are cached as JSON under cakes:<id>. Writes go to the backing
// store first and then refresh the cached copy. A delete leaves a tombstone
// under the key for one TTL so a read that missed before the delete cannot
// write the removed cake back. Redis being unavailable never fails a
// request: the error is logged and counted, and the backing store answers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by the cache.
const KeyPrefix = "cakes:"

// tombstone marks a deleted cake. Ids are never reused, so a tombstoned key
// can only ever answer not found.
const tombstone = "deleted"

// CakeStore wraps another store.CakeStore with a Redis cache.
type CakeStore struct {
	next   store.CakeStore
	redis  redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure CakeStore implements store.CakeStore interface
var _ store.CakeStore = (*CakeStore)(nil)

// NewCakeStore decorates next with a Redis cache whose entries expire after ttl.
// It panics if next or client is nil.
func NewCakeStore(
	next store.CakeStore,
	client redis.UniversalClient,
	ttl time.Duration,
	logger *slog.Logger,
) *CakeStore {
	if next == nil {
		panic("next store cannot be nil")
	}
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CakeStore{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cake_cache")),
	}
}

// Key returns the Redis key holding the cake with the given id.
func Key(id int64) string {
	return KeyPrefix + strconv.FormatInt(id, 10)
}

// Insert stores the cake in the backing store and primes the cache with it.
func (s *CakeStore) Insert(ctx context.Context, title, description string) (*domain.Cake, error) {
	cake, err := s.next.Insert(ctx, title, description)
	if err != nil {
		return nil, err
	}
	s.set(ctx, cake)
	return cake, nil
}

// FindByID serves the cake from Redis when present, otherwise loads it from
// the backing store and caches the result. Misses are not cached.
func (s *CakeStore) FindByID(ctx context.Context, id int64) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := s.redis.Get(ctx, Key(id)).Bytes()
	switch {
	case err == nil && string(data) == tombstone:
		CacheHits.Inc()
		return nil, store.ErrCakeNotFound
	case err == nil:
		var cake domain.Cake
		decodeErr := json.Unmarshal(data, &cake)
		if decodeErr == nil {
			CacheHits.Inc()
			return &cake, nil
		}
		CacheErrors.WithLabelValues("decode").Inc()
		log.Warn("discarding undecodable cache entry",
			slog.Int64("cake_id", id),
			slog.String("error", decodeErr.Error()))
		s.evict(ctx, id)
	case errors.Is(err, redis.Nil):
		CacheMisses.Inc()
	default:
		CacheErrors.WithLabelValues("get").Inc()
		log.Warn("cache read failed, using backing store",
			slog.Int64("cake_id", id),
			slog.String("error", err.Error()))
	}

	cake, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, cake)
	return cake, nil
}

// FindAll always reads the backing store. Listing results are not cached.
func (s *CakeStore) FindAll(ctx context.Context) ([]*domain.Cake, error) {
	return s.next.FindAll(ctx)
}

// Update writes through to the backing store and refreshes the cached copy.
func (s *CakeStore) Update(
	ctx context.Context,
	id int64,
	title, description string,
) (*domain.Cake, error) {
	cake, err := s.next.Update(ctx, id, title, description)
	if err != nil {
		return nil, err
	}
	s.set(ctx, cake)
	return cake, nil
}

// Delete removes the cake from the backing store and tombstones its key.
// Deleting a cake that was not there only evicts, since its id may still be
// assigned later.
func (s *CakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !removed {
		s.evict(ctx, id)
		return false, nil
	}

	if err := s.redis.Set(ctx, Key(id), tombstone, s.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		logger.FromContextOrDefault(ctx, s.logger).Warn("cache tombstone write failed",
			slog.Int64("cake_id", id),
			slog.String("error", err.Error()))
		s.evict(ctx, id)
	}
	return true, nil
}

// set overwrites the cached copy after a write to the backing store.
func (s *CakeStore) set(ctx context.Context, cake *domain.Cake) {
	data, ok := s.encode(ctx, cake)
	if !ok {
		return
	}

	if err := s.redis.Set(ctx, Key(cake.ID), data, s.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		logger.FromContextOrDefault(ctx, s.logger).Warn("cache write failed",
			slog.Int64("cake_id", cake.ID),
			slog.String("error", err.Error()))
		// A stale entry is worse than none.
		s.evict(ctx, cake.ID)
	}
}

// fill caches a cake read from the backing store after a miss. It never
// replaces an existing key: a delete or update that landed while the read
// was in flight has already written a newer value.
func (s *CakeStore) fill(ctx context.Context, cake *domain.Cake) {
	data, ok := s.encode(ctx, cake)
	if !ok {
		return
	}

	if err := s.redis.SetNX(ctx, Key(cake.ID), data, s.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		logger.FromContextOrDefault(ctx, s.logger).Warn("cache fill failed",
			slog.Int64("cake_id", cake.ID),
			slog.String("error", err.Error()))
	}
}

func (s *CakeStore) encode(ctx context.Context, cake *domain.Cake) ([]byte, bool) {
	data, err := json.Marshal(cake)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		logger.FromContextOrDefault(ctx, s.logger).
			Warn("failed to encode cake for cache", slog.String("error", err.Error()))
		return nil, false
	}
	return data, true
}

func (s *CakeStore) evict(ctx context.Context, id int64) {
	if err := s.redis.Del(ctx, Key(id)).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		logger.FromContextOrDefault(ctx, s.logger).Warn("cache eviction failed",
			slog.Int64("cake_id", id),
			slog.String("error", err.Error()))
	}
}

// Ping checks connectivity to Redis.
func (s *CakeStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}
