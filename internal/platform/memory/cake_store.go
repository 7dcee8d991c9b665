// Package memory provides a process-local implementation of store.CakeStore.
// It is the default backend and the one used by most tests.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/store"
)

// CakeStore keeps cakes in a map guarded by a read/write mutex.
// Every returned cake is a copy, so callers cannot mutate stored state.
type CakeStore struct {
	mu     sync.RWMutex
	cakes  map[int64]*domain.Cake
	nextID int64
	logger *slog.Logger
}

// Ensure CakeStore implements store.CakeStore interface
var _ store.CakeStore = (*CakeStore)(nil)

// NewCakeStore creates an empty store whose first cake gets ID 1.
// If logger is nil, a default logger will be used.
func NewCakeStore(logger *slog.Logger) *CakeStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CakeStore{
		cakes:  make(map[int64]*domain.Cake),
		nextID: 1,
		logger: logger.With(slog.String("component", "memory_cake_store")),
	}
}

// Insert implements store.CakeStore.Insert.
func (s *CakeStore) Insert(ctx context.Context, title, description string) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cake, err := domain.NewCake(title, description)
	if err != nil {
		log.Warn("cake validation failed during insert", slog.String("error", err.Error()))
		return nil, store.InvalidEntity(err)
	}

	s.mu.Lock()
	cake.ID = s.nextID
	s.nextID++
	s.cakes[cake.ID] = cake
	s.mu.Unlock()

	log.Debug("cake inserted", slog.Int64("cake_id", cake.ID))
	return copyCake(cake), nil
}

// FindByID implements store.CakeStore.FindByID.
func (s *CakeStore) FindByID(ctx context.Context, id int64) (*domain.Cake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cake, ok := s.cakes[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).
			Debug("cake not found", slog.Int64("cake_id", id))
		return nil, store.ErrCakeNotFound
	}
	return copyCake(cake), nil
}

// FindAll implements store.CakeStore.FindAll.
func (s *CakeStore) FindAll(ctx context.Context) ([]*domain.Cake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cakes := make([]*domain.Cake, 0, len(s.cakes))
	for _, cake := range s.cakes {
		cakes = append(cakes, copyCake(cake))
	}
	sort.Slice(cakes, func(i, j int) bool { return cakes[i].ID < cakes[j].ID })
	return cakes, nil
}

// Update implements store.CakeStore.Update.
func (s *CakeStore) Update(
	ctx context.Context,
	id int64,
	title, description string,
) (*domain.Cake, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	cake, ok := s.cakes[id]
	if !ok {
		log.Debug("cake not found for update", slog.Int64("cake_id", id))
		return nil, store.ErrCakeNotFound
	}

	if err := cake.Replace(title, description); err != nil {
		log.Warn("cake validation failed during update",
			slog.Int64("cake_id", id),
			slog.String("error", err.Error()))
		return nil, store.InvalidEntity(err)
	}

	log.Debug("cake updated", slog.Int64("cake_id", id))
	return copyCake(cake), nil
}

// Delete implements store.CakeStore.Delete.
func (s *CakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cakes[id]; !ok {
		return false, nil
	}
	delete(s.cakes, id)

	logger.FromContextOrDefault(ctx, s.logger).Debug("cake deleted", slog.Int64("cake_id", id))
	return true, nil
}

func copyCake(c *domain.Cake) *domain.Cake {
	cp := *c
	return &cp
}
