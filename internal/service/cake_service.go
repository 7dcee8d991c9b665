package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/redact"
	"github.com/phrazzld/cake-api/internal/store"
)

// CakeService provides the cake use cases exposed over HTTP.
type CakeService interface {
	// GetCakes returns every cake in insertion order.
	GetCakes(ctx context.Context) (*CakesResponse, error)

	// GetCakeByID returns one cake or an error wrapping ErrCakeNotFound.
	GetCakeByID(ctx context.Context, id int64) (*CakeResponse, error)

	// CreateCake validates and stores a new cake and returns it with its id.
	CreateCake(ctx context.Context, req CreateCakeRequest) (*CakeResponse, error)

	// UpdateCake replaces the title and description of an existing cake.
	UpdateCake(ctx context.Context, id int64, req UpdateCakeRequest) (*CakeResponse, error)

	// DeleteCake removes a cake. Deleting a missing cake succeeds.
	DeleteCake(ctx context.Context, id int64) error
}

// cakeServiceImpl implements the CakeService interface
type cakeServiceImpl struct {
	cakeStore store.CakeStore
	logger    *slog.Logger
}

// NewCakeService creates a new CakeService.
// It returns an error if cakeStore is nil.
func NewCakeService(cakeStore store.CakeStore, logger *slog.Logger) (CakeService, error) {
	if cakeStore == nil {
		return nil, &CakeServiceError{
			Operation: "create_service",
			Message:   "cakeStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cakeServiceImpl{
		cakeStore: cakeStore,
		logger:    logger.With("component", "cake_service"),
	}, nil
}

// GetCakes implements CakeService.GetCakes.
func (s *cakeServiceImpl) GetCakes(ctx context.Context) (*CakesResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cakes, err := s.cakeStore.FindAll(ctx)
	if err != nil {
		log.Error("failed to list cakes", "error", redact.Error(err))
		return nil, NewCakeServiceError("get_cakes", "failed to list cakes", err)
	}

	log.Debug("listed cakes", "count", len(cakes))
	return NewCakesResponse(cakes), nil
}

// GetCakeByID implements CakeService.GetCakeByID.
func (s *cakeServiceImpl) GetCakeByID(ctx context.Context, id int64) (*CakeResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cake, err := s.cakeStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("cake not found", "cake_id", id)
		} else {
			log.Error("failed to get cake", "cake_id", id, "error", redact.Error(err))
		}
		return nil, NewCakeServiceError("get_cake", "failed to retrieve cake", err)
	}

	return NewCakeResponse(cake), nil
}

// CreateCake implements CakeService.CreateCake.
func (s *cakeServiceImpl) CreateCake(
	ctx context.Context,
	req CreateCakeRequest,
) (*CakeResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.NewCake(req.Title, req.Description); err != nil {
		log.Debug("rejected invalid cake", "error", err)
		return nil, NewCakeServiceError("create_cake", "invalid cake", err)
	}

	cake, err := s.cakeStore.Insert(ctx, req.Title, req.Description)
	if err != nil {
		log.Error("failed to create cake", "error", redact.Error(err))
		return nil, NewCakeServiceError("create_cake", "failed to save cake", err)
	}

	log.Info("cake created", "cake_id", cake.ID)
	return NewCakeResponse(cake), nil
}

// UpdateCake implements CakeService.UpdateCake.
func (s *cakeServiceImpl) UpdateCake(
	ctx context.Context,
	id int64,
	req UpdateCakeRequest,
) (*CakeResponse, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate := &domain.Cake{ID: id}
	if err := candidate.Replace(req.Title, req.Description); err != nil {
		log.Debug("rejected invalid cake update", "cake_id", id, "error", err)
		return nil, NewCakeServiceError("update_cake", "invalid cake", err)
	}

	cake, err := s.cakeStore.Update(ctx, id, req.Title, req.Description)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("cake not found for update", "cake_id", id)
		} else {
			log.Error("failed to update cake", "cake_id", id, "error", redact.Error(err))
		}
		return nil, NewCakeServiceError("update_cake", "failed to update cake", err)
	}

	log.Info("cake updated", "cake_id", id)
	return NewCakeResponse(cake), nil
}

// DeleteCake implements CakeService.DeleteCake.
func (s *cakeServiceImpl) DeleteCake(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	removed, err := s.cakeStore.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete cake", "cake_id", id, "error", redact.Error(err))
		return NewCakeServiceError("delete_cake", "failed to delete cake", err)
	}

	if !removed {
		log.Debug("delete of missing cake ignored", "cake_id", id)
		return nil
	}

	log.Info("cake deleted", "cake_id", id)
	return nil
}
