package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/platform/memory"
	"github.com/phrazzld/cake-api/internal/service"
	"github.com/phrazzld/cake-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

// failingStore fails every call with errBackend.
type failingStore struct{}

func (failingStore) Insert(context.Context, string, string) (*domain.Cake, error) {
	return nil, errBackend
}

func (failingStore) FindByID(context.Context, int64) (*domain.Cake, error) {
	return nil, errBackend
}

func (failingStore) FindAll(context.Context) ([]*domain.Cake, error) {
	return nil, errBackend
}

func (failingStore) Update(context.Context, int64, string, string) (*domain.Cake, error) {
	return nil, errBackend
}

func (failingStore) Delete(context.Context, int64) (bool, error) {
	return false, errBackend
}

// newSeededService returns a service over a memory store holding the
// lemon cheesecake as cake 1.
func newSeededService(t *testing.T) service.CakeService {
	t.Helper()

	cakes := memory.NewCakeStore(nil)
	_, err := cakes.Insert(context.Background(), "Lemon cheesecake", "A cheesecake made of lemon")
	require.NoError(t, err)

	svc, err := service.NewCakeService(cakes, nil)
	require.NoError(t, err)
	return svc
}

func TestNewCakeService(t *testing.T) {
	svc, err := service.NewCakeService(nil, nil)

	assert.Nil(t, svc)
	var serviceErr *service.CakeServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "create_service", serviceErr.Operation)
}

func TestGetCakes(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store encodes an empty list", func(t *testing.T) {
		svc, err := service.NewCakeService(memory.NewCakeStore(nil), nil)
		require.NoError(t, err)

		resp, err := svc.GetCakes(ctx)
		require.NoError(t, err)

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"cakes":[]}`, string(body))
	})

	t.Run("seeded store", func(t *testing.T) {
		svc := newSeededService(t)

		resp, err := svc.GetCakes(ctx)
		require.NoError(t, err)

		assert.Equal(t, []service.CakeResponse{{
			ID:          1,
			Title:       "Lemon cheesecake",
			Description: "A cheesecake made of lemon",
		}}, resp.Cakes)
	})
}

func TestGetCakeByID(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetCakeByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Lemon cheesecake", resp.Title)
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := svc.GetCakeByID(ctx, 99)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, service.ErrCakeNotFound)
		assert.False(t, errors.Is(err, store.ErrNotFound), "store sentinels must not leak")

		var serviceErr *service.CakeServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "get_cake", serviceErr.Operation)
	})

	t.Run("ids never assigned are not found", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			_, err := svc.GetCakeByID(ctx, id)
			assert.ErrorIs(t, err, service.ErrCakeNotFound, "id %d", id)
		}
	})
}

func TestCreateCake(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	t.Run("assigns the next id", func(t *testing.T) {
		resp, err := svc.CreateCake(ctx, service.CreateCakeRequest{
			Title:       "Victoria sponge",
			Description: "Jam and cream",
		})
		require.NoError(t, err)
		assert.Equal(t, &service.CakeResponse{
			ID:          2,
			Title:       "Victoria sponge",
			Description: "Jam and cream",
		}, resp)

		fetched, err := svc.GetCakeByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, resp, fetched)
	})

	tests := []struct {
		name    string
		req     service.CreateCakeRequest
		wantErr error
	}{
		{"empty title", service.CreateCakeRequest{Description: "d"}, domain.ErrEmptyContent},
		{"empty description", service.CreateCakeRequest{Title: "t"}, domain.ErrEmptyContent},
		{
			"description too long",
			service.CreateCakeRequest{Title: "t", Description: strings.Repeat("d", domain.MaxDescriptionLength+1)},
			domain.ErrContentTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.CreateCake(ctx, tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateCake(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	t.Run("replaces both fields", func(t *testing.T) {
		resp, err := svc.UpdateCake(ctx, 1, service.UpdateCakeRequest{
			Title:       "Lime cheesecake",
			Description: "Now with lime",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Lime cheesecake", resp.Title)
		assert.Equal(t, "Now with lime", resp.Description)
	})

	t.Run("missing cake", func(t *testing.T) {
		_, err := svc.UpdateCake(ctx, 42, service.UpdateCakeRequest{Title: "t", Description: "d"})
		assert.ErrorIs(t, err, service.ErrCakeNotFound)
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := svc.UpdateCake(ctx, 1, service.UpdateCakeRequest{Title: "t"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		current, err := svc.GetCakeByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Lime cheesecake", current.Title)
	})
}

func TestDeleteCake(t *testing.T) {
	ctx := context.Background()
	svc := newSeededService(t)

	require.NoError(t, svc.DeleteCake(ctx, 1))
	assert.NoError(t, svc.DeleteCake(ctx, 1), "deleting twice should succeed")
	assert.NoError(t, svc.DeleteCake(ctx, 99), "deleting a missing cake should succeed")

	_, err := svc.GetCakeByID(ctx, 1)
	assert.ErrorIs(t, err, service.ErrCakeNotFound)

	assert.NoError(t, svc.DeleteCake(ctx, 0))
	assert.NoError(t, svc.DeleteCake(ctx, -1))
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	ctx := context.Background()
	svc, err := service.NewCakeService(failingStore{}, nil)
	require.NoError(t, err)

	valid := service.CreateCakeRequest{Title: "t", Description: "d"}

	calls := map[string]func() error{
		"get_cakes": func() error { _, err := svc.GetCakes(ctx); return err },
		"get_cake":  func() error { _, err := svc.GetCakeByID(ctx, 1); return err },
		"create_cake": func() error {
			_, err := svc.CreateCake(ctx, valid)
			return err
		},
		"update_cake": func() error {
			_, err := svc.UpdateCake(ctx, 1, service.UpdateCakeRequest(valid))
			return err
		},
		"delete_cake": func() error { return svc.DeleteCake(ctx, 1) },
	}

	for operation, call := range calls {
		t.Run(operation, func(t *testing.T) {
			err := call()

			var serviceErr *service.CakeServiceError
			require.ErrorAs(t, err, &serviceErr)
			assert.Equal(t, operation, serviceErr.Operation)
			assert.ErrorIs(t, err, errBackend)
			assert.False(t, errors.Is(err, service.ErrCakeNotFound))
		})
	}
}
