package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/cake-api/internal/service"
)

// MockCakeService implements service.CakeService for testing
type MockCakeService struct {
	// Custom behavior functions
	GetCakesFn    func(ctx context.Context) (*service.CakesResponse, error)
	GetCakeByIDFn func(ctx context.Context, id int64) (*service.CakeResponse, error)
	CreateCakeFn  func(ctx context.Context, req service.CreateCakeRequest) (*service.CakeResponse, error)
	UpdateCakeFn  func(ctx context.Context, id int64, req service.UpdateCakeRequest) (*service.CakeResponse, error)
	DeleteCakeFn  func(ctx context.Context, id int64) error

	// Default response values
	Cakes *service.CakesResponse
	Cake  *service.CakeResponse
	Err   error

	mu    sync.Mutex
	calls map[string]int
	ids   []int64
}

// Ensure MockCakeService implements service.CakeService
var _ service.CakeService = (*MockCakeService)(nil)

func (m *MockCakeService) record(method string, id int64, hasID bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
	if hasID {
		m.ids = append(m.ids, id)
	}
}

// Calls returns how many times method was invoked.
func (m *MockCakeService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// IDs returns the ids passed to the id-taking methods, in call order.
func (m *MockCakeService) IDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.ids...)
}

// GetCakes implements service.CakeService
func (m *MockCakeService) GetCakes(ctx context.Context) (*service.CakesResponse, error) {
	m.record("GetCakes", 0, false)
	if m.GetCakesFn != nil {
		return m.GetCakesFn(ctx)
	}
	return m.Cakes, m.Err
}

// GetCakeByID implements service.CakeService
func (m *MockCakeService) GetCakeByID(ctx context.Context, id int64) (*service.CakeResponse, error) {
	m.record("GetCakeByID", id, true)
	if m.GetCakeByIDFn != nil {
		return m.GetCakeByIDFn(ctx, id)
	}
	return m.Cake, m.Err
}

// CreateCake implements service.CakeService
func (m *MockCakeService) CreateCake(
	ctx context.Context,
	req service.CreateCakeRequest,
) (*service.CakeResponse, error) {
	m.record("CreateCake", 0, false)
	if m.CreateCakeFn != nil {
		return m.CreateCakeFn(ctx, req)
	}
	return m.Cake, m.Err
}

// UpdateCake implements service.CakeService
func (m *MockCakeService) UpdateCake(
	ctx context.Context,
	id int64,
	req service.UpdateCakeRequest,
) (*service.CakeResponse, error) {
	m.record("UpdateCake", id, true)
	if m.UpdateCakeFn != nil {
		return m.UpdateCakeFn(ctx, id, req)
	}
	return m.Cake, m.Err
}

// DeleteCake implements service.CakeService
func (m *MockCakeService) DeleteCake(ctx context.Context, id int64) error {
	m.record("DeleteCake", id, true)
	if m.DeleteCakeFn != nil {
		return m.DeleteCakeFn(ctx, id)
	}
	return m.Err
}
