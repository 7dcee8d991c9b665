package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cake-api/internal/api/shared"
	"github.com/phrazzld/cake-api/internal/domain"
	"github.com/phrazzld/cake-api/internal/mocks"
	"github.com/phrazzld/cake-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lemonCheesecake = &service.CakeResponse{
	ID:          1,
	Title:       "Lemon cheesecake",
	Description: "A cheesecake made of lemon",
}

func newTestRouter(svc service.CakeService) http.Handler {
	r := chi.NewRouter()
	NewCakeHandler(svc, slog.Default()).Routes(r)
	return r
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(shared.WithTraceID(req.Context(), "test-trace"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestNewCakeHandlerPanics(t *testing.T) {
	assert.Panics(t, func() { NewCakeHandler(nil, slog.Default()) })
	assert.Panics(t, func() { NewCakeHandler(&mocks.MockCakeService{}, nil) })
}

func TestGetCakes(t *testing.T) {
	tests := []struct {
		name       string
		svc        *mocks.MockCakeService
		wantStatus int
		wantBody   string
	}{
		{
			name:       "seeded list",
			svc:        &mocks.MockCakeService{Cakes: &service.CakesResponse{Cakes: []service.CakeResponse{*lemonCheesecake}}},
			wantStatus: http.StatusOK,
			wantBody:   `{"cakes":[{"id":1,"title":"Lemon cheesecake","description":"A cheesecake made of lemon"}]}`,
		},
		{
			name:       "empty list",
			svc:        &mocks.MockCakeService{Cakes: &service.CakesResponse{Cakes: []service.CakeResponse{}}},
			wantStatus: http.StatusOK,
			wantBody:   `{"cakes":[]}`,
		},
		{
			name:       "service failure",
			svc:        &mocks.MockCakeService{Err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to list cakes","trace_id":"test-trace"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, newTestRouter(tt.svc), http.MethodGet, "/cakes", "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestGetCakeByID(t *testing.T) {
	notFound := &service.CakeServiceError{Operation: "get_cake", Err: service.ErrCakeNotFound}

	tests := []struct {
		name        string
		path        string
		svc         *mocks.MockCakeService
		wantStatus  int
		wantMessage string
		wantCalls   int
	}{
		{
			name:       "found",
			path:       "/cakes/1",
			svc:        &mocks.MockCakeService{Cake: lemonCheesecake},
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:        "not found",
			path:        "/cakes/99",
			svc:         &mocks.MockCakeService{Err: notFound},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Cake not found",
			wantCalls:   1,
		},
		{
			name:        "non numeric id",
			path:        "/cakes/abc",
			svc:         &mocks.MockCakeService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid cake ID",
		},
		{
			name:        "zero id reaches service",
			path:        "/cakes/0",
			svc:         &mocks.MockCakeService{Err: notFound},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Cake not found",
			wantCalls:   1,
		},
		{
			name:        "negative id reaches service",
			path:        "/cakes/-5",
			svc:         &mocks.MockCakeService{Err: notFound},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Cake not found",
			wantCalls:   1,
		},
		{
			name:        "overflowing id",
			path:        "/cakes/99999999999999999999",
			svc:         &mocks.MockCakeService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid cake ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, newTestRouter(tt.svc), http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalls, tt.svc.Calls("GetCakeByID"))
			if tt.wantMessage != "" {
				body := decodeError(t, rr)
				assert.Equal(t, tt.wantMessage, body.Error)
				assert.Equal(t, "test-trace", body.TraceID)
				return
			}
			assert.JSONEq(t, `{"id":1,"title":"Lemon cheesecake","description":"A cheesecake made of lemon"}`, rr.Body.String())
			assert.Equal(t, []int64{1}, tt.svc.IDs())
		})
	}
}

func TestCreateCake(t *testing.T) {
	created := &service.CakeResponse{ID: 2, Title: "Victoria sponge", Description: "Jam and cream"}

	tests := []struct {
		name        string
		body        string
		svc         *mocks.MockCakeService
		wantStatus  int
		wantMessage string
		wantCalls   int
	}{
		{
			name:       "created",
			body:       `{"title":"Victoria sponge","description":"Jam and cream"}`,
			svc:        &mocks.MockCakeService{Cake: created},
			wantStatus: http.StatusCreated,
			wantCalls:  1,
		},
		{
			name:        "malformed json",
			body:        `{"title":`,
			svc:         &mocks.MockCakeService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "unknown field",
			body:        `{"title":"a","description":"b","price":3}`,
			svc:         &mocks.MockCakeService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "missing title",
			body:        `{"description":"b"}`,
			svc:         &mocks.MockCakeService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid title: required field",
		},
		{
			name:        "title too long",
			body:        `{"title":"` + strings.Repeat("x", 256) + `","description":"b"}`,
			svc:         &mocks.MockCakeService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid title: too long",
		},
		{
			name: "blank title rejected by service",
			body: `{"title":"   ","description":"b"}`,
			svc: &mocks.MockCakeService{
				Err: service.NewCakeServiceError("create_cake", "invalid cake",
					domain.NewValidationError("title", "cannot be empty", domain.ErrEmptyContent)),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid title: cannot be empty",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, newTestRouter(tt.svc), http.MethodPost, "/cakes", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalls, tt.svc.Calls("CreateCake"))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeError(t, rr).Error)
				return
			}
			assert.Equal(t, "/cakes/2", rr.Header().Get("Location"))
			assert.JSONEq(t, `{"id":2,"title":"Victoria sponge","description":"Jam and cream"}`, rr.Body.String())
		})
	}
}

func TestUpdateCake(t *testing.T) {
	var gotReq service.UpdateCakeRequest
	svc := &mocks.MockCakeService{
		UpdateCakeFn: func(_ context.Context, id int64, req service.UpdateCakeRequest) (*service.CakeResponse, error) {
			gotReq = req
			if id != 1 {
				return nil, &service.CakeServiceError{Operation: "update_cake", Err: service.ErrCakeNotFound}
			}
			return &service.CakeResponse{ID: id, Title: req.Title, Description: req.Description}, nil
		},
	}
	router := newTestRouter(svc)

	t.Run("updated", func(t *testing.T) {
		rr := serve(t, router, http.MethodPut, "/cakes/1", `{"title":"Lime","description":"Tart"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":1,"title":"Lime","description":"Tart"}`, rr.Body.String())
		assert.Equal(t, service.UpdateCakeRequest{Title: "Lime", Description: "Tart"}, gotReq)
	})

	t.Run("not found", func(t *testing.T) {
		rr := serve(t, router, http.MethodPut, "/cakes/7", `{"title":"Lime","description":"Tart"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Cake not found", decodeError(t, rr).Error)
	})

	t.Run("invalid body never reaches service", func(t *testing.T) {
		before := svc.Calls("UpdateCake")
		rr := serve(t, router, http.MethodPut, "/cakes/1", `{"title":"Lime"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid description: required field", decodeError(t, rr).Error)
		assert.Equal(t, before, svc.Calls("UpdateCake"))
	})

	t.Run("negative id is not found", func(t *testing.T) {
		rr := serve(t, router, http.MethodPut, "/cakes/-3", `{"title":"Lime","description":"Tart"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Cake not found", decodeError(t, rr).Error)
	})

	t.Run("non numeric id", func(t *testing.T) {
		before := svc.Calls("UpdateCake")
		rr := serve(t, router, http.MethodPut, "/cakes/abc", `{"title":"Lime","description":"Tart"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid cake ID", decodeError(t, rr).Error)
		assert.Equal(t, before, svc.Calls("UpdateCake"))
	})
}

func TestDeleteCake(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		svc        *mocks.MockCakeService
		wantStatus int
	}{
		{"deleted", "/cakes/1", &mocks.MockCakeService{}, http.StatusNoContent},
		{"missing cake is still 204", "/cakes/99", &mocks.MockCakeService{}, http.StatusNoContent},
		{"zero id", "/cakes/0", &mocks.MockCakeService{}, http.StatusNoContent},
		{"negative id", "/cakes/-1", &mocks.MockCakeService{}, http.StatusNoContent},
		{"invalid id", "/cakes/x", &mocks.MockCakeService{}, http.StatusBadRequest},
		{"service failure", "/cakes/1", &mocks.MockCakeService{Err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, newTestRouter(tt.svc), http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
		})
	}
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	svc := &mocks.MockCakeService{Err: errors.New("pq: password=hunter2 at /var/lib/pg")}

	rr := serve(t, newTestRouter(svc), http.MethodGet, "/cakes/1", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "hunter2")
	assert.Equal(t, "Failed to get cake", decodeError(t, rr).Error)
}
