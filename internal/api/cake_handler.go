package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cake-api/internal/api/shared"
	"github.com/phrazzld/cake-api/internal/platform/logger"
	"github.com/phrazzld/cake-api/internal/service"
)

// CakeHandler handles cake-related HTTP requests
type CakeHandler struct {
	cakeService service.CakeService
	logger      *slog.Logger
}

// NewCakeHandler creates a new CakeHandler
func NewCakeHandler(cakeService service.CakeService, logger *slog.Logger) *CakeHandler {
	if cakeService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cakeService cannot be nil for CakeHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CakeHandler")
	}

	return &CakeHandler{
		cakeService: cakeService,
		logger:      logger.With(slog.String("component", "cake_handler")),
	}
}

// Routes registers the cake endpoints on r.
func (h *CakeHandler) Routes(r chi.Router) {
	r.Route("/cakes", func(r chi.Router) {
		r.Get("/", h.GetCakes)
		r.Post("/", h.CreateCake)
		r.Get("/{id}", h.GetCakeByID)
		r.Put("/{id}", h.UpdateCake)
		r.Delete("/{id}", h.DeleteCake)
	})
}

// GetCakes handles GET /cakes requests
func (h *CakeHandler) GetCakes(w http.ResponseWriter, r *http.Request) {
	cakes, err := h.cakeService.GetCakes(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cakes")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cakes)
}

// GetCakeByID handles GET /cakes/{id} requests
func (h *CakeHandler) GetCakeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cake, err := h.cakeService.GetCakeByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get cake")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cake)
}

// CreateCake handles POST /cakes requests.
// It responds 201 with the stored cake and a Location header pointing at it.
func (h *CakeHandler) CreateCake(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req service.CreateCakeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cake, err := h.cakeService.CreateCake(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create cake")
		return
	}

	log.Debug("cake created", slog.Int64("cake_id", cake.ID))
	w.Header().Set("Location", "/cakes/"+strconv.FormatInt(cake.ID, 10))
	shared.RespondWithJSON(w, r, http.StatusCreated, cake)
}

// UpdateCake handles PUT /cakes/{id} requests
func (h *CakeHandler) UpdateCake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req service.UpdateCakeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cake, err := h.cakeService.UpdateCake(r.Context(), id, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update cake")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cake)
}

// DeleteCake handles DELETE /cakes/{id} requests.
// Deleting a cake that does not exist still responds 204.
func (h *CakeHandler) DeleteCake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.cakeService.DeleteCake(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete cake")
		return
	}

	shared.RespondNoContent(w)
}

// pathID parses the {id} parameter, writing a 400 response when it is invalid.
func (h *CakeHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Debug("invalid cake id", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// decodeAndValidate decodes the body into v and runs the validator tags,
// writing a 400 response on failure.
func (h *CakeHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
