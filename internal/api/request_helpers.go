package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cake-api/internal/domain"
)

// getPathID extracts an int64 id from the named URL path parameter.
// Non-positive ids parse successfully; no cake can hold one, so the store
// reports them as not found.
//
// Returns:
//   - (id, nil): the parsed id
//   - (0, error): a domain.ErrInvalidID validation error if the parameter is
//     missing or not a base-10 int64
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}
