package service

import "github.com/phrazzld/cake-api/internal/domain"

// CreateCakeRequest is the body of POST /cakes.
type CreateCakeRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=2000"`
}

// UpdateCakeRequest is the body of PUT /cakes/{id}. Both fields are replaced.
type UpdateCakeRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=2000"`
}

// CakeResponse is the wire representation of a single cake.
type CakeResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CakesResponse wraps the cake list. Cakes is never nil so it encodes as [].
type CakesResponse struct {
	Cakes []CakeResponse `json:"cakes"`
}

// NewCakeResponse converts a domain cake into its response DTO.
func NewCakeResponse(cake *domain.Cake) *CakeResponse {
	return &CakeResponse{
		ID:          cake.ID,
		Title:       cake.Title,
		Description: cake.Description,
	}
}

// NewCakesResponse converts cakes, preserving their order.
func NewCakesResponse(cakes []*domain.Cake) *CakesResponse {
	resp := &CakesResponse{Cakes: make([]CakeResponse, 0, len(cakes))}
	for _, cake := range cakes {
		resp.Cakes = append(resp.Cakes, *NewCakeResponse(cake))
	}
	return resp
}
