package response

import (
	"time"

	"storefront-api/internal/data/entity"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Demographic string    `json:"demographic"`
	Route       string    `json:"route"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

type SliderResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Title:       c.Title,
		Demographic: c.Demographic,
		Route:       c.Route,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
	}
}

func CategoriesToResponse(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryToResponse(c)
	}
	return out
}

func SliderToResponse(s *entity.Slider) SliderResponse {
	return SliderResponse{
		ID:        s.ID.String(),
		Title:     s.Title,
		Image:     s.Image,
		CreatedAt: s.CreatedAt,
	}
}

func SlidersToResponse(sliders []*entity.Slider) []SliderResponse {
	out := make([]SliderResponse, len(sliders))
	for i, s := range sliders {
		out[i] = SliderToResponse(s)
	}
	return out
}
