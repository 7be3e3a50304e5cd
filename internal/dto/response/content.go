package response

import (
	"time"

	"storefront-api/internal/data/entity"
)

type HeadingResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SettingResponse struct {
	NavbarTitle string                 `json:"navbar_title"`
	Display     entity.DisplaySettings `json:"display"`
	AboutUs     string                 `json:"about_us"`
	Terms       string                 `json:"terms"`
	Contact     entity.ContactSettings `json:"contact"`
	UpdatedAt   *time.Time             `json:"updated_at,omitempty"`
}

func HeadingToResponse(h *entity.Heading) HeadingResponse {
	return HeadingResponse{ID: h.ID, Title: h.Title, Subtitle: h.Subtitle, UpdatedAt: h.UpdatedAt}
}

func HeadingsToResponse(headings []*entity.Heading) []HeadingResponse {
	out := make([]HeadingResponse, len(headings))
	for i, h := range headings {
		out[i] = HeadingToResponse(h)
	}
	return out
}

func SettingToResponse(s *entity.Setting) SettingResponse {
	resp := SettingResponse{
		NavbarTitle: s.NavbarTitle,
		Display:     s.Display,
		AboutUs:     s.AboutUs,
		Terms:       s.Terms,
		Contact:     s.Contact,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
