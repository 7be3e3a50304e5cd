package response

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/data/entity"
)

type ProductResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	Images         []string  `json:"images"`
	Category       string    `json:"category"`
	Demographic    string    `json:"demographic"`
	Description    string    `json:"description"`
	Sizes          []string  `json:"sizes"`
	Colors         []string  `json:"colors"`
	Specifications []string  `json:"specifications"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductFields is the projection whitelist, keyed by json name.
var ProductFields = map[string]bool{
	"id": true, "title": true, "price": true, "images": true, "category": true,
	"demographic": true, "description": true, "sizes": true, "colors": true,
	"specifications": true, "created_at": true, "updated_at": true,
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID.String(),
		Title:          p.Title,
		Price:          p.Price,
		Images:         orEmpty(p.Images),
		Category:       p.Category,
		Demographic:    p.Demographic,
		Description:    p.Description,
		Sizes:          orEmpty(p.Sizes),
		Colors:         orEmpty(p.Colors),
		Specifications: orEmpty(p.Specifications),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductToResponse(p)
	}
	return out
}

// ValidateFields rejects projection names outside the whitelist.
func ValidateFields(fields []string, allowed map[string]bool) error {
	var unknown []string
	for _, f := range fields {
		if !allowed[f] {
			unknown = append(unknown, f)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Project keeps only the named json fields of each item. "id" is always kept.
func Project[T any](items []T, fields []string) ([]map[string]any, error) {
	keep := map[string]bool{"id": true}
	for _, f := range fields {
		keep[f] = true
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var full map[string]any
		if err := json.Unmarshal(raw, &full); err != nil {
			return nil, err
		}
		for k := range full {
			if !keep[k] {
				delete(full, k)
			}
		}
		out = append(out, full)
	}
	return out, nil
}
