package response

import (
	"time"

	"shopstack/internal/data/entity"
)

type BrandResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func BrandToResponse(brand *entity.Brand) BrandResponse {
	return BrandResponse{
		ID:        brand.ID,
		Name:      brand.Name,
		Active:    brand.Active,
		CreatedAt: brand.CreatedAt,
	}
}
