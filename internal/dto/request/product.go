package request

type ProductRequest struct {
	SKU         string  `json:"sku" validate:"required,min=1,max=64"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	PriceCents  int64   `json:"price_cents" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	BrandID     *int64  `json:"brand_id,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type ProductUpdateRequest struct {
	SKU         *string `json:"sku,omitempty" validate:"omitempty,min=1,max=64"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	BrandID     *int64  `json:"brand_id,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ProductListRequest carries the optional list filters parsed from query
// parameters.
type ProductListRequest struct {
	PaginatedRequest
	Search     *string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *int64
	MaxPrice   *int64
	Active     *bool
}
