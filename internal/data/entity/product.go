package entity

type Product struct {
	Base
	SKU         string  `db:"sku"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	PriceCents  int64   `db:"price_cents"`
	Stock       int     `db:"stock"`
	CategoryID  *int64  `db:"category_id"`
	BrandID     *int64  `db:"brand_id"`
	Active      bool    `db:"active"`
}
