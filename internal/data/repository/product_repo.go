package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopstack/internal/data/entity"
	"shopstack/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ProductFilter narrows FindAll/CountAll. Nil fields are ignored.
type ProductFilter struct {
	Search     *string
	CategoryID *int64
	BrandID    *int64
	MinPrice   *int64
	MaxPrice   *int64
	Active     *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	FindBySKU(ctx context.Context, sku string) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, description, price_cents, stock,
		                      category_id, brand_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		product.SKU,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.CategoryID,
		product.BrandID,
		product.Active,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSKU
		}
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("sku", product.SKU),
		)
		return fmt.Errorf("create product %s: %w", product.SKU, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, description, price_cents, stock, category_id,
		       brand_id, active, created_at, updated_at, deleted_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.Stock,
		&product.CategoryID,
		&product.BrandID,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.Int64("product_id", id),
		)
		return nil, fmt.Errorf("find product by ID %d: %w", id, err)
	}

	return &product, nil
}

func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, description, price_cents, stock, category_id,
		       brand_id, active, created_at, updated_at, deleted_at
		FROM products
		WHERE sku = $1 AND deleted_at IS NULL
	`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, sku).Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.Stock,
		&product.CategoryID,
		&product.BrandID,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by SKU",
			zap.Error(err),
			zap.String("sku", sku),
		)
		return nil, fmt.Errorf("find product by SKU %s: %w", sku, err)
	}

	return &product, nil
}

// buildFilter appends WHERE fragments for the optional filters.
func buildProductFilter(qb *strings.Builder, args *[]interface{}, filter ProductFilter) {
	argCount := len(*args) + 1

	if filter.Search != nil && *filter.Search != "" {
		qb.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argCount))
		*args = append(*args, "%"+*filter.Search+"%")
		argCount++
	}
	if filter.CategoryID != nil {
		qb.WriteString(fmt.Sprintf(" AND category_id = $%d", argCount))
		*args = append(*args, *filter.CategoryID)
		argCount++
	}
	if filter.BrandID != nil {
		qb.WriteString(fmt.Sprintf(" AND brand_id = $%d", argCount))
		*args = append(*args, *filter.BrandID)
		argCount++
	}
	if filter.MinPrice != nil {
		qb.WriteString(fmt.Sprintf(" AND price_cents >= $%d", argCount))
		*args = append(*args, *filter.MinPrice)
		argCount++
	}
	if filter.MaxPrice != nil {
		qb.WriteString(fmt.Sprintf(" AND price_cents <= $%d", argCount))
		*args = append(*args, *filter.MaxPrice)
		argCount++
	}
	if filter.Active != nil {
		qb.WriteString(fmt.Sprintf(" AND active = $%d", argCount))
		*args = append(*args, *filter.Active)
	}
}

func (r *productRepository) FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, sku, name, description, price_cents, stock, category_id,
		       brand_id, active, created_at, updated_at
		FROM products
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	buildProductFilter(&queryBuilder, &args, filter)

	argCount := len(args) + 1
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.SKU,
			&product.Name,
			&product.Description,
			&product.PriceCents,
			&product.Stock,
			&product.CategoryID,
			&product.BrandID,
			&product.Active,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountAll(ctx context.Context, filter ProductFilter) (int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`)

	args := []interface{}{}
	buildProductFilter(&queryBuilder, &args, filter)

	var count int64
	err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, price_cents = $5,
		    stock = $6, category_id = $7, brand_id = $8, active = $9,
		    updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.SKU,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.CategoryID,
		product.BrandID,
		product.Active,
		product.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSKU
		}
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.Int64("product_id", product.ID),
		)
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE products SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.Int64("product_id", id),
		)
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.log.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}
