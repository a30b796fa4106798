package repository

import (
	"context"
	"errors"
	"fmt"

	"shopstack/internal/data/entity"
	"shopstack/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	FindByID(ctx context.Context, id int64) (*entity.Brand, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Brand, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id int64) error
}

type brandRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBrandRepository(db database.PgxIface, log *zap.Logger) BrandRepository {
	return &brandRepository{
		db:  db,
		log: log.With(zap.String("repository", "brand")),
	}
}

func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	query := `
		INSERT INTO brands (name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		brand.Name,
		brand.Active,
		brand.CreatedAt,
		brand.UpdatedAt,
	).Scan(&brand.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateName
		}
		r.log.Error("Failed to create brand",
			zap.Error(err),
			zap.String("name", brand.Name),
		)
		return fmt.Errorf("create brand %s: %w", brand.Name, err)
	}

	return nil
}

func (r *brandRepository) FindByID(ctx context.Context, id int64) (*entity.Brand, error) {
	query := `
		SELECT id, name, active, created_at, updated_at
		FROM brands
		WHERE id = $1
	`

	var brand entity.Brand
	err := r.db.QueryRow(ctx, query, id).Scan(
		&brand.ID,
		&brand.Name,
		&brand.Active,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find brand by ID",
			zap.Error(err),
			zap.Int64("brand_id", id),
		)
		return nil, fmt.Errorf("find brand by ID %d: %w", id, err)
	}

	return &brand, nil
}

func (r *brandRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Brand, error) {
	query := `
		SELECT id, name, active, created_at, updated_at
		FROM brands
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all brands", zap.Error(err))
		return nil, fmt.Errorf("find brands: %w", err)
	}
	defer rows.Close()

	var brands []*entity.Brand
	for rows.Next() {
		var brand entity.Brand
		err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.Active,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan brand row", zap.Error(err))
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, &brand)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}

func (r *brandRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM brands`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count brands", zap.Error(err))
		return 0, fmt.Errorf("count brands: %w", err)
	}

	return count, nil
}

func (r *brandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	query := `
		UPDATE brands
		SET name = $2, active = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		brand.ID,
		brand.Name,
		brand.Active,
		brand.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateName
		}
		r.log.Error("Failed to update brand",
			zap.Error(err),
			zap.Int64("brand_id", brand.ID),
		)
		return fmt.Errorf("update brand %d: %w", brand.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM brands WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete brand",
			zap.Error(err),
			zap.Int64("brand_id", id),
		)
		return fmt.Errorf("delete brand %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
