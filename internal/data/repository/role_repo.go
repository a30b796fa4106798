package repository

import (
	"context"
	"fmt"

	"shopstack/internal/data/entity"
	"shopstack/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
	FindAll(ctx context.Context) ([]*entity.Role, error)
}

type roleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoleRepository(db database.PgxIface, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "role")),
	}
}

func (r *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM roles
		WHERE name = $1 AND active = true
	`

	var role entity.Role
	err := r.db.QueryRow(ctx, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.Active,
		&role.CreatedAt,
		&role.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find role by name",
			zap.Error(err),
			zap.String("name", string(name)),
		)
		return nil, fmt.Errorf("find role by name %s: %w", name, err)
	}

	return &role, nil
}

func (r *roleRepository) FindAll(ctx context.Context) ([]*entity.Role, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM roles
		WHERE active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all roles", zap.Error(err))
		return nil, fmt.Errorf("find all roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		var role entity.Role
		err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&role.Active,
			&role.CreatedAt,
			&role.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan role row", zap.Error(err))
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate role rows: %w", err)
	}

	return roles, nil
}
