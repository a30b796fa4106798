package repository

import (
	"shopstack/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Account       AccountRepository
	Role          RoleRepository
	RecoveryToken RecoveryTokenRepository
	Product       ProductRepository
	Category      CategoryRepository
	Brand         BrandRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Account:       NewAccountRepository(db, log),
		Role:          NewRoleRepository(db, log),
		RecoveryToken: NewRecoveryTokenRepository(db, log),
		Product:       NewProductRepository(db, log),
		Category:      NewCategoryRepository(db, log),
		Brand:         NewBrandRepository(db, log),
	}
}
