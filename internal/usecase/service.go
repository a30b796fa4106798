package usecase

import (
	"shopstack/internal/data/repository"
	"shopstack/pkg/token"
	"shopstack/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Account  AccountService
	Product  ProductService
	Category CategoryService
	Brand    BrandService
}

func NewService(repo *repository.Repository, signer token.Signer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, signer, config, log),
		Account:  NewAccountService(repo.Account, repo.Role, log),
		Product:  NewProductService(repo.Product, repo.Category, repo.Brand, log),
		Category: NewCategoryService(repo.Category, log),
		Brand:    NewBrandService(repo.Brand, log),
	}
}
