package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/internal/data/repository"
	"shopstack/internal/dto/request"
	"shopstack/internal/dto/response"
	"shopstack/pkg/utils"

	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*response.ProductResponse, error)
	GetAll(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	Update(ctx context.Context, id int64, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	log          *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	log *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		log:          log,
	}
}

func (s *productService) Create(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check referenced category/brand exist
	if err := s.checkReferences(ctx, req.CategoryID, req.BrandID); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	// 3. Create entity
	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Active:      active,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateSKU) {
			return nil, ErrDuplicateSKU
		}
		s.log.Error("Failed to create product", zap.Error(err), zap.String("sku", req.SKU))
		return nil, fmt.Errorf("failed to create product")
	}

	s.log.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("sku", product.SKU))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*response.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find product", zap.Error(err), zap.Int64("product_id", id))
		return nil, fmt.Errorf("failed to get product")
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetAll(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	filter := repository.ProductFilter{
		Search:     req.Search,
		CategoryID: req.CategoryID,
		BrandID:    req.BrandID,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		Active:     req.Active,
	}

	products, err := s.productRepo.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list products",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("failed to get products")
	}

	total, err := s.productRepo.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("failed to count products")
	}

	productResponses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		productResponses[i] = response.ProductToResponse(product)
	}

	return response.NewPaginatedResponse(productResponses, req.Page, req.PerPage, total), nil
}

func (s *productService) Update(ctx context.Context, id int64, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Load current state
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find product for update", zap.Error(err), zap.Int64("product_id", id))
		return nil, fmt.Errorf("failed to update product")
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	// 3. Apply partial update
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.PriceCents != nil {
		product.PriceCents = *req.PriceCents
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.checkReferences(ctx, product.CategoryID, product.BrandID); err != nil {
		return nil, err
	}

	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateSKU):
			return nil, ErrDuplicateSKU
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProductNotFound
		}
		s.log.Error("Failed to update product", zap.Error(err), zap.Int64("product_id", id))
		return nil, fmt.Errorf("failed to update product")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		s.log.Error("Failed to delete product", zap.Error(err), zap.Int64("product_id", id))
		return fmt.Errorf("failed to delete product")
	}

	s.log.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *productService) checkReferences(ctx context.Context, categoryID, brandID *int64) error {
	if categoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *categoryID)
		if err != nil {
			s.log.Error("Failed to check category", zap.Error(err), zap.Int64("category_id", *categoryID))
			return fmt.Errorf("failed to check category")
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}

	if brandID != nil {
		brand, err := s.brandRepo.FindByID(ctx, *brandID)
		if err != nil {
			s.log.Error("Failed to check brand", zap.Error(err), zap.Int64("brand_id", *brandID))
			return fmt.Errorf("failed to check brand")
		}
		if brand == nil {
			return ErrBrandNotFound
		}
	}

	return nil
}
