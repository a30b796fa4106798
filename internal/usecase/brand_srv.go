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

type BrandService interface {
	Create(ctx context.Context, req *request.BrandRequest) (*response.BrandResponse, error)
	GetByID(ctx context.Context, id int64) (*response.BrandResponse, error)
	GetAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BrandResponse], error)
	Update(ctx context.Context, id int64, req *request.BrandRequest) (*response.BrandResponse, error)
	Delete(ctx context.Context, id int64) error
}

type brandService struct {
	brandRepo repository.BrandRepository
	log       *zap.Logger
}

func NewBrandService(brandRepo repository.BrandRepository, log *zap.Logger) BrandService {
	return &brandService{
		brandRepo: brandRepo,
		log:       log,
	}
}

func (s *brandService) Create(ctx context.Context, req *request.BrandRequest) (*response.BrandResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Brand validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	brand := &entity.Brand{
		BaseNoDelete: entity.BaseNoDelete{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   req.Name,
		Active: active,
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		s.log.Error("Failed to create brand", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create brand")
	}

	s.log.Info("Brand created",
		zap.Int64("brand_id", brand.ID),
		zap.String("name", brand.Name))

	resp := response.BrandToResponse(brand)
	return &resp, nil
}

func (s *brandService) GetByID(ctx context.Context, id int64) (*response.BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find brand", zap.Error(err), zap.Int64("brand_id", id))
		return nil, fmt.Errorf("failed to get brand")
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	resp := response.BrandToResponse(brand)
	return &resp, nil
}

func (s *brandService) GetAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BrandResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	brands, err := s.brandRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list brands", zap.Error(err))
		return nil, fmt.Errorf("failed to get brands")
	}

	total, err := s.brandRepo.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count brands", zap.Error(err))
		return nil, fmt.Errorf("failed to count brands")
	}

	brandResponses := make([]response.BrandResponse, len(brands))
	for i, brand := range brands {
		brandResponses[i] = response.BrandToResponse(brand)
	}

	return response.NewPaginatedResponse(brandResponses, req.Page, req.PerPage, total), nil
}

func (s *brandService) Update(ctx context.Context, id int64, req *request.BrandRequest) (*response.BrandResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find brand for update", zap.Error(err), zap.Int64("brand_id", id))
		return nil, fmt.Errorf("failed to update brand")
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	brand.Name = req.Name
	if req.Active != nil {
		brand.Active = *req.Active
	}
	brand.UpdatedAt = time.Now()

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, ErrDuplicateName
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrBrandNotFound
		}
		s.log.Error("Failed to update brand", zap.Error(err), zap.Int64("brand_id", id))
		return nil, fmt.Errorf("failed to update brand")
	}

	resp := response.BrandToResponse(brand)
	return &resp, nil
}

func (s *brandService) Delete(ctx context.Context, id int64) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBrandNotFound
		}
		s.log.Error("Failed to delete brand", zap.Error(err), zap.Int64("brand_id", id))
		return fmt.Errorf("failed to delete brand")
	}

	s.log.Info("Brand deleted", zap.Int64("brand_id", id))
	return nil
}
