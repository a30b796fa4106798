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

type CategoryService interface {
	Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	GetByID(ctx context.Context, id int64) (*response.CategoryResponse, error)
	GetAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	Update(ctx context.Context, id int64, req *request.CategoryRequest) (*response.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log,
	}
}

func (s *categoryService) Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	category := &entity.Category{
		BaseNoDelete: entity.BaseNoDelete{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		s.log.Error("Failed to create category", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create category")
	}

	s.log.Info("Category created",
		zap.Int64("category_id", category.ID),
		zap.String("name", category.Name))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*response.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find category", zap.Error(err), zap.Int64("category_id", id))
		return nil, fmt.Errorf("failed to get category")
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) GetAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	categories, err := s.categoryRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to get categories")
	}

	total, err := s.categoryRepo.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("failed to count categories")
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.PerPage, total), nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find category for update", zap.Error(err), zap.Int64("category_id", id))
		return nil, fmt.Errorf("failed to update category")
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = req.Name
	category.Description = req.Description
	if req.Active != nil {
		category.Active = *req.Active
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, ErrDuplicateName
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrCategoryNotFound
		}
		s.log.Error("Failed to update category", zap.Error(err), zap.Int64("category_id", id))
		return nil, fmt.Errorf("failed to update category")
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		s.log.Error("Failed to delete category", zap.Error(err), zap.Int64("category_id", id))
		return fmt.Errorf("failed to delete category")
	}

	s.log.Info("Category deleted", zap.Int64("category_id", id))
	return nil
}
