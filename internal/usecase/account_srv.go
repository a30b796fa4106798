package usecase

import (
	"context"
	"errors"
	"fmt"

	"shopstack/internal/data/entity"
	"shopstack/internal/data/repository"
	"shopstack/internal/dto/request"
	"shopstack/internal/dto/response"

	"go.uber.org/zap"
)

// AccountService covers the profile view and the administrative
// pass-throughs to the account store.
type AccountService interface {
	GetProfile(ctx context.Context, accountID int64) (*response.AccountResponse, error)
	GetAllAccounts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccountResponse], error)
	SetAccountEnabled(ctx context.Context, accountID int64, enabled bool) error
	UnlockAccount(ctx context.Context, accountID int64) error
	AssignRole(ctx context.Context, accountID int64, roleName string) error
	RemoveRole(ctx context.Context, accountID int64, roleName string) error
	DeactivateAccount(ctx context.Context, accountID int64) error
}

type accountService struct {
	accountRepo repository.AccountRepository
	roleRepo    repository.RoleRepository
	log         *zap.Logger
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	log *zap.Logger,
) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		roleRepo:    roleRepo,
		log:         log,
	}
}

func (s *accountService) GetProfile(ctx context.Context, accountID int64) (*response.AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		s.log.Error("Failed to find account", zap.Error(err), zap.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to get profile")
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	roles, err := s.accountRepo.FindRoles(ctx, accountID)
	if err != nil {
		s.log.Error("Failed to load roles", zap.Error(err), zap.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to get profile")
	}

	resp := response.AccountToResponse(account, roles)
	return &resp, nil
}

func (s *accountService) GetAllAccounts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AccountResponse], error) {
	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	accounts, err := s.accountRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all accounts",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("failed to get accounts")
	}

	total, err := s.accountRepo.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count accounts", zap.Error(err))
		return nil, fmt.Errorf("failed to count accounts")
	}

	accountResponses := make([]response.AccountResponse, len(accounts))
	for i, account := range accounts {
		roles, err := s.accountRepo.FindRoles(ctx, account.ID)
		if err != nil {
			s.log.Error("Failed to load roles", zap.Error(err), zap.Int64("account_id", account.ID))
			return nil, fmt.Errorf("failed to get accounts")
		}
		accountResponses[i] = response.AccountToResponse(account, roles)
	}

	return response.NewPaginatedResponse(accountResponses, req.Page, req.PerPage, total), nil
}

func (s *accountService) SetAccountEnabled(ctx context.Context, accountID int64, enabled bool) error {
	if err := s.accountRepo.SetActive(ctx, accountID, enabled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		s.log.Error("Failed to set account enabled flag",
			zap.Error(err), zap.Int64("account_id", accountID), zap.Bool("enabled", enabled))
		return fmt.Errorf("failed to update account")
	}

	s.log.Info("Account enabled flag changed",
		zap.Int64("account_id", accountID), zap.Bool("enabled", enabled))
	return nil
}

func (s *accountService) UnlockAccount(ctx context.Context, accountID int64) error {
	if err := s.accountRepo.Unlock(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		s.log.Error("Failed to unlock account", zap.Error(err), zap.Int64("account_id", accountID))
		return fmt.Errorf("failed to unlock account")
	}

	s.log.Info("Account unlocked by administrator", zap.Int64("account_id", accountID))
	return nil
}

func (s *accountService) AssignRole(ctx context.Context, accountID int64, roleName string) error {
	role, err := s.roleRepo.FindByName(ctx, entity.RoleName(roleName))
	if err != nil {
		s.log.Error("Failed to look up role", zap.Error(err), zap.String("role", roleName))
		return fmt.Errorf("failed to assign role")
	}
	if role == nil {
		return ErrRoleNotFound
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		s.log.Error("Failed to find account", zap.Error(err), zap.Int64("account_id", accountID))
		return fmt.Errorf("failed to assign role")
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if err := s.accountRepo.AssignRole(ctx, accountID, role.ID); err != nil {
		s.log.Error("Failed to assign role",
			zap.Error(err), zap.Int64("account_id", accountID), zap.String("role", roleName))
		return fmt.Errorf("failed to assign role")
	}

	s.log.Info("Role assigned",
		zap.Int64("account_id", accountID), zap.String("role", roleName))
	return nil
}

func (s *accountService) RemoveRole(ctx context.Context, accountID int64, roleName string) error {
	role, err := s.roleRepo.FindByName(ctx, entity.RoleName(roleName))
	if err != nil {
		s.log.Error("Failed to look up role", zap.Error(err), zap.String("role", roleName))
		return fmt.Errorf("failed to remove role")
	}
	if role == nil {
		return ErrRoleNotFound
	}

	if err := s.accountRepo.RemoveRole(ctx, accountID, role.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrLastRole):
			return ErrLastRoleViolation
		case errors.Is(err, repository.ErrRoleNotAssigned):
			return ErrRoleNotFound
		}
		s.log.Error("Failed to remove role",
			zap.Error(err), zap.Int64("account_id", accountID), zap.String("role", roleName))
		return fmt.Errorf("failed to remove role")
	}

	s.log.Info("Role removed",
		zap.Int64("account_id", accountID), zap.String("role", roleName))
	return nil
}

// DeactivateAccount is the deletion path: accounts are never hard-deleted.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID int64) error {
	return s.SetAccountEnabled(ctx, accountID, false)
}
