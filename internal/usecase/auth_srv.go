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
	"shopstack/pkg/token"
	"shopstack/pkg/utils"

	"go.uber.org/zap"
)

// AuthService is the single entry point coordinating the account store, the
// recovery token ledger and the token signer. All cross-cutting auth policy
// lives here.
type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AccountResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	VerifyEmail(ctx context.Context, tokenString string) error
	EmailAvailable(ctx context.Context, email string) (bool, error)
}

type authService struct {
	repo   *repository.Repository // account, role & recovery token repos
	signer token.Signer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	signer token.Signer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		signer: signer,
		config: config,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AccountResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	// 2. Password policy gate (pure check, before any writes)
	if !utils.ValidatePasswordPolicy(req.Password) {
		return nil, ErrPasswordPolicyViolation
	}

	// 3. Check email not taken
	existing, err := s.repo.Account.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	var birthDate *time.Time
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("validation failed: birth_date: invalid date")
		}
		birthDate = &parsed
	}

	// 5. Create account entity
	now := time.Now()
	account := &entity.Account{
		BaseNoDelete: entity.BaseNoDelete{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:            email,
		PasswordHash:     hashedPassword,
		GivenName:        req.GivenName,
		FamilyName:       req.FamilyName,
		Phone:            req.Phone,
		BirthDate:        birthDate,
		Active:           true,
		EmailVerified:    false,
		FailedLoginCount: 0,
	}

	// 6. Save account (unique index catches the register/register race)
	if err := s.repo.Account.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	// 7. Attach the default customer role
	customerRole, err := s.repo.Role.FindByName(ctx, entity.RoleCustomer)
	if err != nil || customerRole == nil {
		s.log.Error("Failed to resolve customer role", zap.Error(err))
		return nil, fmt.Errorf("failed to create account")
	}
	if err := s.repo.Account.AssignRole(ctx, account.ID, customerRole.ID); err != nil {
		s.log.Error("Failed to assign default role", zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to create account")
	}

	// 8. Issue email verification token. Delivery is someone else's job,
	// the token only shows up in logs here.
	verifyToken, err := s.issueToken(ctx, account.ID, entity.TokenTypeEmailVerification, s.config.RecoveryToken.EmailVerificationTTL)
	if err != nil {
		s.log.Warn("Failed to issue verification token",
			zap.Error(err), zap.Int64("account_id", account.ID))
		// Registration stands; the token can be re-requested
	} else {
		s.log.Info("Email verification token issued",
			zap.Int64("account_id", account.ID),
			zap.String("token", verifyToken.Token),
			zap.Time("expires_at", verifyToken.ExpiresAt),
		)
	}

	s.log.Info("Account registered",
		zap.Int64("account_id", account.ID),
		zap.String("email", account.Email))

	resp := response.AccountToResponse(account, []*entity.Role{customerRole})
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find account by normalized email
	account, err := s.repo.Account.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		s.log.Error("Failed to find account", zap.Error(err))
		return nil, fmt.Errorf("failed to find account")
	}

	// 3. Unknown email reads exactly like a bad password
	if account == nil {
		s.log.Warn("Login attempt for unknown email")
		return nil, ErrInvalidCredentials
	}

	// 4. Lockout check comes before the password check, so a locked
	// account never leaks whether the password was correct.
	if account.Locked(time.Now()) {
		s.log.Warn("Login attempt on locked account",
			zap.Int64("account_id", account.ID),
			zap.Timep("locked_until", account.LockedUntil))
		return nil, ErrAccountLocked
	}

	// 5. Check password; a mismatch counts towards the lockout threshold
	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		if err := s.repo.Account.RecordFailedLogin(ctx, account.ID,
			s.config.Lockout.MaxFailedLogins, s.config.Lockout.LockDuration); err != nil {
			s.log.Error("Failed to record failed login",
				zap.Error(err), zap.Int64("account_id", account.ID))
		}
		s.log.Warn("Invalid password", zap.Int64("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	// 6. Disabled accounts are rejected after the password verifies, as
	// a distinct state. Unverified email does not block login; the
	// claims expose the flag for downstream enforcement.
	if !account.Active {
		s.log.Warn("Disabled account tried to login", zap.Int64("account_id", account.ID))
		return nil, ErrAccountDisabled
	}

	// 7. Success resets the lockout counters
	if err := s.repo.Account.RecordSuccessfulLogin(ctx, account.ID); err != nil {
		s.log.Error("Failed to record successful login",
			zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to complete login")
	}

	// 8. Mint session tokens with role claims
	roles, err := s.repo.Account.FindRoles(ctx, account.ID)
	if err != nil {
		s.log.Error("Failed to load roles", zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to complete login")
	}

	resp, err := s.mintSession(account, roles, req.RememberMe)
	if err != nil {
		s.log.Error("Failed to mint session tokens",
			zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to complete login")
	}

	s.log.Info("Account logged in",
		zap.Int64("account_id", account.ID),
		zap.String("email", account.Email))

	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. The signer checks shape, signature, expiry and token type
	claims, err := s.signer.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenWrongType) {
			return nil, ErrTokenWrongType
		}
		return nil, ErrTokenInvalidOrExpired
	}

	// 3. Reload the account so revocations and role changes apply
	account, err := s.repo.Account.FindByID(ctx, claims.AccountID)
	if err != nil {
		s.log.Error("Failed to load account for refresh",
			zap.Error(err), zap.Int64("account_id", claims.AccountID))
		return nil, fmt.Errorf("failed to refresh token")
	}
	if account == nil || !account.Enabled(time.Now()) {
		return nil, ErrAccountDisabled
	}

	roles, err := s.repo.Account.FindRoles(ctx, account.ID)
	if err != nil {
		s.log.Error("Failed to load roles for refresh",
			zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to refresh token")
	}

	// 4. New access token, same refresh token (no rotation)
	accessToken, expiresAt, err := s.signer.MintAccessToken(account, entity.RoleNames(roles))
	if err != nil {
		s.log.Error("Failed to mint access token",
			zap.Error(err), zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("failed to refresh token")
	}

	resp := response.AuthToResponse(account, roles, accessToken, req.RefreshToken, expiresAt)
	return &resp, nil
}

// RequestPasswordReset always reports success to the caller so the endpoint
// cannot be used to enumerate registered emails.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.repo.Account.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		s.log.Error("Failed to look up account for password reset", zap.Error(err))
		return fmt.Errorf("failed to request password reset")
	}
	if account == nil {
		s.log.Info("Password reset requested for unknown email")
		return nil
	}

	resetToken, err := s.issueToken(ctx, account.ID, entity.TokenTypePasswordReset, s.config.RecoveryToken.PasswordResetTTL)
	if err != nil {
		s.log.Error("Failed to issue reset token",
			zap.Error(err), zap.Int64("account_id", account.ID))
		return fmt.Errorf("failed to request password reset")
	}

	s.log.Info("Password reset token issued",
		zap.Int64("account_id", account.ID),
		zap.String("token", resetToken.Token),
		zap.Time("expires_at", resetToken.ExpiresAt),
	)

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Policy gate before touching the ledger so a weak password does
	// not burn the token
	if !utils.ValidatePasswordPolicy(req.NewPassword) {
		return ErrPasswordPolicyViolation
	}

	// 3. Redeem: one-shot, marks the token used
	accountID, err := s.repo.RecoveryToken.Redeem(ctx, req.Token, entity.TokenTypePasswordReset)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTokenInvalidOrExpired
		}
		s.log.Error("Failed to redeem reset token", zap.Error(err))
		return fmt.Errorf("failed to reset password")
	}

	// 4. Store the new hash
	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to reset password")
	}
	if err := s.repo.Account.SetPasswordHash(ctx, accountID, hashedPassword); err != nil {
		s.log.Error("Failed to set new password",
			zap.Error(err), zap.Int64("account_id", accountID))
		return fmt.Errorf("failed to reset password")
	}

	// 5. A successful reset proves control of the email, so it also
	// clears any lockout
	if err := s.repo.Account.Unlock(ctx, accountID); err != nil {
		s.log.Error("Failed to clear lockout after reset",
			zap.Error(err), zap.Int64("account_id", accountID))
		return fmt.Errorf("failed to reset password")
	}

	s.log.Info("Password reset completed", zap.Int64("account_id", accountID))
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, tokenString string) error {
	accountID, err := s.repo.RecoveryToken.Redeem(ctx, tokenString, entity.TokenTypeEmailVerification)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTokenInvalidOrExpired
		}
		s.log.Error("Failed to redeem verification token", zap.Error(err))
		return fmt.Errorf("failed to verify email")
	}

	if err := s.repo.Account.SetVerified(ctx, accountID); err != nil {
		s.log.Error("Failed to mark email verified",
			zap.Error(err), zap.Int64("account_id", accountID))
		return fmt.Errorf("failed to verify email")
	}

	s.log.Info("Email verified", zap.Int64("account_id", accountID))
	return nil
}

func (s *authService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	account, err := s.repo.Account.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		s.log.Error("Failed to check email availability", zap.Error(err))
		return false, fmt.Errorf("failed to check email")
	}
	return account == nil, nil
}

// ==================== HELPER METHODS ====================

// issueToken voids any live token of the same type first, so at most one
// token per type is redeemable per account at any moment.
func (s *authService) issueToken(ctx context.Context, accountID int64, tokenType entity.TokenType, ttl time.Duration) (*entity.RecoveryToken, error) {
	if err := s.repo.RecoveryToken.InvalidateActive(ctx, accountID, tokenType); err != nil {
		return nil, err
	}

	opaque, err := utils.GenerateRecoveryToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recoveryToken := &entity.RecoveryToken{
		BaseSimple: entity.BaseSimple{
			CreatedAt: now,
		},
		AccountID: accountID,
		Token:     opaque,
		TokenType: tokenType,
		ExpiresAt: now.Add(ttl),
		Used:      false,
	}

	if err := s.repo.RecoveryToken.Create(ctx, recoveryToken); err != nil {
		return nil, err
	}

	return recoveryToken, nil
}

func (s *authService) mintSession(account *entity.Account, roles []*entity.Role, rememberMe bool) (*response.AuthResponse, error) {
	roleNames := entity.RoleNames(roles)

	accessToken, expiresAt, err := s.signer.MintAccessToken(account, roleNames)
	if err != nil {
		return nil, err
	}

	refreshToken, _, err := s.signer.MintRefreshToken(account, rememberMe)
	if err != nil {
		return nil, err
	}

	resp := response.AuthToResponse(account, roles, accessToken, refreshToken, expiresAt)
	return &resp, nil
}
