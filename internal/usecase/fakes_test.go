package usecase

import (
	"context"
	"strings"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/internal/data/repository"
	"shopstack/pkg/token"
	"shopstack/pkg/utils"

	"go.uber.org/zap"
)

// In-memory repository fakes mirroring the atomic semantics of the SQL
// implementations.

type fakeAccountRepo struct {
	accounts map[int64]*entity.Account
	roles    map[int64][]*entity.Role
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[int64]*entity.Account),
		roles:    make(map[int64][]*entity.Role),
	}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	for _, existing := range f.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, account := range f.accounts {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Account, error) {
	var all []*entity.Account
	for id := int64(1); id <= f.nextID; id++ {
		if account, ok := f.accounts[id]; ok {
			all = append(all, account)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeAccountRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.accounts)), nil
}

func (f *fakeAccountRepo) RecordFailedLogin(_ context.Context, id int64, threshold int, lockDuration time.Duration) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.FailedLoginCount++
	if account.FailedLoginCount >= threshold {
		lockedUntil := time.Now().Add(lockDuration)
		account.LockedUntil = &lockedUntil
	}
	return nil
}

func (f *fakeAccountRepo) RecordSuccessfulLogin(_ context.Context, id int64) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	account.FailedLoginCount = 0
	account.LockedUntil = nil
	account.LastAccessAt = &now
	return nil
}

func (f *fakeAccountRepo) Unlock(_ context.Context, id int64) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.FailedLoginCount = 0
	account.LockedUntil = nil
	return nil
}

func (f *fakeAccountRepo) SetVerified(_ context.Context, id int64) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.EmailVerified = true
	return nil
}

func (f *fakeAccountRepo) SetActive(_ context.Context, id int64, active bool) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.Active = active
	return nil
}

func (f *fakeAccountRepo) SetPasswordHash(_ context.Context, id int64, hash string) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.PasswordHash = hash
	return nil
}

func (f *fakeAccountRepo) FindRoles(_ context.Context, accountID int64) ([]*entity.Role, error) {
	return f.roles[accountID], nil
}

func (f *fakeAccountRepo) AssignRole(_ context.Context, accountID, roleID int64) error {
	for _, role := range f.roles[accountID] {
		if role.ID == roleID {
			return nil
		}
	}
	for _, role := range testRoles {
		if role.ID == roleID {
			f.roles[accountID] = append(f.roles[accountID], role)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAccountRepo) RemoveRole(_ context.Context, accountID, roleID int64) error {
	assigned := f.roles[accountID]
	idx := -1
	for i, role := range assigned {
		if role.ID == roleID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return repository.ErrRoleNotAssigned
	}
	if len(assigned) == 1 {
		return repository.ErrLastRole
	}
	f.roles[accountID] = append(assigned[:idx], assigned[idx+1:]...)
	return nil
}

var testRoles = []*entity.Role{
	{BaseNoDelete: entity.BaseNoDelete{ID: 1}, Name: entity.RoleAdmin, Active: true},
	{BaseNoDelete: entity.BaseNoDelete{ID: 2}, Name: entity.RoleCustomer, Active: true},
	{BaseNoDelete: entity.BaseNoDelete{ID: 3}, Name: entity.RoleManager, Active: true},
	{BaseNoDelete: entity.BaseNoDelete{ID: 4}, Name: entity.RoleSeller, Active: true},
}

type fakeRoleRepo struct{}

func (fakeRoleRepo) FindByName(_ context.Context, name entity.RoleName) (*entity.Role, error) {
	for _, role := range testRoles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

func (fakeRoleRepo) FindAll(_ context.Context) ([]*entity.Role, error) {
	return testRoles, nil
}

type fakeTokenRepo struct {
	tokens []*entity.RecoveryToken
	nextID int64
}

func (f *fakeTokenRepo) Create(_ context.Context, recoveryToken *entity.RecoveryToken) error {
	f.nextID++
	recoveryToken.ID = f.nextID
	f.tokens = append(f.tokens, recoveryToken)
	return nil
}

func (f *fakeTokenRepo) FindByToken(_ context.Context, tokenString string) (*entity.RecoveryToken, error) {
	for _, t := range f.tokens {
		if t.Token == tokenString {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenRepo) Redeem(_ context.Context, tokenString string, tokenType entity.TokenType) (int64, error) {
	now := time.Now()
	for _, t := range f.tokens {
		if t.Token == tokenString && t.TokenType == tokenType && t.Valid(now) {
			t.Used = true
			return t.AccountID, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (f *fakeTokenRepo) InvalidateActive(_ context.Context, accountID int64, tokenType entity.TokenType) error {
	now := time.Now()
	for _, t := range f.tokens {
		if t.AccountID == accountID && t.TokenType == tokenType && t.Valid(now) {
			t.Used = true
		}
	}
	return nil
}

// latest returns the most recently created token of the given type for the
// account; tests use it to read tokens that production code only logs.
func (f *fakeTokenRepo) latest(accountID int64, tokenType entity.TokenType) *entity.RecoveryToken {
	for i := len(f.tokens) - 1; i >= 0; i-- {
		if f.tokens[i].AccountID == accountID && f.tokens[i].TokenType == tokenType {
			return f.tokens[i]
		}
	}
	return nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "shopstack-test",
			AccessExpiry:      15 * time.Minute,
			RefreshExpiry:     24 * time.Hour,
			LongRefreshExpiry: 720 * time.Hour,
		},
		Lockout: utils.LockoutConfig{
			MaxFailedLogins: 5,
			LockDuration:    time.Hour,
		},
		RecoveryToken: utils.RecoveryTokenConfig{
			PasswordResetTTL:     2 * time.Hour,
			EmailVerificationTTL: 168 * time.Hour,
		},
	}
}

type authFixture struct {
	auth     AuthService
	accounts *fakeAccountRepo
	tokens   *fakeTokenRepo
	signer   token.Signer
	config   *utils.Config
}

func newAuthFixture() *authFixture {
	accounts := newFakeAccountRepo()
	tokens := &fakeTokenRepo{}
	config := testConfig()
	signer := token.NewJWTSigner(config.JWT)

	repo := &repository.Repository{
		Account:       accounts,
		Role:          fakeRoleRepo{},
		RecoveryToken: tokens,
	}

	return &authFixture{
		auth:     NewAuthService(repo, signer, config, zap.NewNop()),
		accounts: accounts,
		tokens:   tokens,
		signer:   signer,
		config:   config,
	}
}
