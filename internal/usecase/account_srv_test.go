package usecase

import (
	"context"
	"testing"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAccountFixture() (AccountService, *fakeAccountRepo) {
	accounts := newFakeAccountRepo()
	return NewAccountService(accounts, fakeRoleRepo{}, zap.NewNop()), accounts
}

func seedAccount(t *testing.T, accounts *fakeAccountRepo, email string, roles ...entity.RoleName) *entity.Account {
	t.Helper()

	account := &entity.Account{
		Email:        email,
		PasswordHash: "irrelevant",
		GivenName:    "Seed",
		FamilyName:   "Account",
		Active:       true,
	}
	require.NoError(t, accounts.Create(context.Background(), account))

	for _, name := range roles {
		for _, role := range testRoles {
			if role.Name == name {
				require.NoError(t, accounts.AssignRole(context.Background(), account.ID, role.ID))
			}
		}
	}
	return account
}

func TestGetProfile(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "profile@example.com", entity.RoleCustomer, entity.RoleSeller)

	profile, err := service.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)

	assert.Equal(t, account.ID, profile.ID)
	assert.ElementsMatch(t, []string{"customer", "seller"}, profile.Roles)
}

func TestGetProfileNotFound(t *testing.T) {
	service, _ := newAccountFixture()

	_, err := service.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetAllAccountsPagination(t *testing.T) {
	service, accounts := newAccountFixture()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		seedAccount(t, accounts, email, entity.RoleCustomer)
	}

	page, err := service.GetAllAccounts(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestSetAccountEnabled(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "toggle@example.com", entity.RoleCustomer)

	require.NoError(t, service.SetAccountEnabled(context.Background(), account.ID, false))
	assert.False(t, account.Active)

	require.NoError(t, service.SetAccountEnabled(context.Background(), account.ID, true))
	assert.True(t, account.Active)
}

func TestSetAccountEnabledNotFound(t *testing.T) {
	service, _ := newAccountFixture()

	err := service.SetAccountEnabled(context.Background(), 999, false)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUnlockAccount(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "locked@example.com", entity.RoleCustomer)

	lockedUntil := time.Now().Add(time.Hour)
	account.FailedLoginCount = 5
	account.LockedUntil = &lockedUntil

	require.NoError(t, service.UnlockAccount(context.Background(), account.ID))

	assert.Equal(t, 0, account.FailedLoginCount)
	assert.Nil(t, account.LockedUntil)
}

func TestAssignAndRemoveRole(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "promote@example.com", entity.RoleCustomer)

	require.NoError(t, service.AssignRole(context.Background(), account.ID, "manager"))

	roles, err := accounts.FindRoles(context.Background(), account.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"customer", "manager"}, entity.RoleNames(roles))

	require.NoError(t, service.RemoveRole(context.Background(), account.ID, "customer"))

	roles, err = accounts.FindRoles(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"manager"}, entity.RoleNames(roles))
}

func TestRemoveLastRole(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "lastrole@example.com", entity.RoleCustomer)

	err := service.RemoveRole(context.Background(), account.ID, "customer")
	assert.ErrorIs(t, err, ErrLastRoleViolation)

	roles, findErr := accounts.FindRoles(context.Background(), account.ID)
	require.NoError(t, findErr)
	assert.Len(t, roles, 1, "role must survive the failed removal")
}

func TestAssignUnknownRole(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "unknown-role@example.com", entity.RoleCustomer)

	err := service.AssignRole(context.Background(), account.ID, "superuser")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRemoveRoleNotAssigned(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "missing-role@example.com", entity.RoleCustomer, entity.RoleSeller)

	err := service.RemoveRole(context.Background(), account.ID, "manager")
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestDeactivateAccount(t *testing.T) {
	service, accounts := newAccountFixture()
	account := seedAccount(t, accounts, "bye@example.com", entity.RoleCustomer)

	require.NoError(t, service.DeactivateAccount(context.Background(), account.ID))
	assert.False(t, account.Active)
}
