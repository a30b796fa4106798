package usecase

import (
	"context"
	"testing"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Str0ng!pass"

func registerAccount(t *testing.T, fx *authFixture, email string) *entity.Account {
	t.Helper()

	resp, err := fx.auth.Register(context.Background(), &request.RegisterRequest{
		Email:      email,
		Password:   testPassword,
		GivenName:  "Test",
		FamilyName: "User",
	})
	require.NoError(t, err)

	account, err := fx.accounts.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, account)
	return account
}

func TestRegisterAssignsCustomerRole(t *testing.T) {
	fx := newAuthFixture()

	resp, err := fx.auth.Register(context.Background(), &request.RegisterRequest{
		Email:      "New@Example.com",
		Password:   testPassword,
		GivenName:  "New",
		FamilyName: "User",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", resp.Email, "email should be stored lowercase")
	assert.Equal(t, []string{"customer"}, resp.Roles)
	assert.False(t, resp.EmailVerified)

	// A verification token is issued at registration
	verifyToken := fx.tokens.latest(resp.ID, entity.TokenTypeEmailVerification)
	require.NotNil(t, verifyToken)
	assert.True(t, verifyToken.Valid(time.Now()))
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	fx := newAuthFixture()
	registerAccount(t, fx, "user@example.com")

	_, err := fx.auth.Register(context.Background(), &request.RegisterRequest{
		Email:      "USER@EXAMPLE.COM",
		Password:   testPassword,
		GivenName:  "Other",
		FamilyName: "User",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterWeakPassword(t *testing.T) {
	fx := newAuthFixture()

	weak := []string{
		"alllower1!aa",  // no uppercase
		"ALLUPPER1!AA",  // no lowercase
		"NoDigits!here", // no digit
		"NoSymbol1here", // no symbol
	}
	for _, password := range weak {
		_, err := fx.auth.Register(context.Background(), &request.RegisterRequest{
			Email:      "weak@example.com",
			Password:   password,
			GivenName:  "Weak",
			FamilyName: "Password",
		})
		assert.ErrorIs(t, err, ErrPasswordPolicyViolation, "password %q should be rejected", password)
	}
}

func TestLoginSuccess(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "login@example.com")

	session, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "Login@Example.COM",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", session.TokenType)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Greater(t, session.ExpiresIn, int64(0))

	claims, err := fx.signer.ParseAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Contains(t, claims.Roles, "customer")

	assert.NotNil(t, account.LastAccessAt)
}

func TestLoginUnknownEmail(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "lockme@example.com")

	for i := 0; i < 5; i++ {
		_, err := fx.auth.Login(context.Background(), &request.LoginRequest{
			Email:    "lockme@example.com",
			Password: "Wr0ng!pass",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i+1)
	}

	require.NotNil(t, account.LockedUntil)
	assert.WithinDuration(t, time.Now().Add(fx.config.Lockout.LockDuration), *account.LockedUntil, 5*time.Second)

	// Even the correct password is rejected while the lock holds
	_, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "lockme@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLoginAfterLockExpiry(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "expired-lock@example.com")

	past := time.Now().Add(-time.Minute)
	account.FailedLoginCount = 5
	account.LockedUntil = &past

	_, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "expired-lock@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, account.FailedLoginCount, "success should reset the counter")
	assert.Nil(t, account.LockedUntil)
}

func TestLoginDisabledAccount(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "disabled@example.com")
	account.Active = false

	_, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "disabled@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginUnverifiedEmailAllowed(t *testing.T) {
	fx := newAuthFixture()
	registerAccount(t, fx, "unverified@example.com")

	session, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "unverified@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	claims, err := fx.signer.ParseAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.EmailVerified)
}

func TestRefreshToken(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "refresh@example.com")
	account.EmailVerified = true

	session, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "refresh@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	refreshed, err := fx.auth.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: session.RefreshToken,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, refreshed.AccessToken)
	// No rotation: the same refresh token comes back
	assert.Equal(t, session.RefreshToken, refreshed.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "wrong-type@example.com")
	account.EmailVerified = true

	session, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "wrong-type@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	_, err = fx.auth.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: session.AccessToken,
	})
	assert.ErrorIs(t, err, ErrTokenWrongType)
}

func TestRefreshGarbageToken(t *testing.T) {
	fx := newAuthFixture()

	_, err := fx.auth.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: "not-a-jwt",
	})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestRefreshUnverifiedAccountRejected(t *testing.T) {
	fx := newAuthFixture()
	registerAccount(t, fx, "refresh-unverified@example.com")

	session, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "refresh-unverified@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	// Refresh requires the full enabled predicate, unlike login
	_, err = fx.auth.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: session.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	fx := newAuthFixture()

	// Unknown email must not be distinguishable from a known one
	err := fx.auth.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, fx.tokens.tokens, "no token should be issued")
}

func TestResetPasswordFlow(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "reset@example.com")

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "reset@example.com"))
	resetToken := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, resetToken)

	newPassword := "N3w!passw0rd"
	err := fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       resetToken.Token,
		NewPassword: newPassword,
	})
	require.NoError(t, err)

	// Old password no longer works, new one does
	_, err = fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "reset@example.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "reset@example.com",
		Password: newPassword,
	})
	assert.NoError(t, err)
}

func TestResetTokenSingleUse(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "single-use@example.com")

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "single-use@example.com"))
	resetToken := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, resetToken)

	req := &request.ResetPasswordRequest{
		Token:       resetToken.Token,
		NewPassword: "N3w!passw0rd",
	}
	require.NoError(t, fx.auth.ResetPassword(context.Background(), req))

	// Second redemption of the same token fails
	err := fx.auth.ResetPassword(context.Background(), req)
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestResetRequestInvalidatesPreviousToken(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "two-tokens@example.com")

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "two-tokens@example.com"))
	first := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, first)

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "two-tokens@example.com"))
	second := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, second)
	require.NotEqual(t, first.Token, second.Token)

	err := fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       first.Token,
		NewPassword: "N3w!passw0rd",
	})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired, "superseded token must be dead")

	err = fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       second.Token,
		NewPassword: "N3w!passw0rd",
	})
	assert.NoError(t, err)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "expired-token@example.com")

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "expired-token@example.com"))
	resetToken := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, resetToken)
	resetToken.ExpiresAt = time.Now().Add(-time.Minute)

	err := fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       resetToken.Token,
		NewPassword: "N3w!passw0rd",
	})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestResetPasswordRejectsWrongTokenType(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "mixed-type@example.com")

	verifyToken := fx.tokens.latest(account.ID, entity.TokenTypeEmailVerification)
	require.NotNil(t, verifyToken)

	err := fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       verifyToken.Token,
		NewPassword: "N3w!passw0rd",
	})
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)

	// The verification token is still redeemable for its own purpose
	assert.NoError(t, fx.auth.VerifyEmail(context.Background(), verifyToken.Token))
}

func TestResetPasswordWeakPasswordKeepsToken(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "weak-reset@example.com")

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "weak-reset@example.com"))
	resetToken := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, resetToken)

	err := fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       resetToken.Token,
		NewPassword: "weakpassword",
	})
	assert.ErrorIs(t, err, ErrPasswordPolicyViolation)
	assert.False(t, resetToken.Used, "policy failure must not burn the token")
}

func TestResetPasswordClearsLockout(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "locked-reset@example.com")

	for i := 0; i < 5; i++ {
		fx.auth.Login(context.Background(), &request.LoginRequest{
			Email:    "locked-reset@example.com",
			Password: "Wr0ng!pass",
		})
	}
	require.NotNil(t, account.LockedUntil)

	require.NoError(t, fx.auth.RequestPasswordReset(context.Background(), "locked-reset@example.com"))
	resetToken := fx.tokens.latest(account.ID, entity.TokenTypePasswordReset)
	require.NotNil(t, resetToken)

	newPassword := "Unl0ck!me"
	require.NoError(t, fx.auth.ResetPassword(context.Background(), &request.ResetPasswordRequest{
		Token:       resetToken.Token,
		NewPassword: newPassword,
	}))

	_, err := fx.auth.Login(context.Background(), &request.LoginRequest{
		Email:    "locked-reset@example.com",
		Password: newPassword,
	})
	assert.NoError(t, err, "reset proves email control and lifts the lock")
}

func TestVerifyEmail(t *testing.T) {
	fx := newAuthFixture()
	account := registerAccount(t, fx, "verify@example.com")

	verifyToken := fx.tokens.latest(account.ID, entity.TokenTypeEmailVerification)
	require.NotNil(t, verifyToken)

	require.NoError(t, fx.auth.VerifyEmail(context.Background(), verifyToken.Token))
	assert.True(t, account.EmailVerified)

	// Single use applies here too
	err := fx.auth.VerifyEmail(context.Background(), verifyToken.Token)
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestEmailAvailable(t *testing.T) {
	fx := newAuthFixture()
	registerAccount(t, fx, "taken@example.com")

	available, err := fx.auth.EmailAvailable(context.Background(), "Taken@Example.com")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = fx.auth.EmailAvailable(context.Background(), "free@example.com")
	require.NoError(t, err)
	assert.True(t, available)
}
