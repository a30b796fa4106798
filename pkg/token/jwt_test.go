package token

import (
	"testing"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigner() *JWTSigner {
	return NewJWTSigner(utils.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "shopstack-test",
		AccessExpiry:      15 * time.Minute,
		RefreshExpiry:     24 * time.Hour,
		LongRefreshExpiry: 720 * time.Hour,
	})
}

func testAccount() *entity.Account {
	return &entity.Account{
		BaseNoDelete:  entity.BaseNoDelete{ID: 42},
		Email:         "claims@example.com",
		EmailVerified: true,
		Active:        true,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	signer := testSigner()
	account := testAccount()

	signed, expiresAt, err := signer.MintAccessToken(account, []string{"customer", "seller"})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := signer.ParseAccessToken(signed)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "claims@example.com", claims.Email)
	assert.Equal(t, []string{"customer", "seller"}, claims.Roles)
	assert.True(t, claims.EmailVerified)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	signer := testSigner()
	account := testAccount()

	signed, _, err := signer.MintRefreshToken(account, false)
	require.NoError(t, err)

	claims, err := signer.ParseRefreshToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
}

func TestRememberMeExtendsRefreshExpiry(t *testing.T) {
	signer := testSigner()
	account := testAccount()

	_, short, err := signer.MintRefreshToken(account, false)
	require.NoError(t, err)
	_, long, err := signer.MintRefreshToken(account, true)
	require.NoError(t, err)

	assert.True(t, long.After(short.Add(24*time.Hour)))
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	signer := testSigner()
	account := testAccount()

	access, _, err := signer.MintAccessToken(account, nil)
	require.NoError(t, err)
	refresh, _, err := signer.MintRefreshToken(account, false)
	require.NoError(t, err)

	_, err = signer.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenWrongType)

	_, err = signer.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenWrongType)
}

func TestParseExpiredToken(t *testing.T) {
	signer := NewJWTSigner(utils.JWTConfig{
		Secret:       "unit-test-secret",
		Issuer:       "shopstack-test",
		AccessExpiry: -time.Minute,
	})

	signed, _, err := signer.MintAccessToken(testAccount(), nil)
	require.NoError(t, err)

	_, err = signer.ParseAccessToken(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	signed, _, err := testSigner().MintAccessToken(testAccount(), nil)
	require.NoError(t, err)

	other := NewJWTSigner(utils.JWTConfig{
		Secret:       "different-secret",
		Issuer:       "shopstack-test",
		AccessExpiry: 15 * time.Minute,
	})

	_, err = other.ParseAccessToken(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseGarbage(t *testing.T) {
	_, err := testSigner().ParseAccessToken("definitely.not.ajwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
