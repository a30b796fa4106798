package token

import (
	"errors"
	"time"

	"shopstack/internal/data/entity"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenWrongType = errors.New("token is of the wrong type")
)

// AccessClaims is what the auth middleware sees after validating a bearer token.
type AccessClaims struct {
	AccountID     int64
	Email         string
	Roles         []string
	EmailVerified bool
	ExpiresAt     time.Time
}

// RefreshClaims carries only the subject identity; the account is reloaded
// on refresh so revocations and role changes take effect.
type RefreshClaims struct {
	AccountID int64
	ExpiresAt time.Time
}

// Signer mints and validates bearer tokens. The auth service depends only on
// this contract, not on the JWT implementation.
type Signer interface {
	MintAccessToken(account *entity.Account, roles []string) (string, time.Time, error)
	MintRefreshToken(account *entity.Account, rememberMe bool) (string, time.Time, error)
	ParseAccessToken(tokenString string) (*AccessClaims, error)
	ParseRefreshToken(tokenString string) (*RefreshClaims, error)
}
