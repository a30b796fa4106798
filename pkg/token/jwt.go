package token

import (
	"errors"
	"strconv"
	"time"

	"shopstack/internal/data/entity"
	"shopstack/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type accessJWTClaims struct {
	AccountID     int64    `json:"account_id"`
	Email         string   `json:"email"`
	Roles         []string `json:"roles"`
	EmailVerified bool     `json:"email_verified"`
	TokenType     string   `json:"token_type"`
	jwt.RegisteredClaims
}

type refreshJWTClaims struct {
	AccountID int64  `json:"account_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTSigner implements Signer with HMAC-SHA256 signed JWTs.
type JWTSigner struct {
	secret            []byte
	issuer            string
	accessExpiry      time.Duration
	refreshExpiry     time.Duration
	longRefreshExpiry time.Duration
}

func NewJWTSigner(config utils.JWTConfig) *JWTSigner {
	return &JWTSigner{
		secret:            []byte(config.Secret),
		issuer:            config.Issuer,
		accessExpiry:      config.AccessExpiry,
		refreshExpiry:     config.RefreshExpiry,
		longRefreshExpiry: config.LongRefreshExpiry,
	}
}

func (s *JWTSigner) MintAccessToken(account *entity.Account, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessExpiry)

	claims := accessJWTClaims{
		AccountID:     account.ID,
		Email:         account.Email,
		Roles:         roles,
		EmailVerified: account.EmailVerified,
		TokenType:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GenerateJTI(),
			Subject:   strconv.FormatInt(account.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *JWTSigner) MintRefreshToken(account *entity.Account, rememberMe bool) (string, time.Time, error) {
	now := time.Now()
	expiry := s.refreshExpiry
	if rememberMe {
		expiry = s.longRefreshExpiry
	}
	expiresAt := now.Add(expiry)

	claims := refreshJWTClaims{
		AccountID: account.ID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GenerateJTI(),
			Subject:   strconv.FormatInt(account.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *JWTSigner) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	var claims accessJWTClaims
	if err := s.parse(tokenString, &claims); err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, ErrTokenWrongType
	}

	return &AccessClaims{
		AccountID:     claims.AccountID,
		Email:         claims.Email,
		Roles:         claims.Roles,
		EmailVerified: claims.EmailVerified,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTSigner) ParseRefreshToken(tokenString string) (*RefreshClaims, error) {
	var claims refreshJWTClaims
	if err := s.parse(tokenString, &claims); err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrTokenWrongType
	}

	return &RefreshClaims{
		AccountID: claims.AccountID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTSigner) parse(tokenString string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}

	if !parsed.Valid {
		return ErrTokenInvalid
	}

	return nil
}
