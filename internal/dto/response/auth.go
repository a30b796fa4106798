package response

import (
	"time"

	"shopstack/internal/data/entity"
)

type AccountResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone,omitempty"`
	Active        bool      `json:"active"`
	EmailVerified bool      `json:"email_verified"`
	Roles         []string  `json:"roles"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int64           `json:"expires_in"`
	ExpiresAt    time.Time       `json:"expires_at"`
	Account      AccountResponse `json:"account"`
	Roles        []string        `json:"roles"`
}

type EmailAvailableResponse struct {
	Available bool `json:"available"`
}

// Helper converters
func AccountToResponse(account *entity.Account, roles []*entity.Role) AccountResponse {
	return AccountResponse{
		ID:            account.ID,
		Email:         account.Email,
		FullName:      account.FullName(),
		Phone:         account.Phone,
		Active:        account.Active,
		EmailVerified: account.EmailVerified,
		Roles:         entity.RoleNames(roles),
		CreatedAt:     account.CreatedAt,
	}
}

func AuthToResponse(account *entity.Account, roles []*entity.Role, accessToken, refreshToken string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(time.Until(expiresAt).Seconds()),
		ExpiresAt:    expiresAt,
		Account:      AccountToResponse(account, roles),
		Roles:        entity.RoleNames(roles),
	}
}
