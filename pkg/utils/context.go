package utils

import (
	"context"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	RolesKey     contextKey = "roles"
	TokenKey     contextKey = "token"
)

func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	idVal := ctx.Value(AccountIDKey)
	if idVal == nil {
		return 0, false
	}

	id, ok := idVal.(int64)
	return id, ok
}

func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	rolesVal := ctx.Value(RolesKey)
	if rolesVal == nil {
		return nil, false
	}

	roles, ok := rolesVal.([]string)
	return roles, ok
}

// HasRole reports whether the authenticated caller carries the given role claim.
func HasRole(ctx context.Context, role string) bool {
	roles, ok := GetRolesFromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func SetAccountContext(ctx context.Context, accountID int64, roles []string) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, accountID)
	ctx = context.WithValue(ctx, RolesKey, roles)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
