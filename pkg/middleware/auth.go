package middleware

import (
	"net/http"
	"strings"

	"shopstack/pkg/token"
	"shopstack/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer access token and loads the caller's identity
// and role claims into the request context.
func Auth(signer token.Signer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := signer.ParseAccessToken(parts[1])
			if err != nil {
				logger.Warn("Rejected access token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetAccountContext(r.Context(), claims.AccountID, claims.Roles)
			ctx = utils.SetTokenContext(ctx, parts[1])

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose access token does not carry any of
// the given role claims. Must run after Auth.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := utils.GetAccountIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			for _, role := range roles {
				if utils.HasRole(r.Context(), role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Role check: insufficient privileges",
				zap.Int64("account_id", accountID),
				zap.Strings("required_roles", roles),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Insufficient privileges")
		})
	}
}
