package wire

import (
	"shopstack/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/refresh", authHandler.Refresh)
	r.Post("/api/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/reset-password", authHandler.ResetPassword)
	r.Post("/api/verify-email", authHandler.VerifyEmail)
	r.Get("/api/email-available", authHandler.EmailAvailable)
}
