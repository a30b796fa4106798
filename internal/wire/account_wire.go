package wire

import (
	"shopstack/internal/adaptor"
	"shopstack/internal/data/entity"
	"shopstack/pkg/middleware"
	"shopstack/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	signer token.Signer,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(signer, log)).
		Get("/api/account/profile", accountHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/accounts", func(admin chi.Router) {
		admin.Use(middleware.Auth(signer, log))
		admin.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		admin.Get("/", accountHandler.GetAllAccounts)
		admin.Put("/{id}/enabled", accountHandler.SetEnabled)
		admin.Post("/{id}/unlock", accountHandler.Unlock)
		admin.Post("/{id}/roles", accountHandler.AssignRole)
		admin.Delete("/{id}/roles/{role}", accountHandler.RemoveRole)
		admin.Delete("/{id}", accountHandler.Deactivate)
	})
}
