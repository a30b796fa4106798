package wire

import (
	"shopstack/internal/adaptor"
	"shopstack/internal/data/entity"
	"shopstack/pkg/middleware"
	"shopstack/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	handler *adaptor.Handler,
	signer token.Signer,
	log *zap.Logger,
) {
	// Catalog writes are staff-only; reads stay public
	staffOnly := func(router chi.Router) chi.Router {
		return router.With(
			middleware.Auth(signer, log),
			middleware.RequireRole(log, string(entity.RoleAdmin), string(entity.RoleManager)),
		)
	}

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products", handler.Product.GetAll)
	r.Get("/api/products/{id}", handler.Product.GetByID)
	r.Get("/api/categories", handler.Category.GetAll)
	r.Get("/api/categories/{id}", handler.Category.GetByID)
	r.Get("/api/brands", handler.Brand.GetAll)
	r.Get("/api/brands/{id}", handler.Brand.GetByID)

	// ==================== STAFF ROUTES ====================
	staffOnly(r).Post("/api/products", handler.Product.Create)
	staffOnly(r).Put("/api/products/{id}", handler.Product.Update)
	staffOnly(r).Delete("/api/products/{id}", handler.Product.Delete)

	staffOnly(r).Post("/api/categories", handler.Category.Create)
	staffOnly(r).Put("/api/categories/{id}", handler.Category.Update)
	staffOnly(r).Delete("/api/categories/{id}", handler.Category.Delete)

	staffOnly(r).Post("/api/brands", handler.Brand.Create)
	staffOnly(r).Put("/api/brands/{id}", handler.Brand.Update)
	staffOnly(r).Delete("/api/brands/{id}", handler.Brand.Delete)
}
