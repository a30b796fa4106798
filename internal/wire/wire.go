// internal/wire/wire.go
package wire

import (
	"net/http"

	"shopstack/internal/adaptor"
	"shopstack/internal/data/repository"
	"shopstack/internal/usecase"
	"shopstack/pkg/middleware"
	"shopstack/pkg/token"
	"shopstack/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, signer token.Signer, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, signer, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, signer, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	signer token.Signer,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth)
	wireAccount(r, handler.Account, signer, logger)
	wireCatalog(r, handler, signer, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
