package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"shopstack/internal/usecase"
	"shopstack/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Account  *AccountHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Brand    *BrandHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Account:  NewAccountHandler(service.Account, log),
		Product:  NewProductHandler(service.Product, log),
		Category: NewCategoryHandler(service.Category, log),
		Brand:    NewBrandHandler(service.Brand, log),
	}
}

// handleServiceError translates service failures into HTTP responses.
// Typed errors carry their code through to the envelope; anything else
// is an opaque 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *usecase.Error
	if errors.As(err, &svcErr) {
		log.Warn(operation+" failed",
			zap.String("code", svcErr.Code),
			zap.String("message", svcErr.Message))
		utils.ResponseErrorCode(w, statusForCode(svcErr.Code), svcErr.Code, svcErr.Message)
		return
	}

	if strings.Contains(err.Error(), "validation failed") {
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}

func statusForCode(code string) int {
	switch code {
	case "INVALID_CREDENTIALS", "TOKEN_INVALID_OR_EXPIRED", "TOKEN_WRONG_TYPE":
		return http.StatusUnauthorized
	case "ACCOUNT_DISABLED":
		return http.StatusForbidden
	case "ACCOUNT_LOCKED":
		return http.StatusLocked
	case "ACCOUNT_NOT_FOUND", "ROLE_NOT_FOUND",
		"PRODUCT_NOT_FOUND", "CATEGORY_NOT_FOUND", "BRAND_NOT_FOUND":
		return http.StatusNotFound
	case "DUPLICATE_EMAIL", "DUPLICATE_SKU", "DUPLICATE_NAME", "LAST_ROLE_VIOLATION":
		return http.StatusConflict
	case "PASSWORD_POLICY_VIOLATION":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
