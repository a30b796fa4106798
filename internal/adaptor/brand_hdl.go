package adaptor

import (
	"encoding/json"
	"net/http"

	"shopstack/internal/dto/request"
	"shopstack/internal/usecase"
	"shopstack/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BrandHandler struct {
	service usecase.BrandService
	log     *zap.Logger
}

func NewBrandHandler(service usecase.BrandService, log *zap.Logger) *BrandHandler {
	return &BrandHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/brands
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.BrandRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	brand, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create brand")
		return
	}

	utils.ResponseCreated(w, "Brand created", brand)
}

// GetByID handles GET /api/brands/{id}
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	brandID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid brand ID", nil)
		return
	}

	brand, err := h.service.GetByID(r.Context(), brandID)
	if err != nil {
		handleServiceError(w, h.log, err, "get brand")
		return
	}

	utils.ResponseSuccess(w, "Brand retrieved", brand)
}

// GetAll handles GET /api/brands
func (h *BrandHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	brands, err := h.service.GetAll(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get brands")
		return
	}

	utils.ResponseSuccess(w, "Brands retrieved", brands)
}

// Update handles PUT /api/brands/{id}
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	brandID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid brand ID", nil)
		return
	}

	var req request.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	brand, err := h.service.Update(r.Context(), brandID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update brand")
		return
	}

	utils.ResponseSuccess(w, "Brand updated", brand)
}

// Delete handles DELETE /api/brands/{id}
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	brandID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid brand ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), brandID); err != nil {
		handleServiceError(w, h.log, err, "delete brand")
		return
	}

	utils.ResponseSuccess(w, "Brand deleted", nil)
}
