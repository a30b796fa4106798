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

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/account/profile
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", profile)
}

// GetAllAccounts handles GET /api/admin/accounts
func (h *AccountHandler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	accounts, err := h.service.GetAllAccounts(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get accounts")
		return
	}

	utils.ResponseSuccess(w, "Accounts retrieved", accounts)
}

// SetEnabled handles PUT /api/admin/accounts/{id}/enabled
func (h *AccountHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	var req request.SetEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SetAccountEnabled(r.Context(), accountID, *req.Enabled); err != nil {
		handleServiceError(w, h.log, err, "set account enabled")
		return
	}

	utils.ResponseSuccess(w, "Account updated", nil)
}

// Unlock handles POST /api/admin/accounts/{id}/unlock
func (h *AccountHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	if err := h.service.UnlockAccount(r.Context(), accountID); err != nil {
		handleServiceError(w, h.log, err, "unlock account")
		return
	}

	utils.ResponseSuccess(w, "Account unlocked", nil)
}

// AssignRole handles POST /api/admin/accounts/{id}/roles
func (h *AccountHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	var req request.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AssignRole(r.Context(), accountID, req.Role); err != nil {
		handleServiceError(w, h.log, err, "assign role")
		return
	}

	utils.ResponseSuccess(w, "Role assigned", nil)
}

// RemoveRole handles DELETE /api/admin/accounts/{id}/roles/{role}
func (h *AccountHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	role := chi.URLParam(r, "role")
	if role == "" {
		utils.ResponseBadRequest(w, "Missing role", nil)
		return
	}

	if err := h.service.RemoveRole(r.Context(), accountID, role); err != nil {
		handleServiceError(w, h.log, err, "remove role")
		return
	}

	utils.ResponseSuccess(w, "Role removed", nil)
}

// Deactivate handles DELETE /api/admin/accounts/{id}
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.ParseInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid account ID", nil)
		return
	}

	if err := h.service.DeactivateAccount(r.Context(), accountID); err != nil {
		handleServiceError(w, h.log, err, "deactivate account")
		return
	}

	utils.ResponseSuccess(w, "Account deactivated", nil)
}
