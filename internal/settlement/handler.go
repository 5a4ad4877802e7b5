package settlement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/request"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for balances and settlements
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GroupRoutes registers balance and settlement endpoints under a /groups router
func (h *Handler) GroupRoutes(r chi.Router) {
	r.Get("/{id}/balances", h.Balances)
	r.Post("/{id}/settle", h.SettleUp)
	r.Get("/{id}/settlements", h.List)
}

// Balances handles GET /groups/{id}/balances
// @Summary      Group balances
// @Description  Net balance of every member and the transfers that would settle the group
// @Tags         settlements
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=ReportResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	report, err := h.service.Report(r.Context(), groupID, middleware.MustUserID(r.Context()))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, report.ToResponse())
}

// SettleUp handles POST /groups/{id}/settle
// @Summary      Settle up
// @Description  Record a payment from the caller to a member they owe
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        request body SettleUpRequest true "Settlement request"
// @Success      201 {object} response.APIResponse{data=SettleUpResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{id}/settle [post]
func (h *Handler) SettleUp(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req SettleUpRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	result, err := h.service.SettleUp(r.Context(), groupID, middleware.MustUserID(r.Context()), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, result.ToResponse())
}

// List handles GET /groups/{id}/settlements
// @Summary      List settlements
// @Description  Get a paginated list of settlements recorded in a group, newest first
// @Tags         settlements
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /groups/{id}/settlements [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, perPage := request.Pagination(r)
	settlements, total, err := h.service.ListByGroupID(r.Context(), groupID, middleware.MustUserID(r.Context()), page, perPage)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	settlementResponses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		settlementResponses[i] = s.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, settlementResponses, response.NewMeta(page, perPage, total))
}
