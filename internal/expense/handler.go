package expense

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/request"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GroupRoutes registers expense endpoints under a /groups router
func (h *Handler) GroupRoutes(r chi.Router) {
	r.Post("/{id}/expenses", h.Create)
	r.Get("/{id}/expenses", h.ListByGroup)
	r.Get("/{id}/expenses/{expenseId}", h.GetByID)
	r.Delete("/{id}/expenses/{expenseId}", h.Delete)
}

// Create handles POST /groups/{id}/expenses
// @Summary      Create expense
// @Description  Record an expense split equally, by percentage or by exact amounts
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req CreateExpenseRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	expense, err := h.service.Create(r.Context(), groupID, middleware.MustUserID(r.Context()), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, expense.ToResponse())
}

// ListByGroup handles GET /groups/{id}/expenses
// @Summary      List group expenses
// @Description  Get a paginated list of a group's expenses, newest first
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/expenses [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, perPage := request.Pagination(r)
	expenses, total, err := h.service.ListByGroupID(r.Context(), groupID, middleware.MustUserID(r.Context()), page, perPage)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, expenseResponses, response.NewMeta(page, perPage, total))
}

// GetByID handles GET /groups/{id}/expenses/{expenseId}
// @Summary      Get expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        expenseId path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/expenses/{expenseId} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	expenseID, ok := request.UUIDParam(r, "expenseId")
	if !ok {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	expense, err := h.service.GetByID(r.Context(), groupID, expenseID, middleware.MustUserID(r.Context()))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// Delete handles DELETE /groups/{id}/expenses/{expenseId}
// @Summary      Delete expense
// @Description  Delete an expense the caller paid for. Settlements cannot be deleted.
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        expenseId path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{id}/expenses/{expenseId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	expenseID, ok := request.UUIDParam(r, "expenseId")
	if !ok {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	if err := h.service.Delete(r.Context(), groupID, expenseID, middleware.MustUserID(r.Context())); err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}
