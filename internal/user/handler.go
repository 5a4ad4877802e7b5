package user

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/splitledger/pkg/middleware"
	"github.com/fkhayef/splitledger/pkg/request"
	"github.com/fkhayef/splitledger/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AuthRoutes registers the public sign up and sign in endpoints
func (h *Handler) AuthRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

// Routes registers the authenticated user endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/me", h.Me)
	r.Put("/me", h.Update)
	r.Delete("/me", h.Delete)
	r.Get("/{id}", h.GetByID)
}

// Register handles POST /auth/register
// @Summary      Register a new user
// @Description  Create an account and receive a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	u, token, err := h.service.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, &AuthResponse{User: u.ToResponse(), Token: token})
}

// Login handles POST /auth/login
// @Summary      Sign in
// @Description  Exchange email and password for a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	u, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, &AuthResponse{User: u.ToResponse(), Token: token})
}

// Me handles GET /users/me
// @Summary      Current user
// @Description  Get the signed in user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetByID(r.Context(), middleware.MustUserID(r.Context()))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// Logout handles POST /auth/logout
// @Summary      Sign out
// @Description  Tokens are stateless; the client discards its token. They expire after the configured TTL.
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	slog.DebugContext(r.Context(), "logout requested")
	response.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// List handles GET /users
// @Summary      List users
// @Description  Get a paginated list of users, newest first
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]UserResponse}
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := request.Pagination(r)

	users, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	userResponses := make([]*UserResponse, len(users))
	for i, u := range users {
		userResponses[i] = u.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, userResponses, response.NewMeta(page, perPage, total))
}

// GetByID handles GET /users/{id}
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := request.UUIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// Update handles PUT /users/me
// @Summary      Update profile
// @Description  Change the signed in user's name, email or password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateUserRequest true "Fields to change"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /users/me [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	u, err := h.service.Update(r.Context(), middleware.MustUserID(r.Context()), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// Delete handles DELETE /users/me
// @Summary      Delete account
// @Description  Only accounts that never took part in a group can be deleted
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /users/me [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), middleware.MustUserID(r.Context())); err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
