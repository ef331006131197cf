package friend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okarim/tabsplit/pkg/response"
)

// Handler handles HTTP requests for friend operations
type Handler struct {
	service *Service
}

// NewHandler creates a new friend handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for friend endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /friends
// @Summary      Add a friend
// @Description  Adds a person to the friend directory
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        request body CreateFriendRequest true "Friend data"
// @Success      201 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /friends [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	friend, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyInUse) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create friend")
		return
	}

	response.JSON(w, http.StatusCreated, friend.ToResponse())
}

// List handles GET /friends
// @Summary      List friends
// @Description  Returns the friend directory sorted by name
// @Tags         friends
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]FriendResponse}
// @Router       /friends [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	friends, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list friends")
		return
	}

	responses := make([]*FriendResponse, len(friends))
	for i, friend := range friends {
		responses[i] = friend.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetByID handles GET /friends/{id}
// @Summary      Get a friend
// @Description  Returns a single friend by ID
// @Tags         friends
// @Produce      json
// @Param        id path string true "Friend ID"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /friends/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	friend, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get friend")
		return
	}

	response.JSON(w, http.StatusOK, friend.ToResponse())
}

// Update handles PUT /friends/{id}
// @Summary      Update a friend
// @Description  Updates a friend's name or avatar
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        id path string true "Friend ID"
// @Param        request body UpdateFriendRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	friend, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update friend")
		return
	}

	response.JSON(w, http.StatusOK, friend.ToResponse())
}

// Delete handles DELETE /friends/{id}
// @Summary      Remove a friend
// @Description  Removes a friend from the directory; existing splits keep their snapshot names
// @Tags         friends
// @Produce      json
// @Param        id path string true "Friend ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete friend")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Friend removed"})
}
