package post

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
	"Coveloper/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service board.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service board.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	var input PostInput
	if err := handlers.DecodeJSON(w, r, &input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	category, err := posts.ParseCategory(input.Category)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	if err := input.validate(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	view, err := h.service.CreatePost(r.Context(), input.toCore(category), actor)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}
