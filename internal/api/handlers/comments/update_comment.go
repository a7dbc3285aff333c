package comments

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
)

// UpdateCommentHandler handles comment update requests
type UpdateCommentHandler struct {
	service board.Service
}

// NewUpdateCommentHandler creates a new handler for updating comments
func NewUpdateCommentHandler(service board.Service) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		service: service,
	}
}

// HandleUpdate handles PUT /api/comments/{commentID}
//
// Request body: { "content": "..." }
func (h *UpdateCommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	commentID, err := handlers.PathID(r, "commentID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	view, err := h.service.UpdateComment(r.Context(), commentID, input, actor)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
