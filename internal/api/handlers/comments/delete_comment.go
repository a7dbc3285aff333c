package comments

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
)

// DeleteCommentHandler handles comment deletion requests
type DeleteCommentHandler struct {
	service board.Service
}

// NewDeleteCommentHandler creates a new handler for deleting comments
func NewDeleteCommentHandler(service board.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /api/comments/{commentID}
func (h *DeleteCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	commentID, err := handlers.PathID(r, "commentID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID, actor); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
