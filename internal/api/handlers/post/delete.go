package post

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service board.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service board.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /api/posts/{postID}.
// Only the post author can delete; comments and votes go with it.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, actor); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
