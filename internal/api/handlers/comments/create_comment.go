package comments

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
	"Coveloper/internal/core/comments"
)

// CreateCommentHandler handles comment creation requests
type CreateCommentHandler struct {
	service board.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service board.Service) *CreateCommentHandler {
	return &CreateCommentHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/posts/{postID}/comments
//
// Request body: { "content": "..." }
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	view, err := h.service.AddComment(r.Context(), postID, input, actor)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, view)
}

func decodeInput(w http.ResponseWriter, r *http.Request) (comments.CommentInput, bool) {
	var input comments.CommentInput
	if err := handlers.DecodeJSON(w, r, &input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return input, false
	}
	if err := input.Validate(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return input, false
	}
	return input, true
}
