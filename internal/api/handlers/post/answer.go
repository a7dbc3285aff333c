package post

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
)

// SelectAnswerHandler marks the accepted answer of a QNA post
type SelectAnswerHandler struct {
	service board.Service
}

// NewSelectAnswerHandler creates a new answer selection handler
func NewSelectAnswerHandler(service board.Service) *SelectAnswerHandler {
	return &SelectAnswerHandler{
		service: service,
	}
}

// SelectAnswerInput is the body of an answer selection
type SelectAnswerInput struct {
	CommentID int64 `json:"commentId"`
}

// HandleSelectAnswer handles POST /api/posts/{postID}/answer
func (h *SelectAnswerHandler) HandleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	var input SelectAnswerInput
	if err := handlers.DecodeJSON(w, r, &input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if input.CommentID <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "commentId must be a positive integer")
		return
	}

	if err := h.service.SelectAnswer(r.Context(), postID, input.CommentID, actor); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
