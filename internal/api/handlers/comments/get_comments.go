package comments

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
	"Coveloper/internal/core/comments"
)

// GetCommentsHandler lists the comments of a post
type GetCommentsHandler struct {
	service board.Service
}

// NewGetCommentsHandler creates a new comment list handler
func NewGetCommentsHandler(service board.Service) *GetCommentsHandler {
	return &GetCommentsHandler{
		service: service,
	}
}

// GetCommentsOutput is the comment list response, newest first
type GetCommentsOutput struct {
	Comments []*comments.CommentView `json:"comments"`
}

// HandleGetComments handles GET /api/posts/{postID}/comments
func (h *GetCommentsHandler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	list, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*comments.CommentView{}
	}

	handlers.WriteJSON(w, http.StatusOK, GetCommentsOutput{Comments: list})
}

// HandleGetComment handles GET /api/comments/{commentID}
func (h *GetCommentsHandler) HandleGetComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := handlers.PathID(r, "commentID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	view, err := h.service.GetComment(r.Context(), commentID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
