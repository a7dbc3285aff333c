package post

import (
	"log/slog"
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/api/middleware"
	"Coveloper/internal/core/board"
	"Coveloper/internal/core/posts"
)

// GetHandler serves post reads
type GetHandler struct {
	service board.Service
}

// NewGetHandler creates a new read handler
func NewGetHandler(service board.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleGet handles GET /api/posts/{postID}.
// Authenticated callers also get viewer.upvoted.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	view, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	if member := middleware.GetMember(r); member != nil {
		// Viewer state is optional enrichment.
		voted, err := h.service.HasVoted(r.Context(), postID, *member)
		if err != nil {
			slog.Warn("failed to load viewer vote state", "post_id", postID, "member_id", member.ID, "error", err)
		} else {
			view.Viewer = &posts.ViewerState{Upvoted: voted}
		}
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleList handles GET /api/posts
func (h *GetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPosts(r.Context())
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ListOutput{Posts: nonNil(list)})
}

// HandleListMine handles GET /api/members/me/posts
func (h *GetHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListPostsByMember(r.Context(), actor)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, ListOutput{Posts: nonNil(list)})
}

// ListOutput wraps post lists
type ListOutput struct {
	Posts []*posts.PostView `json:"posts"`
}

func nonNil(list []*posts.PostView) []*posts.PostView {
	if list == nil {
		return []*posts.PostView{}
	}
	return list
}
