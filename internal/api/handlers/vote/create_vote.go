package vote

import (
	"net/http"

	"Coveloper/internal/api/handlers"
	"Coveloper/internal/core/board"
)

// VoteHandler toggles upvotes
type VoteHandler struct {
	service board.Service
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(service board.Service) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

// HandleVote handles POST /api/posts/{postID}/vote.
// The first call adds the caller's upvote, the next removes it.
//
// Response: { "postId": 1, "upvoteCount": 3 }
func (h *VoteHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := handlers.RequireMember(w, r)
	if !ok {
		return
	}

	postID, err := handlers.PathID(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	view, err := h.service.VoteOnPost(r.Context(), postID, actor)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
