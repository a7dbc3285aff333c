package routes

import (
	"Coveloper/internal/api/handlers/vote"
	"Coveloper/internal/api/middleware"
	"Coveloper/internal/core/board"

	"github.com/go-chi/chi/v5"
)

// RegisterVoteRoutes registers the upvote toggle endpoint on the router
func RegisterVoteRoutes(r chi.Router, service board.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	voteHandler := vote.NewVoteHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postID}/vote", voteHandler.HandleVote)
}
