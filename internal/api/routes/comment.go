package routes

import (
	"Coveloper/internal/api/handlers/comments"
	"Coveloper/internal/api/middleware"
	"Coveloper/internal/core/board"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment endpoints on the router
func RegisterCommentRoutes(r chi.Router, service board.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	createHandler := comments.NewCreateCommentHandler(service)
	getHandler := comments.NewGetCommentsHandler(service)
	updateHandler := comments.NewUpdateCommentHandler(service)
	deleteHandler := comments.NewDeleteCommentHandler(service)

	r.Get("/api/posts/{postID}/comments", getHandler.HandleGetComments)
	r.Get("/api/comments/{commentID}", getHandler.HandleGetComment)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postID}/comments", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Put("/api/comments/{commentID}", updateHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete("/api/comments/{commentID}", deleteHandler.HandleDelete)
}
