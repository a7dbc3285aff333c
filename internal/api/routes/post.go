package routes

import (
	"Coveloper/internal/api/handlers/post"
	"Coveloper/internal/api/middleware"
	"Coveloper/internal/core/board"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post endpoints on the router.
// Reads are public; GET of a single post also reports the caller's vote when authenticated.
func RegisterPostRoutes(r chi.Router, service board.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	answerHandler := post.NewSelectAnswerHandler(service)

	r.Get("/api/posts", getHandler.HandleList)
	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}", getHandler.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/api/posts", createHandler.HandleCreate)
		r.Put("/api/posts/{postID}", updateHandler.HandleUpdate)
		r.Delete("/api/posts/{postID}", deleteHandler.HandleDelete)
		r.Post("/api/posts/{postID}/answer", answerHandler.HandleSelectAnswer)
	})
}

// RegisterMemberRoutes registers endpoints scoped to the authenticated member
func RegisterMemberRoutes(r chi.Router, service board.Service, authMiddleware *middleware.MemberAuthMiddleware) {
	getHandler := post.NewGetHandler(service)

	r.With(authMiddleware.RequireAuth).Get("/api/members/me/posts", getHandler.HandleListMine)
}
