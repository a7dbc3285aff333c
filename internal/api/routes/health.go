package routes

import (
	"context"
	"net/http"
	"time"

	"Coveloper/internal/api/handlers"

	"github.com/go-chi/chi/v5"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegisterHealthRoutes registers GET /health, which also pings the database
func RegisterHealthRoutes(r chi.Router, db Pinger) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			handlers.WriteError(w, http.StatusServiceUnavailable, "Unavailable", "database unreachable")
			return
		}
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
