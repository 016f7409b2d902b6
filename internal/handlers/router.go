package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"mecatron/internal/game"
)

// OptionsFunc returns the options for a freshly created game.
type OptionsFunc func() (game.Options, error)

// NewRouter wires every route of the web front end.
func NewRouter(store *game.Store, newOptions OptionsFunc, baseURL string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	homeHandler := NewHomeHandler(store, newOptions)
	gameHandler := NewGameHandler(store, baseURL)

	// Long-lived streams stay outside the request timeout.
	gameHandler.RegisterStreamRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(15 * time.Second))
		homeHandler.RegisterRoutes(r)
		gameHandler.RegisterRoutes(r)
	})
	return r
}
