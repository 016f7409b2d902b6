package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"mecatron/internal/game"
	"mecatron/internal/viewmodel"
	"mecatron/views/pages"
)

const title = "MecaTRON-3000"

type HomeHandler struct {
	store      *game.Store
	newOptions OptionsFunc
}

func NewHomeHandler(store *game.Store, newOptions OptionsFunc) *HomeHandler {
	return &HomeHandler{store: store, newOptions: newOptions}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/games", h.createGame)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{Title: title}))
}

func (h *HomeHandler) createGame(w http.ResponseWriter, r *http.Request) {
	opts, err := h.newOptions()
	if err != nil {
		log.Error().Err(err).Msg("game options")
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}
	instance, err := h.store.CreateGame(opts, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("create game")
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}
	h.store.EnsureLoop(instance.ID)
	log.Info().Str("game", instance.ID).Int("sessions", h.store.Len()).Msg("session created")
	http.Redirect(w, r, "/game/"+instance.ID+"/", http.StatusSeeOther)
}
