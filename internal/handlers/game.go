package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"mecatron/internal/game"
	"mecatron/internal/viewmodel"
	"mecatron/views/components"
	"mecatron/views/pages"
)

// Origin checks use gorilla's default same-host policy.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type GameHandler struct {
	store   *game.Store
	baseURL string
}

func NewGameHandler(store *game.Store, baseURL string) *GameHandler {
	return &GameHandler{store: store, baseURL: baseURL}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/game/{id}", h.gamePage)
	r.Get("/game/{id}/", h.gamePage)
	r.Get("/game/{id}/field", h.fieldFragment)
	r.Get("/game/{id}/state", h.state)
	r.Post("/game/{id}/key", h.pressKey)
	r.Post("/game/{id}/stop", h.stopGame)
	r.Post("/game/{id}/restart", h.restartGame)
}

func (h *GameHandler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/game/{id}/stream", h.stream)
	r.Get("/game/{id}/keys", h.keys)
}

func (h *GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	instance, ok := h.store.GetGame(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return instance, true
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	snapshot := instance.Snapshot()
	data := viewmodel.GamePage{
		Title:    title,
		GameID:   snapshot.ID,
		ShareURL: h.gameURL(r, snapshot.ID),
		Status:   snapshot.Status,
		Score:    snapshot.Score,
		Level:    snapshot.Level,
		Field:    buildFieldFragment(snapshot),
	}
	render(w, r, pages.GamePage(data))
}

func (h *GameHandler) fieldFragment(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	render(w, r, components.PlayArea(buildFieldFragment(instance.Snapshot())))
}

// stateResponse is the JSON view of a session, for scripts and health checks.
type stateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Score  int    `json:"score"`
	Level  int    `json:"level"`
	Words  int    `json:"words"`
}

func (h *GameHandler) state(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	snapshot := instance.Snapshot()
	writeJSON(w, stateResponse{
		ID:     snapshot.ID,
		Status: snapshot.Status,
		Score:  snapshot.Score,
		Level:  snapshot.Level,
		Words:  len(snapshot.Words),
	})
}

func (h *GameHandler) pressKey(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	key, _ := utf8.DecodeRuneInString(r.FormValue("key"))
	if key == utf8.RuneError {
		http.Error(w, "key required", http.StatusBadRequest)
		return
	}
	h.press(instance, key)
	w.WriteHeader(http.StatusNoContent)
}

// press applies key and pushes a frame when the field changed.
func (h *GameHandler) press(instance *game.Game, key rune) game.PressResult {
	res := instance.Press(key, time.Now().UTC())
	if res.Advanced > 0 || res.Reset > 0 || len(res.Completed) > 0 {
		h.store.Publish(instance.ID, game.EventField)
	}
	if len(res.Completed) > 0 {
		log.Debug().Str("game", instance.ID).Int("completed", len(res.Completed)).Msg("words completed")
	}
	return res
}

func (h *GameHandler) stopGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	if err := h.store.StopGame(gameID); err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/game/"+gameID+"/", http.StatusSeeOther)
}

func (h *GameHandler) restartGame(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := instance.Restart(time.Now().UTC()); err != nil {
		log.Error().Err(err).Str("game", instance.ID).Msg("restart")
		http.Error(w, "failed to restart", http.StatusInternalServerError)
		return
	}
	h.store.EnsureLoop(instance.ID)
	h.store.WakeLoop(instance.ID)
	h.store.Publish(instance.ID, game.EventField)
	http.Redirect(w, r, "/game/"+instance.ID+"/", http.StatusSeeOther)
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	hub, ok := h.store.Broadcaster(instance.ID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)
	instance.Touch(time.Now().UTC())

	sendField := func() {
		fieldHTML := renderToString(r, components.PlayArea(buildFieldFragment(instance.Snapshot())))
		writeSSE(w, game.EventField, fieldHTML)
		flusher.Flush()
	}
	sendField()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			if event == game.EventField {
				sendField()
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

// keyAck is written back for every key message received on the websocket.
type keyAck struct {
	Type      string `json:"type"`
	Advanced  int    `json:"advanced"`
	Reset     int    `json:"reset"`
	Completed int    `json:"completed"`
}

func (h *GameHandler) keys(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", instance.ID).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("game", instance.ID).Msg("websocket read")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		key, _ := utf8.DecodeRune(data)
		if key == utf8.RuneError {
			continue
		}
		res := h.press(instance, key)
		ack := keyAck{Type: "press", Advanced: res.Advanced, Reset: res.Reset, Completed: len(res.Completed)}
		if err := conn.WriteJSON(ack); err != nil {
			log.Warn().Err(err).Str("game", instance.ID).Msg("websocket write")
			return
		}
	}
}

func (h *GameHandler) gameURL(r *http.Request, gameID string) string {
	if h.baseURL != "" {
		return h.baseURL + "/game/" + gameID + "/"
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/game/" + gameID + "/"
}

func buildFieldFragment(snapshot game.Snapshot) viewmodel.FieldFragment {
	words := make([]viewmodel.WordView, 0, len(snapshot.Words))
	for _, word := range snapshot.Words {
		words = append(words, viewmodel.WordView{
			ID:        word.ID,
			Typed:     word.Typed,
			Remaining: word.Remaining,
			Top:       word.Top,
			Left:      word.Left,
		})
	}
	return viewmodel.FieldFragment{
		GameID:  snapshot.ID,
		Status:  snapshot.Status,
		Height:  snapshot.Geometry.Height,
		Words:   words,
		Stopped: snapshot.Status == game.StatusStopped,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSSE(w http.ResponseWriter, event string, data string) {
	_, _ = w.Write([]byte("event: " + event + "\n"))
	for _, line := range strings.Split(data, "\n") {
		_, _ = w.Write([]byte("data: " + line + "\n"))
	}
	_, _ = w.Write([]byte("\n"))
}
