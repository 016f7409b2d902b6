package handlers

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("render failed")
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func renderToString(r *http.Request, component templ.Component) string {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("render failed")
	}
	return buf.String()
}
