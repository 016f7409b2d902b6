package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"mecatron/internal/viewmodel"
)

func renderPage(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestGamePage_PrintsSessionURLs(t *testing.T) {
	html := renderPage(t, GamePage(viewmodel.GamePage{
		Title:    "MecaTRON-3000",
		GameID:   "abc123",
		ShareURL: "http://example.com/game/abc123/",
		Score:    7,
		Field:    viewmodel.FieldFragment{GameID: "abc123", Status: "running", Height: 760},
	}))
	for _, want := range []string{
		`data-stream="/game/abc123/stream"`,
		`data-keys="/game/abc123/keys"`,
		`data-key="/game/abc123/key"`,
		`action="/game/abc123/restart"`,
		`action="/game/abc123/stop"`,
		`href="http://example.com/game/abc123/"`,
		`<span id="score">7</span>`,
		`<div id="play-area"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("game page missing %s", want)
		}
	}
	if !strings.HasPrefix(html, "<!doctype html>") {
		t.Errorf("missing doctype: %.40s", html)
	}
}

func TestGamePage_SanitizesShareURL(t *testing.T) {
	html := renderPage(t, GamePage(viewmodel.GamePage{
		Title:    "MecaTRON-3000",
		GameID:   "abc123",
		ShareURL: "javascript:alert(1)",
	}))
	if strings.Contains(html, "javascript:alert") {
		t.Errorf("share link not sanitized: %s", html)
	}
	if !strings.Contains(html, `href="`+string(templ.FailedSanitizationURL)+`"`) {
		t.Errorf("share link %q not replaced", "javascript:alert(1)")
	}
}

func TestGamePage_EscapesTitle(t *testing.T) {
	html := renderPage(t, GamePage(viewmodel.GamePage{Title: "<b>x</b>", GameID: "g"}))
	if strings.Contains(html, "<b>x</b>") {
		t.Errorf("title not escaped")
	}
}

func TestHomePage(t *testing.T) {
	html := renderPage(t, HomePage(viewmodel.HomePage{Title: "MecaTRON-3000"}))
	if !strings.Contains(html, `<form method="post" action="/games">`) {
		t.Errorf("home page missing start form: %s", html)
	}
	if !strings.Contains(html, "<h1>MecaTRON-3000</h1>") {
		t.Errorf("home page missing title")
	}
}
