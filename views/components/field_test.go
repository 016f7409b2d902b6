package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"mecatron/internal/viewmodel"
)

func TestPlayArea_RendersWords(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.FieldFragment{
		GameID: "g1",
		Status: "running",
		Height: 760,
		Words: []viewmodel.WordView{
			{ID: 1, Typed: "c", Remaining: "at", Top: 15, Left: 42},
			{ID: 2, Remaining: "dog"},
		},
	}
	if err := PlayArea(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	if !strings.HasPrefix(html, `<div id="play-area" class="play-area" data-status="running" style="height:760px;">`) {
		t.Errorf("unexpected container: %s", html)
	}
	if got := strings.Count(html, `class="word"`); got != 2 {
		t.Errorf("word elements %d, want 2", got)
	}
	want := `<div class="word" data-id="1" style="top:15px;left:42%;"><span class="typed">c</span>at</div>`
	if !strings.Contains(html, want) {
		t.Errorf("missing %s in %s", want, html)
	}
}

func TestWord_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	w := viewmodel.WordView{Typed: "<b>", Remaining: "&x"}
	if err := Word(w).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "<b>") {
		t.Errorf("typed text not escaped: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "&amp;x") {
		t.Errorf("remaining text not escaped: %s", buf.String())
	}
}

func TestPlayArea_Stopped(t *testing.T) {
	var buf bytes.Buffer
	_ = PlayArea(viewmodel.FieldFragment{Status: "stopped", Stopped: true, Height: 10}).Render(context.Background(), &buf)
	if !strings.Contains(buf.String(), `class="play-area stopped"`) {
		t.Errorf("stopped class missing: %s", buf.String())
	}
}
