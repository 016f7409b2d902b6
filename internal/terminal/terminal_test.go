package terminal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mecatron/internal/game"
)

type countingChime struct{ plays int }

func (c *countingChime) Play() { c.plays++ }

func newTestUI(t *testing.T) (*UI, *game.Game, *countingChime) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	g, err := game.NewGame(game.Options{
		Levels: [][]string{{"ju"}},
		Rand:   rand.New(rand.NewSource(5)),
	})
	require.NoError(t, err)
	require.NoError(t, g.Start(time.Now()))
	chime := &countingChime{}
	return New(screen, g, chime), g, chime
}

func TestCell(t *testing.T) {
	geom := game.DefaultGeometry()
	x, y := Cell(game.Word{Top: 0, Left: 0}, geom, 80, 24)
	assert.Equal(t, 0, x)
	assert.Equal(t, headerRows, y)

	x, y = Cell(game.Word{Top: 380, Left: 50}, geom, 80, 24)
	assert.Equal(t, 40, x)
	assert.Equal(t, headerRows+11, y)

	_, y = Cell(game.Word{Top: geom.Height - geom.Step}, geom, 80, 24)
	assert.Less(t, y, 24)

	x, y = Cell(game.Word{Top: 100, Left: 10}, geom, 80, 1)
	assert.Equal(t, 0, x)
	assert.Equal(t, headerRows, y)
}

func TestHandleKey_CompletesAndChimes(t *testing.T) {
	ui, g, chime := newTestUI(t)
	g.Spawn()
	now := time.Now()

	assert.True(t, ui.HandleKey(tcell.KeyRune, 'j', now))
	assert.True(t, ui.HandleKey(tcell.KeyRune, 'u', now))
	assert.Equal(t, 1, chime.plays)
	assert.Empty(t, g.Snapshot().Words)
	assert.Equal(t, 1, g.Snapshot().Score)
}

func TestHandleKey_Quit(t *testing.T) {
	ui, _, _ := newTestUI(t)
	assert.False(t, ui.HandleKey(tcell.KeyEscape, 0, time.Now()))
	assert.False(t, ui.HandleKey(tcell.KeyCtrlC, 0, time.Now()))
	assert.True(t, ui.HandleKey(tcell.KeyEnter, 0, time.Now()))
}

func TestDraw_DoesNotPanic(t *testing.T) {
	ui, g, _ := newTestUI(t)
	g.Spawn()
	g.Press('j', time.Now())
	for i := 0; i < 200; i++ {
		g.Animate()
	}
	ui.Draw()
	g.Stop()
	ui.Draw()
}
