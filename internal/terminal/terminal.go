// Package terminal draws a game on a tcell screen and feeds it keystrokes.
package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"mecatron/internal/game"
)

const (
	frameEvery = 33 * time.Millisecond
	headerRows = 1
	title      = "MecaTRON-3000  (Esc to quit)"
)

var (
	styleTitle     = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleTyped     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Underline(true)
	styleRemaining = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStopped   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Chime is played once per completed word.
type Chime interface {
	Play()
}

// UI binds one game to one screen.
type UI struct {
	screen tcell.Screen
	game   *game.Game
	chime  Chime
}

// New returns a UI. chime may be nil.
func New(screen tcell.Screen, g *game.Game, chime Chime) *UI {
	return &UI{screen: screen, game: g, chime: chime}
}

// Run drives the game until ctx ends or the player quits. Timer ticks, key
// presses and drawing all happen on this goroutine.
func (u *UI) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameEvery)
	defer ticker.Stop()

	u.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !u.HandleEvent(ev, time.Now()) {
				return nil
			}
			u.Draw()
		case now := <-ticker.C:
			if changed := u.game.Tick(now); len(changed) > 0 {
				u.Draw()
			}
		}
	}
}

// HandleEvent reacts to one tcell event and reports whether to keep running.
func (u *UI) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.HandleKey(ev.Key(), ev.Rune(), now)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

// HandleKey applies a key and reports whether to keep running.
func (u *UI) HandleKey(key tcell.Key, r rune, now time.Time) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		res := u.game.Press(r, now)
		if len(res.Completed) > 0 {
			log.Debug().Int("completed", len(res.Completed)).Msg("words completed")
			if u.chime != nil {
				for range res.Completed {
					u.chime.Play()
				}
			}
		}
	}
	return true
}

// Draw renders the current snapshot.
func (u *UI) Draw() {
	snap := u.game.Snapshot()
	cols, rows := u.screen.Size()
	u.screen.Clear()
	drawText(u.screen, 0, 0, title, styleTitle)
	for _, w := range snap.Words {
		x, y := Cell(w, snap.Geometry, cols, rows)
		typed, remaining := styleTyped, styleRemaining
		if snap.Status == game.StatusStopped {
			typed, remaining = styleStopped, styleStopped
		}
		x = drawText(u.screen, x, y, w.Typed, typed)
		drawText(u.screen, x, y, w.Remaining, remaining)
	}
	u.screen.Show()
}

// Cell maps a word's pixel/percent position onto terminal cells below the header.
func Cell(w game.Word, geom game.Geometry, cols, rows int) (int, int) {
	playRows := rows - headerRows
	if playRows < 1 || geom.Height <= 0 {
		return 0, headerRows
	}
	y := headerRows + w.Top*playRows/geom.Height
	if y >= rows {
		y = rows - 1
	}
	x := w.Left * cols / 100
	return x, y
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
