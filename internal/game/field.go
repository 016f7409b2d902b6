package game

import (
	"math/rand"
	"unicode/utf8"
)

// Default play-area geometry, in pixels and percent of width.
const (
	DefaultHeight  = 760
	DefaultStep    = 5
	DefaultMaxLeft = 85
)

// Geometry describes the play area a word falls through.
type Geometry struct {
	Height  int // words at or below this top offset expire
	Step    int // pixels per animation tick
	MaxLeft int // exclusive upper bound of the horizontal offset, in percent
}

// DefaultGeometry returns the standard 760px play area.
func DefaultGeometry() Geometry {
	return Geometry{Height: DefaultHeight, Step: DefaultStep, MaxLeft: DefaultMaxLeft}
}

// Word is a word in flight. Typed+Remaining always equals Original.
type Word struct {
	ID        uint64
	Original  string
	Typed     string
	Remaining string
	Top       int
	Left      int
}

// PlayField holds the words currently falling, in the order they were rendered.
type PlayField struct {
	geom   Geometry
	rng    *rand.Rand
	nextID uint64
	words  []*Word
}

// NewPlayField returns an empty field. rng picks each word's column.
func NewPlayField(geom Geometry, rng *rand.Rand) *PlayField {
	return &PlayField{geom: geom, rng: rng}
}

// Geometry returns the field's dimensions.
func (f *PlayField) Geometry() Geometry { return f.geom }

// Render adds word at the top of the play area at a random horizontal offset.
func (f *PlayField) Render(word string) Word {
	f.nextID++
	left := 0
	if f.geom.MaxLeft > 0 {
		left = f.rng.Intn(f.geom.MaxLeft)
	}
	w := &Word{
		ID:        f.nextID,
		Original:  word,
		Remaining: word,
		Left:      left,
	}
	f.words = append(f.words, w)
	return *w
}

// AdvanceAll moves every word down one step and removes those that reached the
// bottom. It returns the number of words removed.
func (f *PlayField) AdvanceAll() int {
	kept := f.words[:0]
	expired := 0
	for _, w := range f.words {
		w.Top += f.geom.Step
		if w.Top >= f.geom.Height {
			expired++
			continue
		}
		kept = append(kept, w)
	}
	clearTail(f.words, len(kept))
	f.words = kept
	return expired
}

// Press applies key to every word in flight. A word whose next remaining rune is
// key advances by that rune; every other word reverts to fully untyped. Completed
// words are removed and counted in the result.
func (f *PlayField) Press(key rune) PressResult {
	var res PressResult
	kept := f.words[:0]
	for _, w := range f.words {
		next, size := utf8.DecodeRuneInString(w.Remaining)
		if size > 0 && next == key {
			w.Typed += w.Remaining[:size]
			w.Remaining = w.Remaining[size:]
			if w.Remaining == "" {
				res.Completed = append(res.Completed, *w)
				continue
			}
			res.Advanced++
		} else {
			if w.Typed != "" {
				res.Reset++
			}
			w.Remaining = w.Typed + w.Remaining
			w.Typed = ""
		}
		kept = append(kept, w)
	}
	clearTail(f.words, len(kept))
	f.words = kept
	return res
}

// Words returns a copy of the words in flight.
func (f *PlayField) Words() []Word {
	out := make([]Word, 0, len(f.words))
	for _, w := range f.words {
		out = append(out, *w)
	}
	return out
}

// Len is the number of words in flight.
func (f *PlayField) Len() int { return len(f.words) }

// Clear removes every word in flight.
func (f *PlayField) Clear() {
	clearTail(f.words, 0)
	f.words = f.words[:0]
}

// PressResult summarizes one keystroke.
type PressResult struct {
	Advanced  int    // words that took the key and still have letters left
	Reset     int    // partially typed words that reverted
	Completed []Word // words finished by this key, already removed
}

func clearTail(words []*Word, from int) {
	for i := from; i < len(words); i++ {
		words[i] = nil
	}
}
