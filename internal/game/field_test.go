package game

import (
	"math/rand"
	"testing"
)

func newTestField() *PlayField {
	return NewPlayField(DefaultGeometry(), rand.New(rand.NewSource(7)))
}

func checkReconstructs(t *testing.T, f *PlayField) {
	t.Helper()
	for _, w := range f.Words() {
		if w.Typed+w.Remaining != w.Original {
			t.Errorf("word %d: %q + %q != %q", w.ID, w.Typed, w.Remaining, w.Original)
		}
	}
}

func checkWord(t *testing.T, w Word, typed, remaining string) {
	t.Helper()
	if w.Typed != typed || w.Remaining != remaining {
		t.Errorf("word %q: typed %q remaining %q, want %q %q", w.Original, w.Typed, w.Remaining, typed, remaining)
	}
}

func TestPlayField_RenderStartsAtTopUntyped(t *testing.T) {
	f := newTestField()
	for i := 0; i < 500; i++ {
		w := f.Render("cat")
		if w.Top != 0 {
			t.Fatalf("top %d, want 0", w.Top)
		}
		checkWord(t, w, "", "cat")
		if w.Left < 0 || w.Left >= DefaultMaxLeft {
			t.Fatalf("left %d outside [0, %d)", w.Left, DefaultMaxLeft)
		}
	}
	if f.Len() != 500 {
		t.Errorf("Len %d, want 500", f.Len())
	}
}

func TestPlayField_RenderAssignsIncreasingIDs(t *testing.T) {
	f := newTestField()
	a := f.Render("ju")
	b := f.Render("fr")
	if a.ID >= b.ID {
		t.Errorf("ids %d, %d not increasing", a.ID, b.ID)
	}
	words := f.Words()
	if len(words) != 2 {
		t.Fatalf("len(Words) %d, want 2", len(words))
	}
	if words[0].Original != "ju" || words[1].Original != "fr" {
		t.Errorf("order %q, %q, want ju, fr", words[0].Original, words[1].Original)
	}
}

func TestPlayField_AdvanceAllMovesByStep(t *testing.T) {
	f := newTestField()
	f.Render("cat")
	for i := 1; i <= 10; i++ {
		if expired := f.AdvanceAll(); expired != 0 {
			t.Fatalf("tick %d: expired %d, want 0", i, expired)
		}
		if top := f.Words()[0].Top; top != i*DefaultStep {
			t.Errorf("tick %d: top %d, want %d", i, top, i*DefaultStep)
		}
	}
}

func TestPlayField_AdvanceAllExpiresAtHeight(t *testing.T) {
	f := newTestField()
	f.Render("cat")
	ticks := DefaultHeight / DefaultStep
	for i := 1; i < ticks; i++ {
		if expired := f.AdvanceAll(); expired != 0 || f.Len() != 1 {
			t.Fatalf("word removed early at tick %d", i)
		}
	}
	if top := f.Words()[0].Top; top != DefaultHeight-DefaultStep {
		t.Errorf("top %d, want %d", top, DefaultHeight-DefaultStep)
	}
	if expired := f.AdvanceAll(); expired != 1 {
		t.Errorf("expired %d, want 1", expired)
	}
	if f.Len() != 0 {
		t.Errorf("Len %d, want 0", f.Len())
	}
	if expired := f.AdvanceAll(); expired != 0 {
		t.Errorf("empty field expired %d, want 0", expired)
	}
}

func TestPlayField_AdvanceAllOnlyExpiresLowWords(t *testing.T) {
	f := NewPlayField(Geometry{Height: 10, Step: 5, MaxLeft: 85}, rand.New(rand.NewSource(1)))
	f.Render("old")
	f.AdvanceAll()
	f.Render("new")
	if expired := f.AdvanceAll(); expired != 1 {
		t.Errorf("expired %d, want 1", expired)
	}
	words := f.Words()
	if len(words) != 1 {
		t.Fatalf("len(Words) %d, want 1", len(words))
	}
	if words[0].Original != "new" || words[0].Top != 5 {
		t.Errorf("survivor %q at %d, want new at 5", words[0].Original, words[0].Top)
	}
}

func TestPlayField_PressMatchAndMismatch(t *testing.T) {
	f := newTestField()
	f.Render("cat")

	if res := f.Press('c'); res.Advanced != 1 {
		t.Errorf("Advanced %d, want 1", res.Advanced)
	}
	checkWord(t, f.Words()[0], "c", "at")

	if res := f.Press('x'); res.Reset != 1 {
		t.Errorf("Reset %d, want 1", res.Reset)
	}
	checkWord(t, f.Words()[0], "", "cat")
	checkReconstructs(t, f)
}

func TestPlayField_PressCompletesAndRemoves(t *testing.T) {
	f := newTestField()
	f.Render("ju")
	f.Press('j')
	res := f.Press('u')
	if len(res.Completed) != 1 {
		t.Fatalf("completed %d, want 1", len(res.Completed))
	}
	checkWord(t, res.Completed[0], "ju", "")
	if f.Len() != 0 {
		t.Errorf("Len %d, want 0", f.Len())
	}
}

func TestPlayField_PressBroadcastsToAllWords(t *testing.T) {
	f := newTestField()
	f.Render("fre")
	f.Render("fui")
	f.Render("juan")

	res := f.Press('f')
	if res.Advanced != 2 || res.Reset != 0 {
		t.Errorf("after f: advanced %d reset %d, want 2 0", res.Advanced, res.Reset)
	}

	res = f.Press('u')
	if res.Advanced != 1 || res.Reset != 1 {
		t.Errorf("after u: advanced %d reset %d, want 1 1", res.Advanced, res.Reset)
	}

	words := f.Words()
	if len(words) != 3 {
		t.Fatalf("len(Words) %d, want 3", len(words))
	}
	checkWord(t, words[0], "", "fre")
	checkWord(t, words[1], "fu", "i")
	checkWord(t, words[2], "", "juan")
	checkReconstructs(t, f)
}

func TestPlayField_PressDuplicateWordsCompleteTogether(t *testing.T) {
	f := newTestField()
	f.Render("mi")
	f.Render("mi")
	f.Press('m')
	if res := f.Press('i'); len(res.Completed) != 2 {
		t.Errorf("completed %d, want 2", len(res.Completed))
	}
	if f.Len() != 0 {
		t.Errorf("Len %d, want 0", f.Len())
	}
}

func TestPlayField_PressMultibyteRunes(t *testing.T) {
	f := newTestField()
	f.Render("año")
	f.Press('a')
	if res := f.Press('ñ'); res.Advanced != 1 {
		t.Errorf("Advanced %d, want 1", res.Advanced)
	}
	checkWord(t, f.Words()[0], "añ", "o")
}

func TestPlayField_Clear(t *testing.T) {
	f := newTestField()
	f.Render("ju")
	f.Render("fr")
	f.Clear()
	if f.Len() != 0 || len(f.Words()) != 0 {
		t.Errorf("field not empty after Clear: %v", f.Words())
	}
}
