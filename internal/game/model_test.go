package game

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func newTestModel(t *testing.T, levels [][]string, level int) *Model {
	t.Helper()
	m, err := NewModel(levels, level, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestNewModel_RejectsEmptyLists(t *testing.T) {
	if _, err := NewModel(nil, 0, rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoWords) {
		t.Errorf("nil levels: err %v, want ErrNoWords", err)
	}
	if _, err := NewModel([][]string{{}}, 0, rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoWords) {
		t.Errorf("empty level: err %v, want ErrNoWords", err)
	}
}

func TestNewModel_ClampsLevel(t *testing.T) {
	levels := [][]string{{"ju"}, {"fre"}}
	if got := newTestModel(t, levels, 7).Level(); got != 1 {
		t.Errorf("level %d, want 1", got)
	}
	if got := newTestModel(t, levels, -3).Level(); got != 0 {
		t.Errorf("level %d, want 0", got)
	}
}

func TestModel_ProduceWordIsFromActiveLevel(t *testing.T) {
	levels := [][]string{{"ju", "fr", "fv"}, {"juan", "remo"}}
	m, err := NewModel(levels, 1, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		w := m.ProduceWord()
		if w != "juan" && w != "remo" {
			t.Fatalf("ProduceWord %q is not from level 1", w)
		}
		seen[w] = true
	}
	if len(seen) != 2 {
		t.Errorf("reached %d distinct words, want 2", len(seen))
	}
}

func TestModel_ListIsCopied(t *testing.T) {
	levels := [][]string{{"cat"}}
	m := newTestModel(t, levels, 0)
	levels[0][0] = "dog"
	if got := m.ProduceWord(); got != "cat" {
		t.Errorf("ProduceWord %q, want cat", got)
	}
	if got := m.Words(); !reflect.DeepEqual(got, []string{"cat"}) {
		t.Errorf("Words %v, want [cat]", got)
	}
}

func TestModel_RegisterCompletion(t *testing.T) {
	m := newTestModel(t, [][]string{{"cat"}}, 0)
	m.RegisterCompletion()
	m.RegisterCompletion()
	if m.Score() != 2 {
		t.Errorf("score %d, want 2", m.Score())
	}
}

func TestModel_RegisterCompletionLegacyIsNoop(t *testing.T) {
	m := newTestModel(t, [][]string{{"cat"}}, 0)
	m.legacy = true
	m.RegisterCompletion()
	if m.Score() != 0 {
		t.Errorf("score %d, want 0", m.Score())
	}
}

func TestModel_LevelHooksAreNoops(t *testing.T) {
	m := newTestModel(t, [][]string{{"ju"}, {"fre"}}, 0)
	m.RaiseLevel()
	if m.Level() != 0 {
		t.Errorf("level after RaiseLevel %d, want 0", m.Level())
	}
	m.LowerLevel()
	if m.Level() != 0 {
		t.Errorf("level after LowerLevel %d, want 0", m.Level())
	}
}
