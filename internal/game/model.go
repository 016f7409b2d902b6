package game

import (
	"errors"
	"math/rand"
)

// ErrNoWords is returned when the active level has nothing to spawn.
var ErrNoWords = errors.New("word list is empty")

// Model owns the candidate words and the score counter.
type Model struct {
	levels [][]string
	level  int
	score  int
	legacy bool
	rng    *rand.Rand
}

// NewModel builds a model over levels with the given active level. The level is
// clamped into range; the active list must not be empty.
func NewModel(levels [][]string, level int, rng *rand.Rand) (*Model, error) {
	if len(levels) == 0 {
		return nil, ErrNoWords
	}
	if level < 0 {
		level = 0
	}
	if level >= len(levels) {
		level = len(levels) - 1
	}
	if len(levels[level]) == 0 {
		return nil, ErrNoWords
	}
	copied := make([][]string, len(levels))
	for i, words := range levels {
		copied[i] = append([]string(nil), words...)
	}
	return &Model{levels: copied, level: level, rng: rng}, nil
}

// ProduceWord returns a word chosen uniformly from the active level.
func (m *Model) ProduceWord() string {
	words := m.levels[m.level]
	return words[m.rng.Intn(len(words))]
}

// RegisterCompletion counts one fully typed word. In legacy mode the counter is
// left untouched, matching the variant whose increment assigned the old value back.
func (m *Model) RegisterCompletion() {
	if m.legacy {
		return
	}
	m.score++
}

// RaiseLevel is reserved for difficulty progression and does nothing.
func (m *Model) RaiseLevel() {}

// LowerLevel is reserved for difficulty progression and does nothing.
func (m *Model) LowerLevel() {}

// Score is the number of completed words.
func (m *Model) Score() int { return m.score }

// Level is the index of the word list words are drawn from.
func (m *Model) Level() int { return m.level }

// Words returns a copy of the active level's list.
func (m *Model) Words() []string {
	return append([]string(nil), m.levels[m.level]...)
}
