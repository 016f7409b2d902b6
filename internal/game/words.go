package game

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

//go:embed words/*.txt
var wordsFS embed.FS

// DefaultLevels is the number of embedded word levels.
const DefaultLevels = 3

// LoadLevels reads the embedded word lists, one per level, easiest first.
func LoadLevels() ([][]string, error) {
	levels := make([][]string, 0, DefaultLevels)
	for i := 0; i < DefaultLevels; i++ {
		name := fmt.Sprintf("words/level%d.txt", i)
		b, err := fs.ReadFile(wordsFS, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		words, err := parseWords(strings.NewReader(string(b)))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		levels = append(levels, words)
	}
	return levels, nil
}

// ReadWordFile loads a single-level word list from path.
func ReadWordFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	words, err := parseWords(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoWords)
	}
	return [][]string{words}, nil
}

// parseWords returns one word per non-blank line. Lines starting with # are comments.
func parseWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}
