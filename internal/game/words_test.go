package game

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadLevels(t *testing.T) {
	levels, err := LoadLevels()
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}
	want := [][]string{
		{"ju", "fr", "fv", "jm", "fu", "jr", "jv", "fm"},
		{"fre", "jui", "fui", "vie", "mi", "mery", "huy"},
		{"juan", "remo", "foca", "dedo", "cate"},
	}
	if len(levels) != DefaultLevels {
		t.Fatalf("len(levels) %d, want %d", len(levels), DefaultLevels)
	}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("levels %v, want %v", levels, want)
	}
}

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# custom list\ncat\n\n  dog  \nbird\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	levels, err := ReadWordFile(path)
	if err != nil {
		t.Fatalf("ReadWordFile: %v", err)
	}
	if want := [][]string{{"cat", "dog", "bird"}}; !reflect.DeepEqual(levels, want) {
		t.Errorf("levels %v, want %v", levels, want)
	}
}

func TestReadWordFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("# nothing\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadWordFile(path); !errors.Is(err, ErrNoWords) {
		t.Errorf("err %v, want ErrNoWords", err)
	}
}

func TestReadWordFile_Missing(t *testing.T) {
	if _, err := ReadWordFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
