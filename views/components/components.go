// Package components renders the HTML fragments that are swapped into the game page.
package components

import (
	"fmt"

	"github.com/a-h/templ"

	"mecatron/internal/viewmodel"
)

// WordClass marks every falling word element.
const WordClass = "word"

func playAreaStyle(height int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("height:%dpx;", height))
}

func wordStyle(word viewmodel.WordView) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("top:%dpx;left:%d%%;", word.Top, word.Left))
}
