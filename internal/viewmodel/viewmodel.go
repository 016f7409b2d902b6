package viewmodel

// HomePage holds data for the landing page.
type HomePage struct {
	Title string
}

// GamePage holds data for the main game page template.
type GamePage struct {
	Title    string
	GameID   string
	ShareURL string
	Status   string
	Score    int
	Level    int
	Field    FieldFragment
}

// FieldFragment holds data for the play-area fragment pushed on every frame.
type FieldFragment struct {
	GameID  string
	Status  string
	Height  int
	Words   []WordView
	Stopped bool
}

// WordView is one falling word as the browser draws it.
type WordView struct {
	ID        uint64
	Typed     string
	Remaining string
	Top       int
	Left      int
}
