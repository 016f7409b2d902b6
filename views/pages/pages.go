// Package pages renders full HTML documents.
package pages

func gamePath(gameID, action string) string {
	return "/game/" + gameID + "/" + action
}
