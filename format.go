package tldr

import "strings"

// Normalize prepares raw page markdown for display.
// It unquotes the first blockquote line (the page description), drops the
// title line and the blank lines that follow it.
func Normalize(contents string) string {
	contents = strings.Replace(contents, "\n> ", "\n", 1)
	_, rest, found := strings.Cut(contents, "\n")
	if !found {
		return ""
	}
	return strings.TrimLeft(rest, "\n")
}
