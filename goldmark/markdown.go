// Package goldmark renders markdown text and generate-content responses to
// ANSI-styled terminal output using goldmark for parsing and lipgloss for
// styling.
package goldmark

import "github.com/fwojciec/genstream"

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// GitHub-flavored extensions are enabled. Paragraphs, headings and list items
// are word-wrapped to width; code blocks and tables are never reflowed.
func Render(source string, width int, theme genstream.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newPrinter(theme).markdown([]byte(source), width)
}
