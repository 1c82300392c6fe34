package genstream

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so rendered
// responses match any color scheme. A negative index means no color.
type Theme struct {
	Accent   int // Headings, links
	Muted    int // Citations, code gutters, metadata
	Error    int // Blocked responses
	Call     int // Function call headers
	Thinking int // Thought summaries
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent:   5,
		Muted:    8,
		Error:    1,
		Call:     3,
		Thinking: 8,
	}
}
