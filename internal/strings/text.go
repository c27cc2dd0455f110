// Package strings provides text helpers for terminal rendering.
package strings

import "strings"

// Truncate shortens a string to n runes with ellipsis. Counts runes so
// accented names keep their visual width.
func Truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// WordWrap wraps text to a maximum width, breaking on word boundaries.
// Existing newlines are preserved.
func WordWrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var result strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		if line == "" || len([]rune(line)) <= width {
			result.WriteString(line)
			continue
		}
		result.WriteString(wrapLine(line, width))
	}
	return result.String()
}

func wrapLine(line string, width int) string {
	var result strings.Builder
	current := 0

	for _, word := range strings.Fields(line) {
		wordLen := len([]rune(word))

		if current == 0 {
			result.WriteString(word)
			current = wordLen
			continue
		}
		if current+1+wordLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			current = wordLen
			continue
		}
		result.WriteString(" ")
		result.WriteString(word)
		current += 1 + wordLen
	}
	return result.String()
}
