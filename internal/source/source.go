// Package source holds the line-splitting and comment-stripping rules
// shared by the graph and sequence parsers.
package source

import (
	"regexp"
	"strings"
)

var lineSplitRe = regexp.MustCompile(`\n|\\n`)

// SplitLines splits input on real newlines and on the two-character literal
// "\n" sequence, so diagrams embedded in a single-line shell argument or a
// JSON string still split the way a multi-line file would.
func SplitLines(input string) []string {
	return lineSplitRe.Split(input, -1)
}

// RemoveComments drops blank lines, lines that are entirely a "%%" comment,
// and strips a trailing "%%" comment from any other line.
func RemoveComments(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "%%") {
			continue
		}
		current := line
		if idx := strings.Index(current, "%%"); idx >= 0 {
			current = strings.TrimSpace(current[:idx])
		}
		if strings.TrimSpace(current) != "" {
			cleaned = append(cleaned, current)
		}
	}
	return cleaned
}
