package chunker

import "strings"

// maxContextLines is how far above a construct the lookback reaches
const maxContextLines = 3

// findContextStart walks upward from the line above startIdx and returns the
// index of the first line to include. Blank and comment lines are taken; the
// first other line ends the scan, even if lines above it would qualify.
func findContextStart(lines []string, startIdx int) int {
	contextStart := startIdx
	for i := 1; i <= maxContextLines; i++ {
		idx := startIdx - i
		if idx < 0 || !isContextLine(lines[idx]) {
			break
		}
		contextStart = idx
	}
	return contextStart
}

func isContextLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "#")
}
