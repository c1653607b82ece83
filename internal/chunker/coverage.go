package chunker

// coverage records which source lines have been claimed by a structural chunk.
// Indexes are 0-based; the API takes 1-based inclusive line numbers.
type coverage []bool

func newCoverage(lineCount int) coverage {
	return make(coverage, lineCount)
}

// markCovered claims lines [startLine, endLine], clamping endLine to the record
func (c coverage) markCovered(startLine, endLine int) {
	startIdx := max(startLine-1, 0)
	endIdx := min(endLine, len(c))
	for i := startIdx; i < endIdx; i++ {
		c[i] = true
	}
}

// uncoveredRuns returns each maximal run of unclaimed lines as [start, end) indexes
func (c coverage) uncoveredRuns() [][2]int {
	var runs [][2]int
	start := 0
	for start < len(c) {
		for start < len(c) && c[start] {
			start++
		}
		if start >= len(c) {
			break
		}

		end := start
		for end < len(c) && !c[end] {
			end++
		}
		runs = append(runs, [2]int{start, end})
		start = end
	}
	return runs
}
