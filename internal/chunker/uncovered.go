package chunker

import (
	"strings"

	"github.com/dshills/prism-mcp/pkg/types"
)

// createUncoveredChunks slices each uncovered run into fixed-size windows.
// Runs shorter than MinLinesPerChunk are dropped, as are windows whose
// trimmed text is shorter than MinChunkSize.
func (c *Chunker) createUncoveredChunks(covered coverage, lines []string, lang string, imports []types.ImportInfo, maxLines int) []*types.Chunk {
	chunks := make([]*types.Chunk, 0)

	for _, run := range covered.uncoveredRuns() {
		start, end := run[0], run[1]
		if end-start < MinLinesPerChunk {
			continue
		}

		for i := start; i < end; i += maxLines {
			windowEnd := min(i+maxLines, end)
			text := strings.Join(lines[i:windowEnd], "\n")
			if len(strings.TrimSpace(text)) < MinChunkSize {
				continue
			}

			chunks = append(chunks, c.newChunk(lines, i, windowEnd, lang,
				make([]types.FunctionInfo, 0),
				make([]types.ClassInfo, 0),
				imports))
		}
	}

	return chunks
}
