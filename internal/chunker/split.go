package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/prism-mcp/pkg/types"
)

// Resplit divides a chunk whose estimated size exceeds budget into pieces
// that greedily fill the budget line by line. A chunk already within budget
// is returned as is.
//
// Every piece keeps the parent's functions, classes, imports and
// dependencies verbatim, whether or not its own lines contain them. Consumers
// that need per-piece accuracy must re-derive metadata from the piece text.
func Resplit(chunk *types.Chunk, budget int) []*types.Chunk {
	if chunk == nil {
		return nil
	}
	if chunk.Tokens <= budget {
		return []*types.Chunk{chunk}
	}

	// Text is an exact join of source lines, so split without dropping a
	// trailing empty line to keep the piece ranges aligned with the parent.
	lines := strings.Split(chunk.Text, "\n")
	pieces := make([]*types.Chunk, 0)

	currentStart := 0
	currentSize := 0

	for i, line := range lines {
		lineTokens := EstimateTokens(line)

		if currentSize+lineTokens > budget && currentStart < i {
			pieces = append(pieces, newPiece(chunk, lines, currentStart, i, currentSize))
			currentStart = i
			currentSize = lineTokens
		} else {
			currentSize += lineTokens
		}
	}

	if currentStart < len(lines) {
		pieces = append(pieces, newPiece(chunk, lines, currentStart, len(lines), currentSize))
	}

	return pieces
}

// ResplitAll applies Resplit to every chunk, preserving order
func ResplitAll(chunks []*types.Chunk, budget int) []*types.Chunk {
	out := make([]*types.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, Resplit(chunk, budget)...)
	}
	return out
}

// newPiece covers parent lines [from, to) relative to the parent's start line
func newPiece(parent *types.Chunk, lines []string, from, to, tokens int) *types.Chunk {
	piece := parent.Clone()
	piece.ID = uuid.NewString()
	piece.Text = strings.Join(lines[from:to], "\n")
	piece.StartLine = parent.StartLine + from
	piece.EndLine = parent.StartLine + to - 1
	piece.Tokens = tokens
	return piece
}
