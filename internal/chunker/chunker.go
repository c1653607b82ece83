package chunker

import (
	"strings"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/prism-mcp/internal/language"
	"github.com/dshills/prism-mcp/pkg/types"
)

const (
	// DefaultChunkSize is the default token budget for Resplit
	DefaultChunkSize = 512

	// MaxChunkSize is the largest token budget callers should request
	MaxChunkSize = 1000

	// MinChunkSize is the minimum trimmed character length of a filler chunk
	MinChunkSize = 50

	// MaxLinesPerChunk is the maximum number of lines in a filler chunk
	MaxLinesPerChunk = 200

	// MinLinesPerChunk is the minimum length of an uncovered run worth chunking
	MinLinesPerChunk = 5
)

// Extractor produces structural descriptors from a parsed syntax tree.
// Any tree walker satisfying it can drive the chunker; tests supply
// hand-built descriptor sets.
type Extractor interface {
	Extract(root *sitter.Node, source string, lang string) *types.ParseResult
}

// Chunker creates boundary-aligned chunks from source code and its structure
type Chunker struct {
	extractor Extractor
	maxLines  int
	newID     func() string
}

// Option configures a Chunker
type Option func(*Chunker)

// WithMaxLines overrides the language's maximum lines per filler chunk
func WithMaxLines(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxLines = n
		}
	}
}

// WithIDGenerator replaces the random UUID chunk identifiers
func WithIDGenerator(fn func() string) Option {
	return func(c *Chunker) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a new Chunker backed by the given extractor
func New(extractor Extractor, opts ...Option) *Chunker {
	c := &Chunker{
		extractor: extractor,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk extracts structure from root and assembles the file's chunks.
// A nil root or a tree full of error nodes is fine: whatever descriptors the
// extractor still finds are used, down to none at all (filler only).
func (c *Chunker) Chunk(root *sitter.Node, source string, lang string) []*types.Chunk {
	if source == "" {
		return make([]*types.Chunk, 0)
	}

	var result *types.ParseResult
	if c.extractor != nil {
		result = c.extractor.Extract(root, source, lang)
	}
	return c.Assemble(result, source, lang)
}

// Assemble builds chunks from already extracted descriptors.
// Emission order is all class chunks, then standalone function chunks, then
// filler chunks for the remaining lines; the result is not sorted by line.
func (c *Chunker) Assemble(result *types.ParseResult, source string, lang string) []*types.Chunk {
	chunks := make([]*types.Chunk, 0)

	lines := splitLines(source)
	if len(lines) == 0 {
		return chunks
	}
	if result == nil {
		result = &types.ParseResult{}
	}

	cfg := language.ConfigFor(lang)
	imports := result.Imports
	if !cfg.IncludeImports {
		imports = nil
	}

	covered := newCoverage(len(lines))

	for i := range result.Classes {
		class := &result.Classes[i]
		chunk := c.createClassChunk(class, lines, lang, imports)
		if chunk == nil {
			continue
		}
		covered.markCovered(chunk.StartLine, chunk.EndLine)
		chunks = append(chunks, chunk)
	}

	for i := range result.Functions {
		fn := &result.Functions[i]
		if isInsideClass(fn, result.Classes) {
			continue
		}

		chunk := c.createFunctionChunk(fn, lines, lang, imports, cfg.IncludeDocs)
		if chunk == nil {
			continue
		}
		// Attached context stays uncovered so it is not claimed twice
		covered.markCovered(fn.StartLine, chunk.EndLine)
		chunks = append(chunks, chunk)
	}

	maxLines := c.maxLines
	if maxLines <= 0 {
		maxLines = cfg.MaxLines
	}
	if maxLines <= 0 {
		maxLines = MaxLinesPerChunk
	}

	chunks = append(chunks, c.createUncoveredChunks(covered, lines, lang, imports, maxLines)...)

	return chunks
}

// createClassChunk creates a chunk spanning exactly the class's lines
func (c *Chunker) createClassChunk(class *types.ClassInfo, lines []string, lang string, imports []types.ImportInfo) *types.Chunk {
	startIdx, endIdx, ok := clampRange(class.StartLine, class.EndLine, len(lines))
	if !ok {
		return nil
	}

	return c.newChunk(lines, startIdx, endIdx, lang,
		types.CloneFunctions(class.Methods),
		types.CloneClasses([]types.ClassInfo{*class}),
		imports)
}

// createFunctionChunk creates a chunk for a standalone function, including
// the doc comments and blank separators directly above it
func (c *Chunker) createFunctionChunk(fn *types.FunctionInfo, lines []string, lang string, imports []types.ImportInfo, includeDocs bool) *types.Chunk {
	startIdx, endIdx, ok := clampRange(fn.StartLine, fn.EndLine, len(lines))
	if !ok {
		return nil
	}

	contextStart := startIdx
	if includeDocs {
		contextStart = findContextStart(lines, startIdx)
	}

	return c.newChunk(lines, contextStart, endIdx, lang,
		types.CloneFunctions([]types.FunctionInfo{*fn}),
		make([]types.ClassInfo, 0),
		imports)
}

// newChunk builds a chunk over lines[startIdx:endIdx]
func (c *Chunker) newChunk(lines []string, startIdx, endIdx int, lang string,
	functions []types.FunctionInfo, classes []types.ClassInfo, imports []types.ImportInfo) *types.Chunk {

	text := strings.Join(lines[startIdx:endIdx], "\n")
	if functions == nil {
		functions = make([]types.FunctionInfo, 0)
	}

	chunk := &types.Chunk{
		ID:           c.newID(),
		Text:         text,
		StartLine:    startIdx + 1,
		EndLine:      endIdx,
		Tokens:       EstimateTokens(text),
		Language:     lang,
		Functions:    functions,
		Classes:      classes,
		Imports:      types.CloneImports(imports),
		Dependencies: ScanDependencies(text),
	}
	if chunk.Imports == nil {
		chunk.Imports = make([]types.ImportInfo, 0)
	}
	return chunk
}

// isInsideClass reports whether fn is a method already represented by a class chunk
func isInsideClass(fn *types.FunctionInfo, classes []types.ClassInfo) bool {
	for i := range classes {
		if classes[i].Contains(fn) {
			return true
		}
	}
	return false
}

// clampRange converts a 1-based inclusive range into slice bounds, clamping the
// end to the source length. Ranges that start outside the source are rejected.
func clampRange(startLine, endLine, total int) (startIdx, endIdx int, ok bool) {
	if startLine <= 0 || startLine > total || endLine < startLine {
		return 0, 0, false
	}
	endIdx = min(endLine, total)
	return startLine - 1, endIdx, true
}

// splitLines splits source the way line-oriented editors count lines: a
// trailing newline does not start a new line and "\r\n" endings are stripped.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
