// Package chunker divides source code into bounded, semantically coherent
// chunks for embedding and search.
//
// Chunks are aligned to class and function boundaries reported by an
// Extractor. Lines that no construct claims are cut into fixed-size filler
// windows, and any chunk can be split further against a token budget.
//
// # Basic Usage
//
//	p := parser.New()
//	tree, err := p.Parse(ctx, source, "typescript")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := chunker.New(parser.NewExtractor())
//	chunks := c.Chunk(tree.RootNode(), string(source), "typescript")
//	chunks = chunker.ResplitAll(chunks, chunker.DefaultChunkSize)
//
// # Chunking Strategy
//
// Assembly runs in three passes over a per-line coverage record:
//   - Classes: one chunk per class spanning exactly its lines, carrying its methods
//   - Functions: one chunk per function not nested in a class, extended upward
//     by up to 3 blank or comment lines
//   - Filler: uncovered runs of at least MinLinesPerChunk lines, sliced into
//     windows of at most MaxLinesPerChunk lines
//
// Chunks are emitted in that order, not in line order.
//
// # Chunk Sizing
//
// Assembly never splits a construct on size. Resplit does that afterwards:
//
//	pieces := chunker.Resplit(chunk, 512)
//
// Pieces tile the parent's line range exactly and inherit its metadata.
//
// Token estimation uses a simple heuristic (chars/4). It is not tied to any
// tokenizer vocabulary.
package chunker
