// Package indexer walks a project tree and stores the chunks of every
// supported source file.
//
// # Basic Usage
//
//	idx := indexer.New(store, indexer.Config{ChunkBudget: 512}, logger)
//
//	stats, err := idx.IndexProject(ctx, "/path/to/project")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Indexed %d files in %v\n", stats.FilesIndexed, stats.Duration)
//
// # Indexing Pipeline
//
//  1. Discovery: walk the root, skipping well-known dependency and build
//     directories, .gitignore matches, exclude globs, oversized files and
//     files whose extension maps to no supported language
//  2. Incremental decision: compare the SHA-256 of each file with the stored
//     hash and skip unchanged files
//  3. Parse and chunk (parallel): tree-sitter parse, structural extraction,
//     chunk assembly, then resplitting to the configured token budget
//  4. Store: a single writer commits files and chunks in batched transactions
//  5. Cleanup: files that no longer exist are deleted with their chunks
//
// Changing the chunk budget between runs re-chunks every file, since the
// stored chunks were cut to the old budget.
//
// # Error Handling
//
// IndexProject only fails for fatal conditions such as a missing root or a
// storage error. A file that cannot be read or has no grammar is counted in
// Statistics.FilesFailed with a message in Statistics.ErrorMessages. Syntax
// errors are not failures: the file is chunked from whatever structure the
// parser recovered and the first error is recorded on the stored file.
//
// # Concurrency
//
// Parse workers are bounded by Config.Workers through errgroup.SetLimit.
// Each worker owns its tree-sitter parser. Only the writer goroutine touches
// storage, which keeps SQLite to one writer. IndexLock lets callers refuse a
// second concurrent run instead of queueing it.
package indexer
