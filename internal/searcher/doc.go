// Package searcher implements keyword search over indexed chunks.
//
// Queries go to the SQLite FTS5 index, which ranks chunk text and the names
// of the functions and classes a chunk holds with BM25. Every hit is then
// hydrated with its stored chunk (including structural metadata) and the
// owning file's path and language.
//
// # Basic Usage
//
//	s := searcher.NewSearcher(store)
//
//	resp, err := s.Search(ctx, searcher.SearchRequest{
//	    ProjectID:   project.ID,
//	    Query:       "authenticate user",
//	    Limit:       10,
//	    FilePattern: "internal/**/*.go",
//	    Filters:     &storage.SearchFilters{Languages: []string{"go"}},
//	})
//
//	for _, r := range resp.Results {
//	    fmt.Printf("[%d] %s:%d-%d (%.2f)\n",
//	        r.Rank, r.File.Path, r.Chunk.StartLine, r.Chunk.EndLine, r.RelevanceScore)
//	}
//
// # Query Syntax
//
// The query is free text. Each word is matched as a literal term, so FTS5
// operators and punctuation carry no special meaning. A query without any
// letters or digits is rejected with ErrEmptyQuery.
//
// # Filtering
//
// Language and chunk kind filters run inside the SQL query. The file pattern
// is a doublestar glob applied after the query, so the searcher over-fetches
// when one is set and may still return fewer than Limit results.
//
// # Caching
//
// With UseCache, responses are kept in an LRU cache of 1000 entries until
// their TTL (default one hour) runs out. The server calls InvalidateCache
// after every indexing run. Cached responses are deep copies, so callers may
// modify what they receive.
package searcher
