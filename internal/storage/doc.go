// Package storage provides SQLite-based persistence for indexed chunks.
//
// The storage layer manages:
//   - Project metadata (root path, chunk budget, totals)
//   - File information and content hashes
//   - Chunks with their function, class and import descriptors
//   - An FTS5 keyword index over chunk text and symbol names
//
// # Database Schema
//
// Tables:
//   - projects: one row per indexed root
//   - files: relative paths, language and SHA-256 hashes
//   - chunks: chunk text, line range and JSON-encoded descriptor lists
//   - chunks_fts: external-content FTS5 index kept in sync by triggers
//
// Schema changes are applied in semver order by ApplyMigrations when a
// database is opened.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("~/.prism/indices/project.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = tx.Rollback() }()
//
//	if err := tx.UpsertFile(ctx, file); err != nil {
//	    return err
//	}
//	for _, c := range chunks {
//	    if err := tx.UpsertChunk(ctx, storage.FromTypesChunk(c, file.ID)); err != nil {
//	        return err
//	    }
//	}
//	return tx.Commit()
//
// # Full-Text Search
//
// SearchText quotes every word of the query, so user input never reaches
// FTS5 as operators. Scores are BM25 mapped into (0, 1), higher is better.
//
// # Build Tags
//
// The default build uses modernc.org/sqlite (pure Go, no C compiler).
// Building with the sqlite_cgo tag switches to github.com/mattn/go-sqlite3,
// which additionally needs sqlite_fts5:
//
//	CGO_ENABLED=1 go build -tags "sqlite_cgo,sqlite_fts5" ./...
package storage
