//go:build sqlite_cgo

package storage

// Compiled with the sqlite_cgo tag: uses the C SQLite library through
// mattn/go-sqlite3. FTS5 must be enabled at build time:
//
//	CGO_ENABLED=1 go build -tags "sqlite_cgo,sqlite_fts5" ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver registered by this build
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
