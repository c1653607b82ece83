//go:build !sqlite_cgo

package storage

// Default build: pure Go SQLite from modernc.org/sqlite. No C toolchain is
// needed and FTS5 is always available.

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver registered by this build
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
