package indexer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// DefaultMaxFileBytes is the size cap applied when none is configured
const DefaultMaxFileBytes int64 = 1024 * 1024

// skippedDirs are never descended into, whatever the ignore files say
var skippedDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true,
	"node_modules": true, "bower_components": true, "vendor": true,
	"__pycache__": true, ".venv": true, "venv": true, ".tox": true,
	".idea": true, ".vscode": true, ".vs": true,
	".next": true, ".nuxt": true, ".cache": true, ".parcel-cache": true,
	"target": true, "dist": true, "build": true,
	"coverage": true, ".nyc_output": true, "htmlcov": true,
}

// MatcherOptions configures a Matcher
type MatcherOptions struct {
	RootDir      string
	Exclude      []string // doublestar globs relative to RootDir
	MaxFileBytes int64
}

// Matcher decides which paths under a project root are indexed.
// It combines the fixed directory skip list, the root .gitignore and the
// configured exclude globs. Paths are relative to the root, slash separated.
type Matcher struct {
	gitIgnore    gitignore.GitIgnore
	exclude      []string
	maxFileBytes int64
}

// NewMatcher loads the root .gitignore and validates the exclude globs
func NewMatcher(opts MatcherOptions) (*Matcher, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	m := &Matcher{
		exclude:      opts.Exclude,
		maxFileBytes: opts.MaxFileBytes,
	}
	if m.maxFileBytes <= 0 {
		m.maxFileBytes = DefaultMaxFileBytes
	}
	m.gitIgnore = loadIgnoreFile(filepath.Join(opts.RootDir, ".gitignore"), opts.RootDir)
	return m, nil
}

// ShouldSkipDir reports whether a directory should not be walked at all
func (m *Matcher) ShouldSkipDir(relPath string) bool {
	if skippedDirs[path.Base(relPath)] {
		return true
	}
	return m.ShouldIgnore(relPath, true)
}

// ShouldIgnore reports whether a path is excluded by .gitignore or an exclude glob
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(relPath, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return m.excluded(relPath)
}

// IsFileTooLarge reports whether a file exceeds the size cap
func (m *Matcher) IsFileTooLarge(size int64) bool {
	return size > m.maxFileBytes
}

// excluded matches the globs against the whole relative path, and patterns
// without a separator against the base name as well
func (m *Matcher) excluded(relPath string) bool {
	base := path.Base(relPath)
	for _, pattern := range m.exclude {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, base); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func loadIgnoreFile(filePath, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	return gitignore.New(f, baseDir, nil)
}
