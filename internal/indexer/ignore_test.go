package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_SkippedDirs(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{RootDir: t.TempDir()})
	require.NoError(t, err)

	tests := []struct {
		dir  string
		skip bool
	}{
		{".git", true},
		{"node_modules", true},
		{"web/node_modules", true},
		{"__pycache__", true},
		{"vendor", true},
		{"src", false},
		{"internal/parser", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.skip, m.ShouldSkipDir(tt.dir), tt.dir)
	}
}

func TestMatcher_Gitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.generated.go\n"), 0644))

	m, err := NewMatcher(MatcherOptions{RootDir: root})
	require.NoError(t, err)

	assert.True(t, m.ShouldIgnore("models.generated.go", false))
	assert.True(t, m.ShouldIgnore("pkg/api.generated.go", false))
	assert.False(t, m.ShouldIgnore("main.go", false))
}

func TestMatcher_NoGitignore(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{RootDir: t.TempDir()})
	require.NoError(t, err)
	assert.False(t, m.ShouldIgnore("main.go", false))
}

func TestMatcher_ExcludeGlobs(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{
		RootDir: t.TempDir(),
		Exclude: []string{"**/*_test.go", "testdata/**", "*.pb.go"},
	})
	require.NoError(t, err)

	tests := []struct {
		path    string
		ignored bool
	}{
		{"indexer_test.go", true},
		{"internal/indexer/indexer_test.go", true},
		{"testdata/fixture.py", true},
		{"api/v1/service.pb.go", true},
		{"internal/indexer/indexer.go", false},
		{"src/testdata.py", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ignored, m.ShouldIgnore(tt.path, false), tt.path)
	}
}

func TestMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMatcher(MatcherOptions{RootDir: t.TempDir(), Exclude: []string{"src/[a-"}})
	assert.Error(t, err)
}

func TestMatcher_FileSizeLimit(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{RootDir: t.TempDir(), MaxFileBytes: 1024})
	require.NoError(t, err)
	assert.True(t, m.IsFileTooLarge(2048))
	assert.False(t, m.IsFileTooLarge(1024))

	m, err = NewMatcher(MatcherOptions{RootDir: t.TempDir()})
	require.NoError(t, err)
	assert.False(t, m.IsFileTooLarge(DefaultMaxFileBytes))
	assert.True(t, m.IsFileTooLarge(DefaultMaxFileBytes+1))
}
