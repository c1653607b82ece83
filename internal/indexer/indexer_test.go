package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/prism-mcp/internal/storage"
)

const goSource = `package main

import "fmt"

// Add returns the sum of two numbers
func Add(a, b int) int {
	return a + b
}

// Multiply returns the product of two numbers
func Multiply(x, y int) int {
	return x * y
}

func main() {
	fmt.Println(Add(1, 2), Multiply(3, 4))
}
`

const pythonSource = `import os


class Repository:
    def __init__(self, root):
        self.root = root

    def files(self):
        return os.listdir(self.root)


def main():
    repo = Repository(".")
    print(repo.files())
`

func setupTestStorage(t testing.TB) storage.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err, "Failed to create test storage")
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// createTestFile writes a file under dir, creating parent directories
func createTestFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

	return filePath
}

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	createTestFile(t, root, "main.go", goSource)
	createTestFile(t, root, "pkg/repo.py", pythonSource)
	createTestFile(t, root, "README.md", "# project\n")
	createTestFile(t, root, "node_modules/lib/index.js", "function x() { return 1 }\n")
	return root
}

func projectFiles(t *testing.T, store storage.Storage, root string) map[string]*storage.File {
	t.Helper()
	ctx := context.Background()

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, abs)
	require.NoError(t, err)

	files, err := store.ListFiles(ctx, project.ID)
	require.NoError(t, err)

	out := make(map[string]*storage.File, len(files))
	for _, f := range files {
		out[f.FilePath] = f
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	idx := New(setupTestStorage(t), Config{}, nil)

	assert.Positive(t, idx.cfg.Workers)
	assert.Equal(t, defaultBatchSize, idx.cfg.BatchSize)
	assert.Equal(t, 512, idx.cfg.ChunkBudget)
	assert.Equal(t, DefaultMaxFileBytes, idx.cfg.MaxFileBytes)
	assert.NotNil(t, idx.logger)
}

func TestIndexProject_Success(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := setupProject(t)

	stats, err := New(store, Config{Workers: 2}, nil).IndexProject(ctx, root)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesIndexed)
	assert.Equal(t, 0, stats.FilesSkipped)
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Positive(t, stats.ChunksCreated)
	assert.Empty(t, stats.ErrorMessages)

	files := projectFiles(t, store, root)
	require.Len(t, files, 2)
	assert.Equal(t, "go", files["main.go"].Language)
	assert.Equal(t, "python", files["pkg/repo.py"].Language)
	assert.Nil(t, files["main.go"].ParseError)

	chunks, err := store.ListChunksByFile(ctx, files["main.go"].ID)
	require.NoError(t, err)

	var names []string
	for _, c := range chunks {
		for _, fn := range c.Functions {
			names = append(names, fn.Name)
		}
		require.NotEmpty(t, c.Imports)
		assert.Equal(t, "fmt", c.Imports[0].Source)
	}
	assert.ElementsMatch(t, []string{"Add", "Multiply", "main"}, names)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	project, err := store.GetProject(ctx, abs)
	require.NoError(t, err)
	assert.Equal(t, 2, project.TotalFiles)
	assert.Equal(t, stats.ChunksCreated, project.TotalChunks)
	assert.Equal(t, 512, project.ChunkBudget)
	assert.False(t, project.LastIndexedAt.IsZero())
}

func TestIndexProject_ClassChunk(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := setupProject(t)

	_, err := New(store, Config{}, nil).IndexProject(ctx, root)
	require.NoError(t, err)

	files := projectFiles(t, store, root)
	chunks, err := store.ListChunksByFile(ctx, files["pkg/repo.py"].ID)
	require.NoError(t, err)

	var classChunk *storage.Chunk
	for _, c := range chunks {
		if c.ChunkType == storage.ChunkTypeClass {
			classChunk = c
		}
	}
	require.NotNil(t, classChunk)
	require.Len(t, classChunk.Classes, 1)
	assert.Equal(t, "Repository", classChunk.Classes[0].Name)
	assert.Len(t, classChunk.Functions, 2)
	assert.True(t, strings.HasPrefix(classChunk.Content, "class Repository:"))
}

func TestIndexProject_EmptyProject(t *testing.T) {
	stats, err := New(setupTestStorage(t), Config{}, nil).IndexProject(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FilesIndexed)
	assert.Equal(t, 0, stats.ChunksCreated)
}

func TestIndexProject_IncrementalUpdate(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := setupProject(t)
	idx := New(store, Config{}, nil)

	_, err := idx.IndexProject(ctx, root)
	require.NoError(t, err)

	stats, err := idx.IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FilesIndexed)
	assert.Equal(t, 2, stats.FilesSkipped)

	before := projectFiles(t, store, root)

	createTestFile(t, root, "main.go", goSource+"\nfunc Extra() {}\n")
	stats, err = idx.IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)
	assert.Equal(t, 1, stats.FilesSkipped)

	after := projectFiles(t, store, root)
	assert.Equal(t, before["main.go"].ID, after["main.go"].ID)
	assert.NotEqual(t, before["main.go"].ContentHash, after["main.go"].ContentHash)

	chunks, err := store.ListChunksByFile(ctx, after["main.go"].ID)
	require.NoError(t, err)
	var names []string
	for _, c := range chunks {
		for _, fn := range c.Functions {
			names = append(names, fn.Name)
		}
	}
	assert.ElementsMatch(t, []string{"Add", "Multiply", "main", "Extra"}, names)
}

func TestIndexProject_RemovesDeletedFiles(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := setupProject(t)
	idx := New(store, Config{}, nil)

	_, err := idx.IndexProject(ctx, root)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "pkg", "repo.py")))

	stats, err := idx.IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesRemoved)

	files := projectFiles(t, store, root)
	assert.Len(t, files, 1)
	assert.Contains(t, files, "main.go")
}

func TestIndexProject_BudgetChangeForcesReindex(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := setupProject(t)

	_, err := New(store, Config{ChunkBudget: 512}, nil).IndexProject(ctx, root)
	require.NoError(t, err)

	stats, err := New(store, Config{ChunkBudget: 16}, nil).IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesIndexed)
	assert.Equal(t, 0, stats.FilesSkipped)

	files := projectFiles(t, store, root)
	for _, f := range files {
		chunks, err := store.ListChunksByFile(ctx, f.ID)
		require.NoError(t, err)
		for _, c := range chunks {
			if c.StartLine < c.EndLine {
				assert.LessOrEqual(t, c.TokenCount, 16, "%s:%d-%d", f.FilePath, c.StartLine, c.EndLine)
			}
		}
	}
}

func TestIndexProject_ParseErrorsRecorded(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := t.TempDir()
	createTestFile(t, root, "broken.go", "package main\n\nfunc Broken( {\n\treturn\n}\n")

	stats, err := New(store, Config{}, nil).IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)

	files := projectFiles(t, store, root)
	require.Contains(t, files, "broken.go")
	assert.NotNil(t, files["broken.go"].ParseError)
}

func TestIndexProject_Filters(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := setupProject(t)
	createTestFile(t, root, ".gitignore", "*.generated.go\n")
	createTestFile(t, root, "models.generated.go", goSource)
	createTestFile(t, root, "main_test.go", goSource)
	createTestFile(t, root, "big.py", strings.Repeat("x = 1\n", 200))

	idx := New(store, Config{Exclude: []string{"**/*_test.go"}, MaxFileBytes: 1000}, nil)
	stats, err := idx.IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesIndexed)

	files := projectFiles(t, store, root)
	assert.Contains(t, files, "main.go")
	assert.Contains(t, files, "pkg/repo.py")
	assert.NotContains(t, files, "models.generated.go")
	assert.NotContains(t, files, "main_test.go")
	assert.NotContains(t, files, "big.py")
	assert.NotContains(t, files, "node_modules/lib/index.js")
}

func TestIndexProject_InvalidRoot(t *testing.T) {
	idx := New(setupTestStorage(t), Config{}, nil)

	_, err := idx.IndexProject(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := createTestFile(t, t.TempDir(), "main.go", goSource)
	_, err = idx.IndexProject(context.Background(), file)
	assert.Error(t, err)
}

func TestIndexProject_InvalidExclude(t *testing.T) {
	idx := New(setupTestStorage(t), Config{Exclude: []string{"[a-"}}, nil)
	_, err := idx.IndexProject(context.Background(), setupProject(t))
	assert.Error(t, err)
}

func TestIndexProject_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(setupTestStorage(t), Config{}, nil).IndexProject(ctx, setupProject(t))
	assert.Error(t, err)
}

func TestIndexProject_BatchesAcrossTransactions(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	root := t.TempDir()
	for i := range 7 {
		createTestFile(t, root, filepath.Join("pkg", string(rune('a'+i))+".go"), goSource)
	}

	stats, err := New(store, Config{Workers: 3, BatchSize: 2}, nil).IndexProject(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.FilesIndexed)
	assert.Len(t, projectFiles(t, store, root), 7)
}

func TestIndexLock(t *testing.T) {
	var lock IndexLock
	require.True(t, lock.TryAcquire())
	assert.True(t, lock.Held())
	assert.False(t, lock.TryAcquire())

	lock.Release()
	assert.False(t, lock.Held())
	assert.True(t, lock.TryAcquire())
	lock.Release()
}

func TestIndexLock_ConcurrentAcquisition(t *testing.T) {
	var lock IndexLock
	const numGoroutines = 100

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if lock.TryAcquire() {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one goroutine should hold the lock")
}
