package indexer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/prism-mcp/internal/chunker"
	"github.com/dshills/prism-mcp/internal/language"
	"github.com/dshills/prism-mcp/internal/parser"
	"github.com/dshills/prism-mcp/internal/storage"
	"github.com/dshills/prism-mcp/pkg/types"
)

const defaultBatchSize = 20

// Indexer coordinates the indexing pipeline: discover -> parse -> chunk -> store
type Indexer struct {
	parser    *parser.Parser
	extractor *parser.Extractor
	chunker   *chunker.Chunker
	storage   storage.Storage
	cfg       Config
	logger    *slog.Logger
}

// Config contains configuration for the indexer
type Config struct {
	Workers      int      // Concurrent parse workers (default: runtime.NumCPU())
	BatchSize    int      // Files committed per transaction (default: 20)
	ChunkBudget  int      // Token budget chunks are resplit to (default: chunker.DefaultChunkSize)
	MaxFileBytes int64    // Files above this size are skipped (default: 1 MiB)
	Exclude      []string // doublestar globs relative to the project root
}

// Statistics contains statistics about the indexing operation
type Statistics struct {
	FilesIndexed  int
	FilesSkipped  int
	FilesFailed   int
	FilesRemoved  int
	ChunksCreated int
	Duration      time.Duration
	ErrorMessages []string
}

// sourceFile is a discovered file that will be handed to a worker
type sourceFile struct {
	absPath  string
	relPath  string
	language string
	size     int64
	modTime  time.Time
}

// fileResult is a worker's output for one file
type fileResult struct {
	file       sourceFile
	hash       [32]byte
	chunks     []*types.Chunk
	parseError *string
	skipped    bool
	err        error
}

// New creates a new Indexer. A nil logger falls back to slog.Default().
func New(store storage.Storage, cfg Config, logger *slog.Logger) *Indexer {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.ChunkBudget <= 0 {
		cfg.ChunkBudget = chunker.DefaultChunkSize
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = DefaultMaxFileBytes
	}
	if logger == nil {
		logger = slog.Default()
	}

	extractor := parser.NewExtractor()
	return &Indexer{
		parser:    parser.New(),
		extractor: extractor,
		chunker:   chunker.New(extractor),
		storage:   store,
		cfg:       cfg,
		logger:    logger,
	}
}

// IndexProject indexes every supported source file under rootPath.
// Unchanged files are skipped by content hash, files that disappeared are
// removed, and per-file failures are reported in the statistics rather than
// aborting the run.
func (idx *Indexer) IndexProject(ctx context.Context, rootPath string) (*Statistics, error) {
	startTime := time.Now()

	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", root)
	}

	project, err := idx.getOrCreateProject(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create project: %w", err)
	}

	// Stored chunks were cut to a different budget, so hashes alone can't skip them
	force := project.ChunkBudget != idx.cfg.ChunkBudget

	matcher, err := NewMatcher(MatcherOptions{
		RootDir:      root,
		Exclude:      idx.cfg.Exclude,
		MaxFileBytes: idx.cfg.MaxFileBytes,
	})
	if err != nil {
		return nil, err
	}

	files, err := idx.discoverFiles(ctx, root, matcher)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}

	existingFiles, err := idx.storage.ListFiles(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed files: %w", err)
	}
	existing := make(map[string]*storage.File, len(existingFiles))
	for _, f := range existingFiles {
		existing[f.FilePath] = f
	}

	idx.logger.Info("indexing project",
		"root", root, "files", len(files), "workers", idx.cfg.Workers, "chunk_budget", idx.cfg.ChunkBudget, "force", force)

	stats := &Statistics{ErrorMessages: make([]string, 0)}
	if err := idx.indexFiles(ctx, project, files, existing, force, stats); err != nil {
		return nil, fmt.Errorf("failed to index files: %w", err)
	}

	removed, err := idx.removeStaleFiles(ctx, files, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to remove stale files: %w", err)
	}
	stats.FilesRemoved = removed

	if err := idx.updateProjectStats(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project stats: %w", err)
	}

	stats.Duration = time.Since(startTime)
	idx.logger.Info("indexing complete",
		"root", root,
		"indexed", stats.FilesIndexed,
		"skipped", stats.FilesSkipped,
		"failed", stats.FilesFailed,
		"removed", stats.FilesRemoved,
		"chunks", stats.ChunksCreated,
		"duration", stats.Duration)
	return stats, nil
}

// getOrCreateProject retrieves an existing project or creates a new one
func (idx *Indexer) getOrCreateProject(ctx context.Context, rootPath string) (*storage.Project, error) {
	project, err := idx.storage.GetProject(ctx, rootPath)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	project = &storage.Project{
		RootPath:     rootPath,
		ChunkBudget:  idx.cfg.ChunkBudget,
		IndexVersion: storage.CurrentSchemaVersion,
	}
	if err := idx.storage.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// discoverFiles finds the supported source files that survive the matcher
func (idx *Indexer) discoverFiles(ctx context.Context, root string, matcher *Matcher) ([]sourceFile, error) {
	var files []sourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			idx.logger.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.ShouldSkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		lang := language.DetectLanguage(path)
		if lang == "" || matcher.ShouldIgnore(rel, false) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			idx.logger.Debug("skipping file without info", "path", rel, "error", err)
			return nil
		}
		if matcher.IsFileTooLarge(info.Size()) {
			idx.logger.Debug("skipping large file", "path", rel, "size", info.Size())
			return nil
		}

		files = append(files, sourceFile{
			absPath:  path,
			relPath:  rel,
			language: lang,
			size:     info.Size(),
			modTime:  info.ModTime(),
		})
		return nil
	})
	return files, err
}

// indexFiles fans files out to parse workers and funnels their results into a
// single writer, which owns the statistics and all storage writes
func (idx *Indexer) indexFiles(ctx context.Context, project *storage.Project, files []sourceFile,
	existing map[string]*storage.File, force bool, stats *Statistics) error {

	results := make(chan *fileResult, idx.cfg.BatchSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return idx.writeResults(gctx, project, existing, results, stats)
	})

	g.Go(func() error {
		defer close(results)

		workers, wctx := errgroup.WithContext(gctx)
		workers.SetLimit(idx.cfg.Workers)
		for _, file := range files {
			if wctx.Err() != nil {
				break
			}
			workers.Go(func() error {
				res := idx.processFile(wctx, file, existing, force)
				select {
				case results <- res:
					return nil
				case <-wctx.Done():
					return wctx.Err()
				}
			})
		}
		if err := workers.Wait(); err != nil {
			return err
		}
		return gctx.Err()
	})

	return g.Wait()
}

// processFile reads, hashes, parses and chunks one file. Failures are carried
// in the result so one bad file does not stop the run.
func (idx *Indexer) processFile(ctx context.Context, file sourceFile, existing map[string]*storage.File, force bool) *fileResult {
	res := &fileResult{file: file}

	content, err := os.ReadFile(file.absPath)
	if err != nil {
		res.err = fmt.Errorf("failed to read file: %w", err)
		return res
	}
	source := string(content)

	res.hash = types.HashContent(source)
	if prev, ok := existing[file.relPath]; ok && !force && prev.ContentHash == res.hash {
		res.skipped = true
		return res
	}

	tree, err := idx.parser.Parse(ctx, content, file.language)
	if err != nil {
		res.err = err
		return res
	}
	defer tree.Close()

	parsed := idx.extractor.Extract(tree.RootNode(), source, file.language)
	if parsed.HasErrors() {
		msg := parsed.Errors[0].Message
		res.parseError = &msg
	}

	chunks := idx.chunker.Assemble(parsed, source, file.language)
	res.chunks = chunker.ResplitAll(chunks, idx.cfg.ChunkBudget)
	return res
}

// writeResults drains worker output, committing one transaction per batch
func (idx *Indexer) writeResults(ctx context.Context, project *storage.Project,
	existing map[string]*storage.File, results <-chan *fileResult, stats *Statistics) error {

	batch := make([]*fileResult, 0, idx.cfg.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := idx.writeBatch(ctx, project, existing, batch); err != nil {
			return err
		}
		for _, res := range batch {
			stats.FilesIndexed++
			stats.ChunksCreated += len(res.chunks)
		}
		batch = batch[:0]
		return nil
	}

	for res := range results {
		switch {
		case res.err != nil:
			stats.FilesFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", res.file.relPath, res.err))
			idx.logger.Warn("failed to index file", "path", res.file.relPath, "error", res.err)
		case res.skipped:
			stats.FilesSkipped++
		default:
			batch = append(batch, res)
			if len(batch) >= idx.cfg.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
	return flush()
}

// writeBatch stores a batch of files and their chunks within a transaction
func (idx *Indexer) writeBatch(ctx context.Context, project *storage.Project,
	existing map[string]*storage.File, batch []*fileResult) error {

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, res := range batch {
		file := &storage.File{
			ProjectID:   project.ID,
			FilePath:    res.file.relPath,
			Language:    res.file.language,
			ContentHash: res.hash,
			ModTime:     res.file.modTime,
			SizeBytes:   res.file.size,
			ParseError:  res.parseError,
		}
		if err := tx.UpsertFile(ctx, file); err != nil {
			return err
		}

		if _, ok := existing[res.file.relPath]; ok {
			if err := tx.DeleteChunksByFile(ctx, file.ID); err != nil {
				return fmt.Errorf("failed to delete old chunks: %w", err)
			}
		}

		for _, c := range res.chunks {
			if err := tx.UpsertChunk(ctx, storage.FromTypesChunk(c, file.ID)); err != nil {
				return fmt.Errorf("failed to store chunk: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// removeStaleFiles deletes indexed files that were not discovered this run
func (idx *Indexer) removeStaleFiles(ctx context.Context, files []sourceFile, existing map[string]*storage.File) (int, error) {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.relPath] = true
	}

	var stale []*storage.File
	for path, f := range existing {
		if !seen[path] {
			stale = append(stale, f)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range stale {
		if err := tx.DeleteFile(ctx, f.ID); err != nil {
			return 0, fmt.Errorf("failed to delete %s: %w", f.FilePath, err)
		}
		idx.logger.Debug("removed stale file", "path", f.FilePath)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(stale), nil
}

// updateProjectStats refreshes the project's file and chunk counts
func (idx *Indexer) updateProjectStats(ctx context.Context, project *storage.Project) error {
	status, err := idx.storage.GetStatus(ctx, project.ID)
	if err != nil {
		return err
	}

	project.TotalFiles = status.FilesCount
	project.TotalChunks = status.ChunksCount
	project.ChunkBudget = idx.cfg.ChunkBudget
	project.IndexVersion = storage.CurrentSchemaVersion
	project.LastIndexedAt = time.Now()

	return idx.storage.UpdateProject(ctx, project)
}
