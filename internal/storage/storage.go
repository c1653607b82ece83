package storage

import (
	"context"
	"time"

	"github.com/dshills/prism-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying indexed chunks
type Storage interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, rootPath string) (*Project, error)
	GetProjectByID(ctx context.Context, projectID int64) (*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	ListProjects(ctx context.Context) ([]*Project, error)

	// File operations
	UpsertFile(ctx context.Context, file *File) error
	GetFile(ctx context.Context, projectID int64, filePath string) (*File, error)
	GetFileByID(ctx context.Context, fileID int64) (*File, error)
	DeleteFile(ctx context.Context, fileID int64) error
	ListFiles(ctx context.Context, projectID int64) ([]*File, error)

	// Chunk operations
	UpsertChunk(ctx context.Context, chunk *Chunk) error
	GetChunk(ctx context.Context, chunkID int64) (*Chunk, error)
	ListChunksByFile(ctx context.Context, fileID int64) ([]*Chunk, error)
	DeleteChunksByFile(ctx context.Context, fileID int64) error

	// Search operations
	SearchText(ctx context.Context, projectID int64, query string, limit int, filters *SearchFilters) ([]TextResult, error)

	// Status operations
	GetStatus(ctx context.Context, projectID int64) (*ProjectStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Project represents an indexed source tree
type Project struct {
	ID            int64
	RootPath      string
	ChunkBudget   int // Token budget chunks were resplit to
	TotalFiles    int
	TotalChunks   int
	IndexVersion  string
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// File represents a tracked source file
type File struct {
	ID            int64
	ProjectID     int64
	FilePath      string // Relative to project root
	Language      string
	ContentHash   [32]byte
	ModTime       time.Time
	SizeBytes     int64
	ParseError    *string // Nullable
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Chunk kinds stored in the chunk_type column
const (
	ChunkTypeClass    = "class"
	ChunkTypeFunction = "function"
	ChunkTypeBlock    = "block"
)

// Chunk is a persisted chunk. Structural metadata is stored as JSON columns.
type Chunk struct {
	ID           int64
	FileID       int64
	ChunkUID     string // Identifier assigned by the chunker
	Content      string
	ContentHash  [32]byte
	TokenCount   int
	StartLine    int
	EndLine      int
	Language     string
	ChunkType    string
	Functions    []types.FunctionInfo
	Classes      []types.ClassInfo
	Imports      []types.ImportInfo
	Dependencies []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SearchFilters contains filters for narrowing search results
type SearchFilters struct {
	Languages    []string // Filter by file language
	ChunkTypes   []string // Filter by chunk kind (class, function, block)
	MinRelevance float64  // Minimum relevance score
}

// TextResult represents a result from full-text search
type TextResult struct {
	ChunkID   int64
	BM25Score float64
}

// ProjectStatus contains statistics about an indexed project
type ProjectStatus struct {
	Project        *Project
	FilesCount     int
	ChunksCount    int
	ParseErrors    int
	LanguageCounts map[string]int // Files per language
	IndexSizeMB    float64
	LastIndexedAt  time.Time
	Health         HealthStatus
}

// HealthStatus represents the health of the index
type HealthStatus struct {
	DatabaseAccessible bool
	FTSIndexesBuilt    bool
}

// ChunkType classifies a chunk by the structure it was aligned to
func ChunkType(c *types.Chunk) string {
	switch {
	case len(c.Classes) > 0:
		return ChunkTypeClass
	case len(c.Functions) > 0:
		return ChunkTypeFunction
	default:
		return ChunkTypeBlock
	}
}

// ToTypesChunk converts a storage Chunk to types.Chunk
func (c *Chunk) ToTypesChunk() *types.Chunk {
	return &types.Chunk{
		ID:           c.ChunkUID,
		Text:         c.Content,
		Tokens:       c.TokenCount,
		StartLine:    c.StartLine,
		EndLine:      c.EndLine,
		Language:     c.Language,
		Functions:    types.CloneFunctions(c.Functions),
		Classes:      types.CloneClasses(c.Classes),
		Imports:      types.CloneImports(c.Imports),
		Dependencies: append([]string(nil), c.Dependencies...),
	}
}

// FromTypesChunk converts types.Chunk to a storage Chunk belonging to fileID
func FromTypesChunk(c *types.Chunk, fileID int64) *Chunk {
	return &Chunk{
		FileID:       fileID,
		ChunkUID:     c.ID,
		Content:      c.Text,
		ContentHash:  types.HashContent(c.Text),
		TokenCount:   c.Tokens,
		StartLine:    c.StartLine,
		EndLine:      c.EndLine,
		Language:     c.Language,
		ChunkType:    ChunkType(c),
		Functions:    types.CloneFunctions(c.Functions),
		Classes:      types.CloneClasses(c.Classes),
		Imports:      types.CloneImports(c.Imports),
		Dependencies: append([]string(nil), c.Dependencies...),
	}
}
