package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/prism-mcp/internal/chunker"
	"github.com/dshills/prism-mcp/internal/config"
	"github.com/dshills/prism-mcp/internal/indexer"
	"github.com/dshills/prism-mcp/internal/parser"
	"github.com/dshills/prism-mcp/internal/searcher"
	"github.com/dshills/prism-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "prism-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	storage   storage.Storage
	parser    *parser.Parser
	chunker   *chunker.Chunker
	indexer   *indexer.Indexer
	searcher  *searcher.Searcher
	indexLock indexer.IndexLock
	logger    *slog.Logger
}

// NewServer opens the index database under cfg.DBPath and builds the server
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DBFile())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return newServer(store, cfg, logger), nil
}

func newServer(store storage.Storage, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	idx := indexer.New(store, indexer.Config{
		Workers:      cfg.Workers,
		ChunkBudget:  cfg.ChunkBudget,
		MaxFileBytes: cfg.MaxFileBytes,
		Exclude:      cfg.Exclude,
	}, logger.With("component", "indexer"))

	s := &Server{
		mcp: server.NewMCPServer(
			ServerName,
			ServerVersion,
			server.WithToolCapabilities(false),
		),
		storage:  store,
		parser:   parser.New(),
		chunker:  chunker.New(parser.NewExtractor()),
		indexer:  idx,
		searcher: searcher.NewSearcher(store),
		logger:   logger,
	}
	s.registerTools()
	return s
}

// Serve runs the MCP protocol on stdio until ctx is cancelled or the input closes
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()

	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkCodeTool(), s.handleChunkCode)
	s.mcp.AddTool(listLanguagesTool(), s.handleListLanguages)
	s.mcp.AddTool(indexCodebaseTool(), s.handleIndexCodebase)
	s.mcp.AddTool(searchCodeTool(), s.handleSearchCode)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
