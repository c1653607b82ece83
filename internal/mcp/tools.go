package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/prism-mcp/internal/chunker"
	"github.com/dshills/prism-mcp/internal/language"
	"github.com/dshills/prism-mcp/internal/parser"
	"github.com/dshills/prism-mcp/internal/searcher"
	"github.com/dshills/prism-mcp/internal/storage"
)

// MCP error codes
const (
	ErrorCodeInvalidParams      = -32602 // Invalid method parameters
	ErrorCodeInternalError      = -32603 // Internal JSON-RPC error
	ErrorCodeIndexingInProgress = -32002 // Another indexing operation is already running
	ErrorCodeNotIndexed         = -32003 // Project not indexed
	ErrorCodeEmptyQuery         = -32004 // Query parameter is empty
)

// maxReportedErrors caps the per-file errors echoed back by index_codebase
const maxReportedErrors = 5

// handleChunkCode handles the chunk_code tool invocation
func (s *Server) handleChunkCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	// empty source is valid and yields no chunks
	source, ok := args["source"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "source parameter is required", map[string]interface{}{
			"param":  "source",
			"reason": "missing",
		})
	}

	lang, ok := args["language"].(string)
	if !ok || lang == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "language parameter is required", map[string]interface{}{
			"param":  "language",
			"reason": "missing or empty",
		})
	}

	maxTokens := getIntDefault(args, "max_tokens", 0)
	if maxTokens < 0 || maxTokens > chunker.MaxChunkSize {
		return nil, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("max_tokens must be between 1 and %d", chunker.MaxChunkSize), map[string]interface{}{
			"param": "max_tokens",
			"value": maxTokens,
		})
	}

	// Without a grammar the chunker still produces line-window chunks
	var root *sitter.Node
	tree, err := s.parser.Parse(ctx, []byte(source), lang)
	switch {
	case errors.Is(err, parser.ErrUnsupportedLanguage):
		s.logger.Debug("no grammar, chunking by lines", "language", lang)
	case err != nil:
		return nil, newMCPError(ErrorCodeInternalError, "parsing failed", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		defer tree.Close()
		root = tree.RootNode()
	}

	chunks := s.chunker.Chunk(root, source, lang)
	if maxTokens > 0 {
		chunks = chunker.ResplitAll(chunks, maxTokens)
	}

	response := map[string]interface{}{
		"language":    lang,
		"supported":   language.IsSupported(language.Canonical(lang)),
		"has_errors":  root != nil && root.HasError(),
		"chunk_count": len(chunks),
		"chunks":      chunks,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListLanguages handles the list_languages tool invocation
func (s *Server) handleListLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	extensions := make(map[string][]string)
	for ext, lang := range language.ExtensionToLanguage {
		extensions[lang] = append(extensions[lang], "."+ext)
	}

	languages := make([]map[string]interface{}, 0)
	for _, id := range language.SupportedLanguages() {
		exts := extensions[id]
		slices.Sort(exts)
		cfg := language.ConfigFor(id)
		languages = append(languages, map[string]interface{}{
			"id":                   id,
			"extensions":           exts,
			"preferred_chunk_size": cfg.PreferredChunkSize,
			"max_lines":            cfg.MaxLines,
		})
	}

	response := map[string]interface{}{
		"languages": languages,
		"default":   language.DefaultLanguage,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleIndexCodebase handles the index_codebase tool invocation
func (s *Server) handleIndexCodebase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	if !s.indexLock.TryAcquire() {
		return nil, newMCPError(ErrorCodeIndexingInProgress, "indexing already in progress", map[string]interface{}{
			"path": path,
		})
	}
	defer s.indexLock.Release()

	stats, err := s.indexer.IndexProject(ctx, path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	s.searcher.InvalidateCache()

	response := map[string]interface{}{
		"indexed":        true,
		"path":           path,
		"files_indexed":  stats.FilesIndexed,
		"files_skipped":  stats.FilesSkipped,
		"files_failed":   stats.FilesFailed,
		"files_removed":  stats.FilesRemoved,
		"chunks_created": stats.ChunksCreated,
		"duration_ms":    stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		errorCount := len(stats.ErrorMessages)
		response["errors"] = stats.ErrorMessages[:min(errorCount, maxReportedErrors)]
		response["error_count"] = errorCount
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchCode handles the search_code tool invocation
func (s *Server) handleSearchCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", searcher.DefaultLimit)
	if limit < 1 || limit > searcher.MaxLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	req := searcher.SearchRequest{
		Query:    query,
		Limit:    limit,
		UseCache: true,
	}
	if filters, ok := args["filters"].(map[string]interface{}); ok {
		req.Filters = &storage.SearchFilters{
			Languages:    getStringSlice(filters, "languages"),
			ChunkTypes:   getStringSlice(filters, "chunk_types"),
			MinRelevance: getFloatDefault(filters, "min_relevance", 0),
		}
		req.FilePattern = getStringDefault(filters, "file_pattern", "")
	}

	project, err := s.storage.GetProject(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeNotIndexed, "project not indexed", map[string]interface{}{
			"path": path,
			"hint": "use index_codebase first",
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load project", map[string]interface{}{
			"error": err.Error(),
		})
	}
	req.ProjectID = project.ID

	resp, err := s.searcher.Search(ctx, req)
	if errors.Is(err, searcher.ErrEmptyQuery) {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query has no searchable words", map[string]interface{}{
			"param": "query",
			"value": query,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"query":         query,
		"results":       resp.Results,
		"total_results": resp.TotalResults,
		"cache_hit":     resp.CacheHit,
		"duration_ms":   resp.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	project, err := s.storage.GetProject(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		response := map[string]interface{}{
			"indexed":  false,
			"path":     path,
			"indexing": s.indexLock.Held(),
			"message":  "Project not indexed. Use index_codebase tool to index this project.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get project status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, project.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed":  true,
		"indexing": s.indexLock.Held(),
		"project": map[string]interface{}{
			"path":            project.RootPath,
			"chunk_budget":    project.ChunkBudget,
			"index_version":   project.IndexVersion,
			"last_indexed_at": project.LastIndexedAt.Format(time.RFC3339),
		},
		"statistics": map[string]interface{}{
			"files_count":   status.FilesCount,
			"chunks_count":  status.ChunksCount,
			"parse_errors":  status.ParseErrors,
			"languages":     status.LanguageCounts,
			"index_size_mb": fmt.Sprintf("%.2f", status.IndexSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible": status.Health.DatabaseAccessible,
			"fts_indexes_built":   status.Health.FTSIndexesBuilt,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// requirePath extracts and validates the path argument, returning it cleaned
func requirePath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return filepath.Clean(path), nil
}

// validatePath checks if a path exists and is accessible
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a number parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter, skipping non-string items
func getStringSlice(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
