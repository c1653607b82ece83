package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/prism-mcp/internal/chunker"
	"github.com/dshills/prism-mcp/internal/language"
	"github.com/dshills/prism-mcp/internal/storage"
)

// chunkCodeTool returns the tool definition for chunk_code
func chunkCodeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_code",
		Description: "Split source code into function, class and filler chunks ready for embedding",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Source text to chunk",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Language id (see list_languages). Unknown ids are chunked by line windows only",
				},
				"max_tokens": map[string]interface{}{
					"type":        "integer",
					"description": "If set, chunks over this estimated token count are split further",
					"minimum":     1,
					"maximum":     chunker.MaxChunkSize,
				},
			},
			Required: []string{"source", "language"},
		},
	}
}

// listLanguagesTool returns the tool definition for list_languages
func listLanguagesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_languages",
		Description: "List the language ids with structural chunking support and their file extensions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// indexCodebaseTool returns the tool definition for index_codebase
func indexCodebaseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_codebase",
		Description: "Chunk every supported source file under a directory and store the chunks for search",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchCodeTool returns the tool definition for search_code
func searchCodeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_code",
		Description: "Keyword search over the chunks of an indexed project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to an indexed project",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search keywords, matched against chunk text and symbol names",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"filters": map[string]interface{}{
					"type":        "object",
					"description": "Optional filters to narrow search",
					"properties": map[string]interface{}{
						"languages": map[string]interface{}{
							"type":        "array",
							"description": "Filter by file language",
							"items": map[string]interface{}{
								"type": "string",
								"enum": language.SupportedLanguages(),
							},
						},
						"chunk_types": map[string]interface{}{
							"type":        "array",
							"description": "Filter by chunk kind",
							"items": map[string]interface{}{
								"type": "string",
								"enum": []string{storage.ChunkTypeClass, storage.ChunkTypeFunction, storage.ChunkTypeBlock},
							},
						},
						"file_pattern": map[string]interface{}{
							"type":        "string",
							"description": "Glob pattern for file paths (e.g., 'internal/**')",
						},
						"min_relevance": map[string]interface{}{
							"type":        "number",
							"description": "Minimum relevance score threshold (0.0-1.0)",
							"minimum":     0.0,
							"maximum":     1.0,
						},
					},
				},
			},
			Required: []string{"path", "query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query indexing status and statistics for a project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
			},
			Required: []string{"path"},
		},
	}
}
