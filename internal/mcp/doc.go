// Package mcp implements the Model Context Protocol server for prism.
//
// The server exposes five tools over stdio:
//   - chunk_code: chunk a piece of source text without storing anything
//   - list_languages: supported language ids and their file extensions
//   - index_codebase: chunk and store every supported file under a root
//   - search_code: keyword search over an indexed root
//   - get_status: file, chunk and language counts for an indexed root
//
// # Protocol Overview
//
// MCP is JSON-RPC 2.0 over stdin/stdout. Stdout carries protocol messages
// only; logs go to stderr.
//
// # Tool: chunk_code
//
//	Request:
//	{
//	  "name": "chunk_code",
//	  "arguments": {
//	    "source": "function add(a, b) {\n  return a + b\n}\n",
//	    "language": "javascript",
//	    "max_tokens": 256
//	  }
//	}
//
//	Response:
//	{
//	  "language": "javascript",
//	  "supported": true,
//	  "has_errors": false,
//	  "chunk_count": 1,
//	  "chunks": [
//	    {
//	      "id": "5f0c...",
//	      "text": "function add(a, b) {\n  return a + b\n}",
//	      "tokens": 9,
//	      "start_line": 1,
//	      "end_line": 3,
//	      "language": "javascript",
//	      "functions": [{"name": "add", "start_line": 1, "end_line": 3, ...}],
//	      "classes": [],
//	      "imports": [],
//	      "dependencies": []
//	    }
//	  ]
//	}
//
// Language ids without a grammar are accepted: the source is then chunked
// into line windows only, using the default language's settings.
//
// # Tool: index_codebase
//
//	{"name": "index_codebase", "arguments": {"path": "/abs/project"}}
//
// Only one indexing run is allowed at a time; a concurrent call fails with
// ErrorCodeIndexingInProgress. Unchanged files are skipped by content hash.
//
// # Tool: search_code
//
//	{
//	  "name": "search_code",
//	  "arguments": {
//	    "path": "/abs/project",
//	    "query": "parse config",
//	    "limit": 10,
//	    "filters": {
//	      "languages": ["go"],
//	      "chunk_types": ["function"],
//	      "file_pattern": "internal/**",
//	      "min_relevance": 0.2
//	    }
//	  }
//	}
//
// # Error Handling
//
// Invalid arguments and server-side failures are returned as *MCPError with
// a JSON-RPC style code:
//
//	-32602  invalid params (missing path, relative path, bad limit)
//	-32603  internal error (storage or indexing failure)
//	-32002  indexing already in progress
//	-32003  project not indexed
//	-32004  empty query
package mcp
