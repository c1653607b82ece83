package language

import (
	"path/filepath"
	"strings"
)

// ExtensionToLanguage maps file extensions (without dot) to supported language ids.
var ExtensionToLanguage = map[string]string{
	// Go
	"go": "go",
	// JavaScript / TypeScript
	"js": "javascript", "jsx": "javascript", "mjs": "javascript", "cjs": "javascript",
	"ts": "typescript", "mts": "typescript", "cts": "typescript",
	// Python
	"py": "python", "pyi": "python", "pyw": "python",
	// Rust
	"rs": "rust",
	// Java
	"java": "java",
	// C / C++
	"cpp": "cpp", "cc": "cpp", "cxx": "cpp", "hpp": "cpp", "hxx": "cpp", "hh": "cpp",
	"c": "cpp", "h": "cpp",
}

// DetectLanguage returns the language id for a file path based on its extension.
// Returns "" if the extension does not belong to a supported language.
func DetectLanguage(filePath string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if ext == "" {
		return ""
	}
	return ExtensionToLanguage[ext]
}
