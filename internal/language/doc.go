// Package language holds the per-language chunking configuration.
//
// Each supported language id maps to a LanguageConfig naming the tree-sitter
// node kinds that count as functions, classes, interfaces and imports, plus
// size preferences. The table is static and read-only:
//
//	cfg := language.ConfigFor("python")
//	if cfg.IsFunctionNode(node.Type()) {
//	    // record a FunctionInfo
//	}
//
// Unknown ids never fail; they resolve to the default (typescript) config:
//
//	cfg := language.ConfigFor("cobol") // typescript settings
//	language.IsSupported("cobol")      // false
//
// DetectLanguage maps a file path to a supported id by extension.
package language
