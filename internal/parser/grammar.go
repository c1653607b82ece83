package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/dshills/prism-mcp/internal/language"
)

// grammars maps canonical language ids to their tree-sitter grammar constructors
var grammars = map[string]func() *sitter.Language{
	"typescript": typescript.GetLanguage,
	"javascript": javascript.GetLanguage,
	"python":     python.GetLanguage,
	"rust":       rust.GetLanguage,
	"go":         golang.GetLanguage,
	"java":       java.GetLanguage,
	"cpp":        cpp.GetLanguage,
}

// Grammar returns the tree-sitter grammar for a language id, or nil if none exists
func Grammar(lang string) *sitter.Language {
	get, ok := grammars[language.Canonical(lang)]
	if !ok {
		return nil
	}
	return get()
}
