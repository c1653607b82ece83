package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/prism-mcp/internal/language"
)

// ErrUnsupportedLanguage is returned when no grammar exists for a language id
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Parser turns source text into tree-sitter syntax trees
type Parser struct{}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{}
}

// Parse parses source as the given language.
// Syntax errors are not failures: the returned tree contains ERROR nodes and
// the extractor recovers what it can from the rest.
func (p *Parser) Parse(ctx context.Context, source []byte, lang string) (*sitter.Tree, error) {
	grammar := Grammar(lang)
	if grammar == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	// tree-sitter parsers are not safe for concurrent use, so each call gets its own
	sp := sitter.NewParser()
	sp.SetLanguage(grammar)

	tree, err := sp.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", lang, err)
	}
	return tree, nil
}

// File is a parsed source file
type File struct {
	Path     string
	Language string
	Source   []byte
	Tree     *sitter.Tree
}

// ParseFile reads and parses a file, detecting its language from the extension
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*File, error) {
	lang := language.DetectLanguage(filePath)
	if lang == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	tree, err := p.Parse(ctx, content, lang)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:     filePath,
		Language: lang,
		Source:   content,
		Tree:     tree,
	}, nil
}
