package language

import "slices"

const (
	// DefaultLanguage is the language whose configuration unknown ids resolve to
	DefaultLanguage = "typescript"

	defaultPreferredChunkSize = 512
	defaultMaxLines           = 200
)

// LanguageConfig holds the chunking preferences and syntax node kinds for one language.
// The node kind sets are consumed by the structural extractor; the chunker never
// inspects node kinds itself.
type LanguageConfig struct {
	// Preferred chunk size in estimated tokens
	PreferredChunkSize int

	// Maximum lines per filler chunk
	MaxLines int

	// Whether doc comments are kept with their construct
	IncludeDocs bool

	// Whether the file's imports are attached to each chunk
	IncludeImports bool

	FunctionNodes  []string
	ClassNodes     []string
	InterfaceNodes []string
	ImportNodes    []string
}

// IsFunctionNode reports whether kind represents a function definition
func (c LanguageConfig) IsFunctionNode(kind string) bool {
	return slices.Contains(c.FunctionNodes, kind)
}

// IsClassNode reports whether kind represents a class definition
func (c LanguageConfig) IsClassNode(kind string) bool {
	return slices.Contains(c.ClassNodes, kind)
}

// IsInterfaceNode reports whether kind represents an interface or type definition
func (c LanguageConfig) IsInterfaceNode(kind string) bool {
	return slices.Contains(c.InterfaceNodes, kind)
}

// IsImportNode reports whether kind represents an import statement
func (c LanguageConfig) IsImportNode(kind string) bool {
	return slices.Contains(c.ImportNodes, kind)
}

func (c LanguageConfig) clone() LanguageConfig {
	c.FunctionNodes = slices.Clone(c.FunctionNodes)
	c.ClassNodes = slices.Clone(c.ClassNodes)
	c.InterfaceNodes = slices.Clone(c.InterfaceNodes)
	c.ImportNodes = slices.Clone(c.ImportNodes)
	return c
}

var typescriptConfig = LanguageConfig{
	PreferredChunkSize: defaultPreferredChunkSize,
	MaxLines:           defaultMaxLines,
	IncludeDocs:        true,
	IncludeImports:     true,
	FunctionNodes: []string{
		"function_declaration",
		"function_expression",
		"arrow_function",
		"method_definition",
		"generator_function_declaration",
	},
	ClassNodes: []string{
		"class_declaration",
		"class_expression",
	},
	InterfaceNodes: []string{
		"interface_declaration",
		"type_alias_declaration",
		"enum_declaration",
	},
	ImportNodes: []string{
		"import_statement",
		"import_declaration",
		"export_statement",
	},
}

// registry is built once and never mutated; lookups hand out copies.
var registry = map[string]LanguageConfig{
	"typescript": typescriptConfig,
	"javascript": typescriptConfig,
	"python": {
		PreferredChunkSize: defaultPreferredChunkSize,
		MaxLines:           defaultMaxLines,
		IncludeDocs:        true,
		IncludeImports:     true,
		FunctionNodes: []string{
			"function_definition",
			"lambda",
		},
		ClassNodes: []string{
			"class_definition",
		},
		// Python has no formal interfaces
		InterfaceNodes: []string{},
		ImportNodes: []string{
			"import_statement",
			"import_from_statement",
			"future_import_statement",
		},
	},
	"rust": {
		PreferredChunkSize: defaultPreferredChunkSize,
		MaxLines:           defaultMaxLines,
		IncludeDocs:        true,
		IncludeImports:     true,
		FunctionNodes: []string{
			"function_item",
			"function_signature_item",
			"closure_expression",
		},
		ClassNodes: []string{
			"struct_item",
			"enum_item",
			"impl_item",
		},
		InterfaceNodes: []string{
			"trait_item",
			"type_alias_item",
		},
		ImportNodes: []string{
			"use_declaration",
			"mod_item",
			"use_wildcard",
		},
	},
	"go": {
		PreferredChunkSize: defaultPreferredChunkSize,
		MaxLines:           defaultMaxLines,
		IncludeDocs:        true,
		IncludeImports:     true,
		FunctionNodes: []string{
			"function_declaration",
			"method_declaration",
		},
		ClassNodes: []string{
			"type_declaration",
			"type_spec",
		},
		InterfaceNodes: []string{
			"interface_declaration",
			"interface_type",
		},
		ImportNodes: []string{
			"import_declaration",
			"import_spec",
		},
	},
	"java": {
		PreferredChunkSize: defaultPreferredChunkSize,
		MaxLines:           defaultMaxLines,
		IncludeDocs:        true,
		IncludeImports:     true,
		FunctionNodes: []string{
			"method_declaration",
			"constructor_declaration",
			"lambda_expression",
		},
		ClassNodes: []string{
			"class_declaration",
			"enum_declaration",
			"record_declaration",
		},
		InterfaceNodes: []string{
			"interface_declaration",
			"annotation_declaration",
		},
		ImportNodes: []string{
			"import_declaration",
		},
	},
	"cpp": {
		PreferredChunkSize: defaultPreferredChunkSize,
		MaxLines:           defaultMaxLines,
		IncludeDocs:        true,
		IncludeImports:     true,
		FunctionNodes: []string{
			"function_definition",
			"function_declarator",
			"lambda_expression",
		},
		ClassNodes: []string{
			"class_specifier",
			"struct_specifier",
			"union_specifier",
		},
		// C++ has no formal interfaces
		InterfaceNodes: []string{},
		ImportNodes: []string{
			"include_declaration",
			"preproc_include",
			"using_declaration",
		},
	},
}

// aliases resolve to a registry entry without being advertised as supported ids
var aliases = map[string]string{
	"c++": "cpp",
}

// supported is the advertised list, in display order
var supported = []string{"typescript", "javascript", "python", "rust", "go", "java", "cpp"}

// ConfigFor returns the configuration for a language id.
// Unknown ids fall back to the default language's configuration.
func ConfigFor(id string) LanguageConfig {
	if cfg, ok := lookup(id); ok {
		return cfg.clone()
	}
	return registry[DefaultLanguage].clone()
}

// IsSupported reports whether id is one of the supported language ids
func IsSupported(id string) bool {
	return slices.Contains(supported, id)
}

// SupportedLanguages returns the supported language ids in a stable order
func SupportedLanguages() []string {
	return slices.Clone(supported)
}

// Canonical resolves aliases ("c++" -> "cpp"). Unknown ids are returned unchanged.
func Canonical(id string) string {
	if target, ok := aliases[id]; ok {
		return target
	}
	return id
}

func lookup(id string) (LanguageConfig, bool) {
	cfg, ok := registry[Canonical(id)]
	return cfg, ok
}
