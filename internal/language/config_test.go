package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFor_KnownLanguages(t *testing.T) {
	tests := []struct {
		id           string
		functionNode string
		classNode    string
		importNode   string
	}{
		{"typescript", "arrow_function", "class_declaration", "import_statement"},
		{"javascript", "method_definition", "class_expression", "export_statement"},
		{"python", "function_definition", "class_definition", "import_from_statement"},
		{"rust", "function_item", "impl_item", "use_declaration"},
		{"go", "method_declaration", "type_spec", "import_spec"},
		{"java", "constructor_declaration", "record_declaration", "import_declaration"},
		{"cpp", "function_definition", "struct_specifier", "include_declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cfg := ConfigFor(tt.id)
			assert.True(t, cfg.IsFunctionNode(tt.functionNode))
			assert.True(t, cfg.IsClassNode(tt.classNode))
			assert.True(t, cfg.IsImportNode(tt.importNode))
			assert.Equal(t, 512, cfg.PreferredChunkSize)
			assert.Equal(t, 200, cfg.MaxLines)
			assert.True(t, cfg.IncludeDocs)
			assert.True(t, cfg.IncludeImports)
		})
	}
}

func TestConfigFor_UnknownFallsBackToDefault(t *testing.T) {
	cfg := ConfigFor("cobol")
	assert.Equal(t, ConfigFor(DefaultLanguage), cfg)
	assert.True(t, cfg.IsFunctionNode("function_declaration"))
	assert.False(t, IsSupported("cobol"))
}

func TestConfigFor_CaseSensitive(t *testing.T) {
	assert.False(t, IsSupported("Python"))
	// Falls back to typescript, which has no function_definition kind
	assert.False(t, ConfigFor("Python").IsFunctionNode("function_definition"))
}

func TestConfigFor_Alias(t *testing.T) {
	cfg := ConfigFor("c++")
	assert.True(t, cfg.IsClassNode("class_specifier"))
	assert.False(t, IsSupported("c++"))
	assert.Equal(t, "cpp", Canonical("c++"))
	assert.Equal(t, "go", Canonical("go"))
}

func TestConfigFor_ReturnsCopy(t *testing.T) {
	cfg := ConfigFor("go")
	cfg.FunctionNodes[0] = "mutated"
	cfg.ClassNodes = append(cfg.ClassNodes, "extra")

	fresh := ConfigFor("go")
	assert.Equal(t, "function_declaration", fresh.FunctionNodes[0])
	assert.False(t, fresh.IsClassNode("extra"))
}

func TestInterfaceNodes(t *testing.T) {
	assert.True(t, ConfigFor("typescript").IsInterfaceNode("interface_declaration"))
	assert.True(t, ConfigFor("rust").IsInterfaceNode("trait_item"))
	assert.True(t, ConfigFor("java").IsInterfaceNode("annotation_declaration"))
	assert.Empty(t, ConfigFor("python").InterfaceNodes)
	assert.Empty(t, ConfigFor("cpp").InterfaceNodes)
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	require.Equal(t, []string{"typescript", "javascript", "python", "rust", "go", "java", "cpp"}, langs)

	for _, id := range langs {
		assert.True(t, IsSupported(id), id)
	}

	langs[0] = "mutated"
	assert.Equal(t, "typescript", SupportedLanguages()[0])
}
