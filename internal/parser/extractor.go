package parser

import (
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dshills/prism-mcp/internal/language"
	"github.com/dshills/prism-mcp/pkg/types"
)

// anonymousFunctionBinders are parent node kinds that give an anonymous
// function (arrow function, lambda, closure) a usable name, keyed to the
// field holding that name.
var anonymousFunctionBinders = map[string]string{
	"variable_declarator":  "name",
	"assignment_expression": "left",
	"assignment":           "left",
	"pair":                 "key",
	"let_declaration":      "pattern",
}

// Extractor walks a tree-sitter tree and classifies nodes using the language
// configuration's node kind sets
type Extractor struct{}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract collects functions, classes and imports in source order.
// Nested constructs are folded into their outermost function or class so the
// resulting chunks never overlap. Error nodes are recorded and walked through.
func (e *Extractor) Extract(root *sitter.Node, source string, lang string) *types.ParseResult {
	result := &types.ParseResult{
		Language:  lang,
		Functions: make([]types.FunctionInfo, 0),
		Classes:   make([]types.ClassInfo, 0),
		Imports:   make([]types.ImportInfo, 0),
	}
	if root == nil {
		return result
	}

	w := &walker{
		cfg:    language.ConfigFor(lang),
		lang:   language.Canonical(lang),
		src:    []byte(source),
		result: result,
	}
	w.walk(root, nil, false)

	if len(result.Errors) == 0 && root.HasError() {
		result.AddError(0, 0, "syntax error")
	}
	return result
}

// walker carries per-call extraction state
type walker struct {
	cfg    language.LanguageConfig
	lang   string
	src    []byte
	result *types.ParseResult
}

// walk visits n. methods is non-nil while inside a class body and collects
// the class's methods; inFunction is set inside a recorded function.
func (w *walker) walk(n *sitter.Node, methods *[]types.FunctionInfo, inFunction bool) {
	kind := n.Type()

	switch {
	case kind == "ERROR":
		w.addError(n, "syntax error")
	case n.IsMissing():
		w.addError(n, fmt.Sprintf("missing %s", kind))
	}

	if w.isImport(n) {
		w.result.Imports = append(w.result.Imports, w.importInfo(n))
		return
	}

	if methods == nil && !inFunction && (w.cfg.IsClassNode(kind) || w.cfg.IsInterfaceNode(kind)) {
		if class, ok := w.classInfo(n); ok {
			found := make([]types.FunctionInfo, 0)
			w.walkChildren(n, &found, false)
			class.Methods = found
			w.result.Classes = append(w.result.Classes, class)
			return
		}
	}

	if !inFunction && w.cfg.IsFunctionNode(kind) {
		if fn, ok := w.functionInfo(n); ok {
			w.result.Functions = append(w.result.Functions, fn)
			if methods != nil {
				*methods = append(*methods, fn)
			}
			w.walkChildren(n, methods, true)
			return
		}
	}

	w.walkChildren(n, methods, inFunction)
}

func (w *walker) walkChildren(n *sitter.Node, methods *[]types.FunctionInfo, inFunction bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		w.walk(child, methods, inFunction)
	}
}

func (w *walker) addError(n *sitter.Node, msg string) {
	p := n.StartPoint()
	w.result.AddError(int(p.Row)+1, int(p.Column)+1, msg)
}

// Functions

func (w *walker) functionInfo(n *sitter.Node) (types.FunctionInfo, bool) {
	name := w.functionName(n)
	if name == "" {
		return types.FunctionInfo{}, false
	}

	start, end := lineRange(w.outerNode(n))
	return types.FunctionInfo{
		Name:       name,
		StartLine:  start,
		EndLine:    end,
		Parameters: w.parameters(n),
		ReturnType: w.returnType(n),
		IsAsync:    isAsync(n, w.src),
		IsExported: w.isExported(n, name),
	}, true
}

func (w *walker) functionName(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Content(w.src)
	}
	if decl := n.ChildByFieldName("declarator"); decl != nil {
		return w.declaratorName(decl)
	}

	parent := n.Parent()
	if parent == nil {
		return ""
	}
	field, ok := anonymousFunctionBinders[parent.Type()]
	if !ok {
		return ""
	}
	if name := parent.ChildByFieldName(field); name != nil {
		return singleLine(name.Content(w.src))
	}
	return ""
}

// declaratorName unwraps C++ declarators down to the declared identifier
func (w *walker) declaratorName(n *sitter.Node) string {
	switch n.Type() {
	case "identifier", "field_identifier", "qualified_identifier",
		"destructor_name", "operator_name", "type_identifier":
		return n.Content(w.src)
	}
	if inner := n.ChildByFieldName("declarator"); inner != nil {
		return w.declaratorName(inner)
	}
	return ""
}

func (w *walker) parameters(n *sitter.Node) []string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		if decl := n.ChildByFieldName("declarator"); decl != nil {
			params = decl.ChildByFieldName("parameters")
		}
	}
	if params == nil {
		return nil
	}

	out := make([]string, 0, params.NamedChildCount())
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p == nil || p.Type() == "comment" {
			continue
		}
		out = append(out, singleLine(p.Content(w.src)))
	}
	return out
}

func (w *walker) returnType(n *sitter.Node) string {
	for _, field := range []string{"return_type", "result", "type"} {
		if rt := n.ChildByFieldName(field); rt != nil {
			text := strings.TrimSpace(rt.Content(w.src))
			text = strings.TrimSpace(strings.TrimPrefix(text, ":"))
			return singleLine(text)
		}
	}
	return ""
}

func isAsync(n *sitter.Node, src []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "async":
			return true
		case "function_modifiers":
			if strings.Contains(child.Content(src), "async") {
				return true
			}
		}
	}
	return false
}

// Classes

func (w *walker) classInfo(n *sitter.Node) (types.ClassInfo, bool) {
	name := w.className(n)
	if name == "" {
		return types.ClassInfo{}, false
	}

	start, end := lineRange(w.outerNode(n))
	class := types.ClassInfo{
		Name:       name,
		StartLine:  start,
		EndLine:    end,
		IsExported: w.isExported(n, name),
	}
	w.heritage(n, &class)
	return class, true
}

func (w *walker) className(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return name.Content(w.src)
	}
	// Rust impl blocks are named by the type they implement
	if typ := n.ChildByFieldName("type"); typ != nil && n.Type() == "impl_item" {
		return typ.Content(w.src)
	}
	// Go type declarations wrap one or more type specs
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() == "type_spec" {
			if name := child.ChildByFieldName("name"); name != nil {
				return name.Content(w.src)
			}
		}
	}
	return ""
}

func (w *walker) heritage(n *sitter.Node, class *types.ClassInfo) {
	switch w.lang {
	case "typescript", "javascript":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child == nil || child.Type() != "class_heritage" {
				continue
			}
			for j := 0; j < int(child.NamedChildCount()); j++ {
				clause := child.NamedChild(j)
				if clause == nil {
					continue
				}
				switch clause.Type() {
				case "extends_clause":
					class.Extends = trimKeyword(clause.Content(w.src), "extends")
				case "implements_clause":
					class.Implements = namedContents(clause, w.src)
				default:
					// JavaScript grammar puts the superclass expression directly under class_heritage
					if class.Extends == "" {
						class.Extends = clause.Content(w.src)
					}
				}
			}
		}
	case "java":
		if super := n.ChildByFieldName("superclass"); super != nil {
			class.Extends = trimKeyword(super.Content(w.src), "extends")
		}
		if ifaces := n.ChildByFieldName("interfaces"); ifaces != nil {
			for i := 0; i < int(ifaces.NamedChildCount()); i++ {
				if list := ifaces.NamedChild(i); list != nil {
					class.Implements = append(class.Implements, namedContents(list, w.src)...)
				}
			}
		}
	case "python":
		if supers := n.ChildByFieldName("superclasses"); supers != nil {
			names := namedContents(supers, w.src)
			if len(names) > 0 {
				class.Extends = names[0]
				class.Implements = names[1:]
			}
		}
	case "rust":
		if trait := n.ChildByFieldName("trait"); trait != nil {
			class.Implements = []string{trait.Content(w.src)}
		}
	}
}

// Imports

// isImport reports whether n is a leaf import statement. Containers holding
// other import nodes (Go import blocks) are walked instead, and TypeScript
// export statements and Rust modules only count when they reference another file.
func (w *walker) isImport(n *sitter.Node) bool {
	kind := n.Type()
	if !w.cfg.IsImportNode(kind) {
		return false
	}

	switch kind {
	case "export_statement":
		return n.ChildByFieldName("source") != nil
	case "mod_item":
		return n.ChildByFieldName("body") == nil
	}

	return !w.hasImportDescendant(n)
}

func (w *walker) hasImportDescendant(n *sitter.Node) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if w.cfg.IsImportNode(child.Type()) || w.hasImportDescendant(child) {
			return true
		}
	}
	return false
}

func (w *walker) importInfo(n *sitter.Node) types.ImportInfo {
	imp := types.ImportInfo{
		Line: int(n.StartPoint().Row) + 1,
	}

	switch n.Type() {
	case "import_statement":
		if w.lang == "python" {
			names := namedContents(n, w.src)
			if len(names) > 0 {
				imp.Source = firstWord(names[0])
			}
			imp.Specifiers = names
			break
		}
		w.jsImport(n, &imp)
	case "export_statement":
		w.jsImport(n, &imp)
	case "import_from_statement", "future_import_statement":
		if mod := n.ChildByFieldName("module_name"); mod != nil {
			imp.Source = mod.Content(w.src)
		} else {
			imp.Source = "__future__"
		}
		module := n.ChildByFieldName("module_name")
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child == nil || sameNode(child, module) {
				continue
			}
			if child.Type() == "wildcard_import" {
				imp.IsNamespace = true
				continue
			}
			imp.Specifiers = append(imp.Specifiers, child.Content(w.src))
		}
	case "import_spec":
		if path := n.ChildByFieldName("path"); path != nil {
			imp.Source = unquote(path.Content(w.src))
		}
		if name := n.ChildByFieldName("name"); name != nil {
			alias := name.Content(w.src)
			imp.IsNamespace = alias == "."
			imp.Specifiers = []string{alias}
		}
	case "use_declaration":
		if arg := n.ChildByFieldName("argument"); arg != nil {
			imp.Source = singleLine(arg.Content(w.src))
			imp.IsNamespace = strings.HasSuffix(imp.Source, "*")
		}
	case "mod_item":
		if name := n.ChildByFieldName("name"); name != nil {
			imp.Source = name.Content(w.src)
		}
	case "import_declaration":
		text := trimKeyword(strings.TrimSuffix(strings.TrimSpace(n.Content(w.src)), ";"), "import")
		text = trimKeyword(text, "static")
		imp.Source = text
		imp.IsNamespace = strings.HasSuffix(text, ".*")
	case "preproc_include", "include_declaration":
		if path := n.ChildByFieldName("path"); path != nil {
			imp.Source = unquote(path.Content(w.src))
		}
	case "using_declaration":
		text := trimKeyword(strings.TrimSuffix(strings.TrimSpace(n.Content(w.src)), ";"), "using")
		imp.IsNamespace = strings.HasPrefix(text, "namespace ")
		imp.Source = trimKeyword(text, "namespace")
	}

	if imp.Source == "" {
		imp.Source = singleLine(n.Content(w.src))
	}
	return imp
}

// jsImport fills an ImportInfo from an ES module import or re-export
func (w *walker) jsImport(n *sitter.Node, imp *types.ImportInfo) {
	if src := n.ChildByFieldName("source"); src != nil {
		imp.Source = unquote(src.Content(w.src))
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_clause":
			w.importClause(child, imp)
		case "export_clause":
			imp.Specifiers = append(imp.Specifiers, specifierNames(child, w.src)...)
		case "namespace_export":
			imp.IsNamespace = true
		}
	}
}

func (w *walker) importClause(clause *sitter.Node, imp *types.ImportInfo) {
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			imp.IsDefault = true
			imp.Specifiers = append(imp.Specifiers, child.Content(w.src))
		case "namespace_import":
			imp.IsNamespace = true
			imp.Specifiers = append(imp.Specifiers, namedContents(child, w.src)...)
		case "named_imports":
			imp.Specifiers = append(imp.Specifiers, specifierNames(child, w.src)...)
		}
	}
}

// specifierNames lists the local names of import_specifier / export_specifier children
func specifierNames(n *sitter.Node, src []byte) []string {
	names := make([]string, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec == nil {
			continue
		}
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			names = append(names, alias.Content(src))
		} else if name := spec.ChildByFieldName("name"); name != nil {
			names = append(names, name.Content(src))
		} else {
			names = append(names, spec.Content(src))
		}
	}
	return names
}

// Export detection

func (w *walker) isExported(n *sitter.Node, name string) bool {
	switch w.lang {
	case "typescript", "javascript":
		for p, depth := n.Parent(), 0; p != nil && depth < 3; p, depth = p.Parent(), depth+1 {
			if p.Type() == "export_statement" {
				return true
			}
		}
		return false
	case "go":
		for _, r := range name {
			return unicode.IsUpper(r)
		}
		return false
	case "rust":
		return hasChildOfType(n, "visibility_modifier")
	case "java":
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child != nil && child.Type() == "modifiers" {
				return strings.Contains(child.Content(w.src), "public")
			}
		}
		return false
	case "python":
		return !strings.HasPrefix(name, "_")
	default:
		return !strings.HasPrefix(strings.TrimSpace(n.Content(w.src)), "static")
	}
}

// Helpers

// outerNode widens a node to its decorated_definition wrapper so Python
// decorators stay with the construct
func (w *walker) outerNode(n *sitter.Node) *sitter.Node {
	if parent := n.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		return parent
	}
	return n
}

// lineRange returns the node's 1-based inclusive line span. A node ending at
// column 0 ends on the previous line.
func lineRange(n *sitter.Node) (int, int) {
	start := int(n.StartPoint().Row) + 1
	end := int(n.EndPoint().Row) + 1
	if n.EndPoint().Column == 0 && end > start {
		end--
	}
	return start, end
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func hasChildOfType(n *sitter.Node, kind string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == kind {
			return true
		}
	}
	return false
}

func namedContents(n *sitter.Node, src []byte) []string {
	out := make([]string, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, singleLine(child.Content(src)))
	}
	return out
}

func trimKeyword(text, keyword string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, keyword); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
		return strings.TrimSpace(rest)
	}
	return text
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'`<>")
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
