package types

import "errors"

// FunctionInfo describes a function, method or named closure found by the extractor
type FunctionInfo struct {
	Name       string   `json:"name"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	Parameters []string `json:"parameters,omitempty"`
	ReturnType string   `json:"return_type,omitempty"`
	IsAsync    bool     `json:"is_async,omitempty"`
	IsExported bool     `json:"is_exported,omitempty"`
}

// ClassInfo describes a class-like construct (class, struct, impl block, interface)
type ClassInfo struct {
	Name       string         `json:"name"`
	StartLine  int            `json:"start_line"`
	EndLine    int            `json:"end_line"`
	Methods    []FunctionInfo `json:"methods"`
	Extends    string         `json:"extends,omitempty"`
	Implements []string       `json:"implements,omitempty"`
	IsExported bool           `json:"is_exported,omitempty"`
}

// ImportInfo describes a single import or use statement
type ImportInfo struct {
	Source      string   `json:"source"`
	Specifiers  []string `json:"specifiers,omitempty"`
	IsDefault   bool     `json:"is_default,omitempty"`
	IsNamespace bool     `json:"is_namespace,omitempty"`
	Line        int      `json:"line"`
}

// Contains reports whether f lies entirely within the class's line range
func (c *ClassInfo) Contains(f *FunctionInfo) bool {
	return f.StartLine >= c.StartLine && f.EndLine <= c.EndLine
}

// Validate checks the function descriptor's identity and position
func (f *FunctionInfo) Validate() error {
	if f.Name == "" {
		return errors.New("function name is required")
	}
	return validateRange(f.StartLine, f.EndLine)
}

// Validate checks the class descriptor and each of its methods
func (c *ClassInfo) Validate() error {
	if c.Name == "" {
		return errors.New("class name is required")
	}
	if err := validateRange(c.StartLine, c.EndLine); err != nil {
		return err
	}
	for i := range c.Methods {
		if err := c.Methods[i].Validate(); err != nil {
			return err
		}
		if !c.Contains(&c.Methods[i]) {
			return errors.New("method lies outside its class")
		}
	}
	return nil
}

func validateRange(start, end int) error {
	if start <= 0 || end <= 0 {
		return errors.New("invalid position: line numbers must be positive")
	}
	if start > end {
		return errors.New("invalid position: start line must be before or equal to end line")
	}
	return nil
}

func cloneFunctions(in []FunctionInfo) []FunctionInfo {
	if in == nil {
		return nil
	}
	out := make([]FunctionInfo, len(in))
	for i, f := range in {
		f.Parameters = cloneStrings(f.Parameters)
		out[i] = f
	}
	return out
}

func cloneClasses(in []ClassInfo) []ClassInfo {
	if in == nil {
		return nil
	}
	out := make([]ClassInfo, len(in))
	for i, c := range in {
		c.Methods = cloneFunctions(c.Methods)
		c.Implements = cloneStrings(c.Implements)
		out[i] = c
	}
	return out
}

func cloneImports(in []ImportInfo) []ImportInfo {
	if in == nil {
		return nil
	}
	out := make([]ImportInfo, len(in))
	for i, imp := range in {
		imp.Specifiers = cloneStrings(imp.Specifiers)
		out[i] = imp
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// CloneFunctions returns a deep copy of a function descriptor list
func CloneFunctions(in []FunctionInfo) []FunctionInfo { return cloneFunctions(in) }

// CloneClasses returns a deep copy of a class descriptor list
func CloneClasses(in []ClassInfo) []ClassInfo { return cloneClasses(in) }

// CloneImports returns a deep copy of an import descriptor list
func CloneImports(in []ImportInfo) []ImportInfo { return cloneImports(in) }
