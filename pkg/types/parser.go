package types

// ParseResult is the structural extractor's output for one source file
type ParseResult struct {
	Language string

	// Extracted data, in source order
	Functions []FunctionInfo
	Classes   []ClassInfo
	Imports   []ImportInfo

	// Errors encountered during parsing
	Errors []ParseError
}

// ParseError represents a syntax error node found in the tree
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return pe.Message
}

// HasErrors returns true if any parsing errors occurred
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// AddError adds a parsing error to the result
func (pr *ParseResult) AddError(line, col int, msg string) {
	pr.Errors = append(pr.Errors, ParseError{
		Line:    line,
		Column:  col,
		Message: msg,
	})
}
