// Package parser turns source text into tree-sitter syntax trees and extracts
// the structural metadata the chunker assembles chunks from.
//
// # Basic Usage
//
//	p := parser.New()
//	tree, err := p.Parse(ctx, src, "typescript")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
//
//	result := parser.NewExtractor().Extract(tree.RootNode(), string(src), "typescript")
//	for _, fn := range result.Functions {
//	    fmt.Printf("%s: lines %d-%d\n", fn.Name, fn.StartLine, fn.EndLine)
//	}
//
// # Error Handling
//
// Syntax errors never abort parsing. tree-sitter produces ERROR and missing
// nodes for malformed input; the extractor records each as a ParseError and
// keeps walking, so partial results are still returned:
//
//	if result.HasErrors() {
//	    for _, e := range result.Errors {
//	        fmt.Printf("line %d: %s\n", e.Line, e.Message)
//	    }
//	}
//
// # Nesting
//
// Only outermost constructs are recorded. Functions nested in functions are
// part of the enclosing function, classes nested anywhere are part of the
// enclosing construct, and functions inside a class become its methods.
package parser
