package chunker

import "strings"

// dependencyPrefixes are language-agnostic markers of import-like lines
var dependencyPrefixes = []string{
	"import ",
	"use ",
	"require(",
	"from ",
	"#include",
	"using ",
}

// ScanDependencies returns every trimmed line of text that starts with an
// import-like prefix, in source order and without deduplication.
func ScanDependencies(text string) []string {
	deps := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range dependencyPrefixes {
			if strings.HasPrefix(line, prefix) {
				deps = append(deps, line)
				break
			}
		}
	}
	return deps
}
