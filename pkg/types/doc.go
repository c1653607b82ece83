// Package types provides shared type definitions for the prism indexer.
//
// This package defines the domain types used across the parser, chunker,
// storage and MCP layers: structural descriptors, chunks, parse results and
// search results.
//
// # Structural Descriptors
//
// FunctionInfo, ClassInfo and ImportInfo are produced once per parse by the
// structural extractor and are read-only afterwards. Line numbers are 1-based
// and inclusive:
//
//	fn := types.FunctionInfo{
//	    Name:      "greet",
//	    StartLine: 3,
//	    EndLine:   5,
//	}
//
// A ClassInfo carries its methods, so a function whose range lies inside a
// class is already represented by the class:
//
//	if class.Contains(&fn) {
//	    // method, skip
//	}
//
// # Chunks
//
// Chunk is the unit handed to an embedding pipeline. Its Text is the verbatim
// join of source lines [StartLine, EndLine]. Every chunk owns its slices, so a
// chunk can be serialized or mutated without affecting its siblings:
//
//	c2 := c.Clone()
//	c2.Dependencies = append(c2.Dependencies, "use std::io;")
//
// # Validation
//
//	if err := chunk.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Search Results
//
// SearchResult pairs a stored chunk with its rank and normalized relevance
// score in [0, 1].
package types
