package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChunk() *Chunk {
	return &Chunk{
		ID:        "c1",
		Text:      "class A {\n  run() {}\n}",
		Tokens:    5,
		StartLine: 3,
		EndLine:   5,
		Language:  "typescript",
		Functions: []FunctionInfo{{Name: "run", StartLine: 4, EndLine: 4, Parameters: []string{"x"}}},
		Classes: []ClassInfo{{
			Name: "A", StartLine: 3, EndLine: 5,
			Methods:    []FunctionInfo{{Name: "run", StartLine: 4, EndLine: 4}},
			Implements: []string{"Runner"},
		}},
		Imports:      []ImportInfo{{Source: "fs", Specifiers: []string{"readFile"}, Line: 1}},
		Dependencies: []string{"import fs"},
	}
}

func TestChunk_Validate(t *testing.T) {
	require.NoError(t, sampleChunk().Validate())

	tests := []struct {
		name   string
		mutate func(*Chunk)
	}{
		{"missing id", func(c *Chunk) { c.ID = "" }},
		{"blank text", func(c *Chunk) { c.Text = "  \n " }},
		{"zero start", func(c *Chunk) { c.StartLine = 0 }},
		{"inverted range", func(c *Chunk) { c.StartLine = 9 }},
		{"missing language", func(c *Chunk) { c.Language = "" }},
		{"negative tokens", func(c *Chunk) { c.Tokens = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleChunk()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestChunk_Clone(t *testing.T) {
	orig := sampleChunk()
	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.Functions[0].Parameters[0] = "y"
	clone.Classes[0].Methods[0].Name = "stop"
	clone.Classes[0].Implements[0] = "Stopper"
	clone.Imports[0].Specifiers[0] = "writeFile"
	clone.Dependencies[0] = "import os"

	assert.Equal(t, "x", orig.Functions[0].Parameters[0])
	assert.Equal(t, "run", orig.Classes[0].Methods[0].Name)
	assert.Equal(t, "Runner", orig.Classes[0].Implements[0])
	assert.Equal(t, "readFile", orig.Imports[0].Specifiers[0])
	assert.Equal(t, "import fs", orig.Dependencies[0])
}

func TestChunk_LineCountAndStructural(t *testing.T) {
	c := sampleChunk()
	assert.Equal(t, 3, c.LineCount())
	assert.True(t, c.IsStructural())

	c.Functions = nil
	c.Classes = nil
	assert.False(t, c.IsStructural())
}

func TestClassInfo_Contains(t *testing.T) {
	class := ClassInfo{Name: "A", StartLine: 10, EndLine: 20}
	assert.True(t, class.Contains(&FunctionInfo{StartLine: 10, EndLine: 20}))
	assert.True(t, class.Contains(&FunctionInfo{StartLine: 12, EndLine: 15}))
	assert.False(t, class.Contains(&FunctionInfo{StartLine: 9, EndLine: 15}))
	assert.False(t, class.Contains(&FunctionInfo{StartLine: 15, EndLine: 21}))
}
