package types

import (
	"crypto/sha256"
	"errors"
	"strings"
)

// Chunk is a contiguous span of source text selected for embedding and search
type Chunk struct {
	// Identification
	ID string `json:"id"`

	// Content
	Text   string `json:"text"`
	Tokens int    `json:"tokens"`

	// Location (1-based, inclusive)
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// Metadata
	Language     string         `json:"language"`
	Functions    []FunctionInfo `json:"functions"`
	Classes      []ClassInfo    `json:"classes"`
	Imports      []ImportInfo   `json:"imports"`
	Dependencies []string       `json:"dependencies"`
}

// ValidateContent checks if the chunk content is valid
func (c *Chunk) ValidateContent() error {
	if strings.TrimSpace(c.Text) == "" {
		return errors.New("chunk text cannot be empty")
	}

	if c.StartLine <= 0 || c.EndLine <= 0 {
		return errors.New("line numbers must be positive")
	}

	if c.StartLine > c.EndLine {
		return errors.New("start line must be before or equal to end line")
	}

	return nil
}

// Validate performs comprehensive validation of the chunk
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return errors.New("chunk ID is required")
	}

	if err := c.ValidateContent(); err != nil {
		return err
	}

	if c.Language == "" {
		return errors.New("chunk language is required")
	}

	if c.Tokens < 0 {
		return errors.New("token count cannot be negative")
	}

	return nil
}

// LineCount returns the number of source lines the chunk spans
func (c *Chunk) LineCount() int {
	if c.EndLine < c.StartLine {
		return 0
	}
	return c.EndLine - c.StartLine + 1
}

// IsStructural reports whether the chunk was aligned to a function or class boundary
func (c *Chunk) IsStructural() bool {
	return len(c.Functions) > 0 || len(c.Classes) > 0
}

// Clone returns a deep copy that shares no backing storage with c
func (c *Chunk) Clone() *Chunk {
	out := *c
	out.Functions = cloneFunctions(c.Functions)
	out.Classes = cloneClasses(c.Classes)
	out.Imports = cloneImports(c.Imports)
	out.Dependencies = cloneStrings(c.Dependencies)
	return &out
}

// HashContent returns the SHA-256 digest used to detect changed content
func HashContent(text string) [32]byte {
	return sha256.Sum256([]byte(text))
}
