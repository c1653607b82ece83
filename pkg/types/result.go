package types

// SearchResult represents a single stored chunk matched by a search
type SearchResult struct {
	// Identification
	ChunkID int64 `json:"chunk_id"`
	Rank    int   `json:"rank"` // Position in result set (1-based)

	// Scoring
	RelevanceScore float64 `json:"relevance_score"` // Normalized BM25

	// Metadata
	File  *FileInfo `json:"file"`
	Chunk Chunk     `json:"chunk"`
}

// FileInfo contains file metadata for a search result
type FileInfo struct {
	Path     string `json:"path"` // Relative to project root
	Language string `json:"language"`
}

// Validate checks if the search result is valid
func (sr *SearchResult) Validate() error {
	if sr.ChunkID == 0 {
		return ErrInvalidChunkID
	}

	if sr.Rank < 1 {
		return ErrInvalidRank
	}

	if sr.RelevanceScore < 0 || sr.RelevanceScore > 1 {
		return ErrInvalidRelevanceScore
	}

	if sr.File == nil {
		return ErrMissingFileInfo
	}

	if sr.Chunk.Text == "" {
		return ErrEmptyContent
	}

	return nil
}
