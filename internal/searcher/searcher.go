package searcher

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/prism-mcp/internal/storage"
	"github.com/dshills/prism-mcp/pkg/types"
)

const (
	DefaultLimit    = 10
	MaxLimit        = 100
	DefaultCacheTTL = time.Hour

	cacheSize = 1000

	// overFetchFactor widens the storage query when results are filtered
	// afterwards by file pattern
	overFetchFactor = 5
)

// ErrEmptyQuery is returned for a query with no searchable words
var ErrEmptyQuery = errors.New("query cannot be empty")

// SearchRequest contains parameters for a search operation
type SearchRequest struct {
	ProjectID   int64
	Query       string
	Limit       int
	Filters     *storage.SearchFilters
	FilePattern string // doublestar glob over project-relative paths
	UseCache    bool
	CacheTTL    time.Duration
}

// SearchResponse contains search results and metadata
type SearchResponse struct {
	Results      []types.SearchResult
	TotalResults int
	TextResults  int // Hits returned by storage before file filtering
	Duration     time.Duration
	CacheHit     bool
}

type cacheEntry struct {
	response  *SearchResponse
	expiresAt time.Time
}

// Searcher runs keyword searches over stored chunks
type Searcher struct {
	storage storage.Storage
	cache   *lru.Cache[[32]byte, *cacheEntry]
	cacheMu sync.RWMutex
}

// NewSearcher creates a new Searcher instance
func NewSearcher(store storage.Storage) *Searcher {
	cache, err := lru.New[[32]byte, *cacheEntry](cacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}

	return &Searcher{
		storage: store,
		cache:   cache,
	}
}

// Search performs a BM25 keyword search and hydrates every hit with its
// chunk and file metadata. Results are ranked 1..n by relevance.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	startTime := time.Now()

	if err := validateRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	key := computeQueryHash(req)
	if req.UseCache {
		if cached := s.checkCache(key); cached != nil {
			cached.CacheHit = true
			cached.Duration = time.Since(startTime)
			return cached, nil
		}
	}

	fetch := req.Limit
	if req.FilePattern != "" {
		fetch = min(req.Limit*overFetchFactor, MaxLimit*overFetchFactor)
	}

	textResults, err := s.storage.SearchText(ctx, req.ProjectID, req.Query, fetch, req.Filters)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyQuery) {
			return nil, fmt.Errorf("invalid search request: %w", ErrEmptyQuery)
		}
		return nil, err
	}

	results, err := s.fetchResults(ctx, textResults, req.FilePattern, req.Limit)
	if err != nil {
		return nil, err
	}

	response := &SearchResponse{
		Results:      results,
		TotalResults: len(results),
		TextResults:  len(textResults),
		Duration:     time.Since(startTime),
	}

	if req.UseCache && len(response.Results) > 0 {
		s.storeInCache(key, req.CacheTTL, response)
	}
	return response, nil
}

// fetchResults loads chunk and file rows for ranked hits, dropping hits whose
// file does not match the pattern and hits whose rows vanished meanwhile
func (s *Searcher) fetchResults(ctx context.Context, hits []storage.TextResult, pattern string, limit int) ([]types.SearchResult, error) {
	results := make([]types.SearchResult, 0, min(limit, len(hits)))
	files := make(map[int64]*storage.File)

	for _, hit := range hits {
		if len(results) == limit {
			break
		}

		chunk, err := s.storage.GetChunk(ctx, hit.ChunkID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load chunk %d: %w", hit.ChunkID, err)
		}

		file, ok := files[chunk.FileID]
		if !ok {
			file, err = s.storage.GetFileByID(ctx, chunk.FileID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to load file %d: %w", chunk.FileID, err)
			}
			files[chunk.FileID] = file
		}

		if pattern != "" {
			if matched, _ := doublestar.Match(pattern, file.FilePath); !matched {
				continue
			}
		}

		results = append(results, types.SearchResult{
			ChunkID:        hit.ChunkID,
			Rank:           len(results) + 1,
			RelevanceScore: hit.BM25Score,
			File: &types.FileInfo{
				Path:     file.FilePath,
				Language: file.Language,
			},
			Chunk: *chunk.ToTypesChunk(),
		})
	}
	return results, nil
}

func validateRequest(req *SearchRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return ErrEmptyQuery
	}
	if req.FilePattern != "" && !doublestar.ValidatePattern(req.FilePattern) {
		return fmt.Errorf("invalid file pattern %q", req.FilePattern)
	}

	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	if req.CacheTTL <= 0 {
		req.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// checkCache returns a copy of a live cached response, or nil
func (s *Searcher) checkCache(key [32]byte) *SearchResponse {
	s.cacheMu.RLock()
	entry, found := s.cache.Get(key)
	if !found {
		s.cacheMu.RUnlock()
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		s.cacheMu.RUnlock()

		s.cacheMu.Lock()
		s.cache.Remove(key)
		s.cacheMu.Unlock()
		return nil
	}
	response := copySearchResponse(entry.response)
	s.cacheMu.RUnlock()

	return response
}

func (s *Searcher) storeInCache(key [32]byte, ttl time.Duration, response *SearchResponse) {
	entry := &cacheEntry{
		response:  copySearchResponse(response),
		expiresAt: time.Now().Add(ttl),
	}

	s.cacheMu.Lock()
	s.cache.Add(key, entry)
	s.cacheMu.Unlock()
}

// copySearchResponse deep copies a response so cached entries never alias
// what callers hold
func copySearchResponse(src *SearchResponse) *SearchResponse {
	if src == nil {
		return nil
	}

	dst := *src
	dst.Results = make([]types.SearchResult, len(src.Results))
	for i, result := range src.Results {
		dst.Results[i] = result
		dst.Results[i].Chunk = *result.Chunk.Clone()
		if result.File != nil {
			fileCopy := *result.File
			dst.Results[i].File = &fileCopy
		}
	}
	return &dst
}

// computeQueryHash keys the cache on everything that changes the result set
func computeQueryHash(req SearchRequest) [32]byte {
	var data strings.Builder
	fmt.Fprintf(&data, "%d|%s|%d|%s", req.ProjectID, req.Query, req.Limit, req.FilePattern)

	if req.Filters != nil {
		data.WriteString("|filters:")
		data.WriteString(strings.Join(req.Filters.Languages, ","))
		data.WriteString("|")
		data.WriteString(strings.Join(req.Filters.ChunkTypes, ","))
		fmt.Fprintf(&data, "|%.2f", req.Filters.MinRelevance)
	}

	return sha256.Sum256([]byte(data.String()))
}

// InvalidateCache drops cached responses after a project is re-indexed.
// The LRU cannot filter by project, so the whole cache is purged.
func (s *Searcher) InvalidateCache() {
	s.cacheMu.Lock()
	s.cache.Purge()
	s.cacheMu.Unlock()
}

// CacheLen reports the number of cached responses
func (s *Searcher) CacheLen() int {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	return s.cache.Len()
}
