package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/prism-mcp/internal/storage"
	"github.com/dshills/prism-mcp/pkg/types"
)

type fixtureChunk struct {
	path     string
	language string
	text     string
	fn       string
}

var fixtures = []fixtureChunk{
	{"internal/auth/login.go", "go", "func Login(user string) error {\n\treturn authenticate(user)\n}", "Login"},
	{"web/src/login.ts", "typescript", "function login(user) {\n  return authenticate(user)\n}", "login"},
	{"pkg/util.py", "python", "def helper():\n    return 42", "helper"},
}

func setupTestSearcher(t *testing.T) (*Searcher, storage.Storage, *storage.Project) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	project := &storage.Project{RootPath: "/test/search", ChunkBudget: 512, IndexVersion: "1.0.0"}
	require.NoError(t, store.CreateProject(ctx, project))

	for i, fx := range fixtures {
		file := &storage.File{
			ProjectID:   project.ID,
			FilePath:    fx.path,
			Language:    fx.language,
			ContentHash: types.HashContent(fx.text),
			ModTime:     time.Now(),
			SizeBytes:   int64(len(fx.text)),
		}
		require.NoError(t, store.UpsertFile(ctx, file))

		chunk := &types.Chunk{
			ID:        fx.path,
			Text:      fx.text,
			Tokens:    len(fx.text) / 4,
			StartLine: 1,
			EndLine:   3 - i%2,
			Language:  fx.language,
			Functions: []types.FunctionInfo{{Name: fx.fn, StartLine: 1, EndLine: 2}},
		}
		require.NoError(t, store.UpsertChunk(ctx, storage.FromTypesChunk(chunk, file.ID)))
	}

	return NewSearcher(store), store, project
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       SearchRequest
		wantErr   bool
		wantLimit int
	}{
		{"defaults applied", SearchRequest{Query: "login"}, false, DefaultLimit},
		{"limit capped", SearchRequest{Query: "login", Limit: 500}, false, MaxLimit},
		{"limit kept", SearchRequest{Query: "login", Limit: 7}, false, 7},
		{"empty query", SearchRequest{Query: "   "}, true, 0},
		{"bad pattern", SearchRequest{Query: "login", FilePattern: "src/[a-"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, tt.req.Limit)
			assert.Equal(t, DefaultCacheTTL, tt.req.CacheTTL)
		})
	}
}

func TestSearch_Keyword(t *testing.T) {
	s, _, project := setupTestSearcher(t)

	resp, err := s.Search(context.Background(), SearchRequest{ProjectID: project.ID, Query: "authenticate"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.TotalResults)
	assert.False(t, resp.CacheHit)

	paths := make([]string, 0, 2)
	for i, r := range resp.Results {
		require.NoError(t, r.Validate())
		assert.Equal(t, i+1, r.Rank)
		assert.Contains(t, r.Chunk.Text, "authenticate")
		require.Len(t, r.Chunk.Functions, 1)
		assert.Equal(t, r.File.Path, r.Chunk.ID)
		paths = append(paths, r.File.Path)
	}
	assert.ElementsMatch(t, []string{"internal/auth/login.go", "web/src/login.ts"}, paths)
}

func TestSearch_SymbolNames(t *testing.T) {
	s, _, project := setupTestSearcher(t)

	resp, err := s.Search(context.Background(), SearchRequest{ProjectID: project.ID, Query: "helper"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "pkg/util.py", resp.Results[0].File.Path)
	assert.Equal(t, "python", resp.Results[0].File.Language)
}

func TestSearch_Filters(t *testing.T) {
	s, _, project := setupTestSearcher(t)
	ctx := context.Background()

	resp, err := s.Search(ctx, SearchRequest{
		ProjectID: project.ID,
		Query:     "authenticate",
		Filters:   &storage.SearchFilters{Languages: []string{"typescript"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "web/src/login.ts", resp.Results[0].File.Path)

	resp, err = s.Search(ctx, SearchRequest{
		ProjectID:   project.ID,
		Query:       "authenticate",
		FilePattern: "internal/**/*.go",
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "internal/auth/login.go", resp.Results[0].File.Path)
	assert.Equal(t, 1, resp.Results[0].Rank)
	assert.Equal(t, 2, resp.TextResults)

	resp, err = s.Search(ctx, SearchRequest{
		ProjectID:   project.ID,
		Query:       "authenticate",
		FilePattern: "docs/**",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearch_LimitRespected(t *testing.T) {
	s, _, project := setupTestSearcher(t)

	resp, err := s.Search(context.Background(), SearchRequest{ProjectID: project.ID, Query: "authenticate", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, _, project := setupTestSearcher(t)
	ctx := context.Background()

	_, err := s.Search(ctx, SearchRequest{ProjectID: project.ID, Query: ""})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	// punctuation only leaves nothing to match
	_, err = s.Search(ctx, SearchRequest{ProjectID: project.ID, Query: "(!)"})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_OtherProjectIsolated(t *testing.T) {
	s, store, _ := setupTestSearcher(t)
	ctx := context.Background()

	other := &storage.Project{RootPath: "/test/other", ChunkBudget: 512, IndexVersion: "1.0.0"}
	require.NoError(t, store.CreateProject(ctx, other))

	resp, err := s.Search(ctx, SearchRequest{ProjectID: other.ID, Query: "authenticate"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearch_Cache(t *testing.T) {
	s, _, project := setupTestSearcher(t)
	ctx := context.Background()
	req := SearchRequest{ProjectID: project.ID, Query: "authenticate", UseCache: true}

	first, err := s.Search(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 1, s.CacheLen())

	// callers mutating a response must not corrupt the cached copy
	first.Results[0].Chunk.Functions[0].Name = "mutated"
	first.Results[0].File.Path = "mutated"

	second, err := s.Search(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	require.Len(t, second.Results, 2)
	assert.NotEqual(t, "mutated", second.Results[0].Chunk.Functions[0].Name)
	assert.NotEqual(t, "mutated", second.Results[0].File.Path)

	s.InvalidateCache()
	assert.Zero(t, s.CacheLen())

	third, err := s.Search(ctx, req)
	require.NoError(t, err)
	assert.False(t, third.CacheHit)
}

func TestSearch_CacheExpiry(t *testing.T) {
	s, _, project := setupTestSearcher(t)
	ctx := context.Background()
	req := SearchRequest{ProjectID: project.ID, Query: "authenticate", UseCache: true, CacheTTL: time.Nanosecond}

	_, err := s.Search(ctx, req)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	resp, err := s.Search(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestSearch_NoResultsNotCached(t *testing.T) {
	s, _, project := setupTestSearcher(t)

	_, err := s.Search(context.Background(), SearchRequest{ProjectID: project.ID, Query: "nonexistent", UseCache: true})
	require.NoError(t, err)
	assert.Zero(t, s.CacheLen())
}

func TestComputeQueryHash(t *testing.T) {
	base := SearchRequest{ProjectID: 1, Query: "login", Limit: 10}
	same := base

	withLang := base
	withLang.Filters = &storage.SearchFilters{Languages: []string{"go"}}

	withType := base
	withType.Filters = &storage.SearchFilters{ChunkTypes: []string{"class"}}

	withPattern := base
	withPattern.FilePattern = "src/**"

	otherProject := base
	otherProject.ProjectID = 2

	assert.Equal(t, computeQueryHash(base), computeQueryHash(same))
	for _, req := range []SearchRequest{withLang, withType, withPattern, otherProject} {
		assert.NotEqual(t, computeQueryHash(base), computeQueryHash(req))
	}
	assert.NotEqual(t, computeQueryHash(withLang), computeQueryHash(withType))
}

func TestCopySearchResponse(t *testing.T) {
	assert.Nil(t, copySearchResponse(nil))

	src := &SearchResponse{
		TotalResults: 1,
		Results: []types.SearchResult{{
			ChunkID: 1,
			Rank:    1,
			File:    &types.FileInfo{Path: "a.go", Language: "go"},
			Chunk:   types.Chunk{ID: "x", Text: "func a() {}", Dependencies: []string{"import \"fmt\""}},
		}},
	}

	dst := copySearchResponse(src)
	require.Len(t, dst.Results, 1)
	dst.Results[0].File.Path = "b.go"
	dst.Results[0].Chunk.Dependencies[0] = "changed"

	assert.Equal(t, "a.go", src.Results[0].File.Path)
	assert.Equal(t, "import \"fmt\"", src.Results[0].Chunk.Dependencies[0])
}
