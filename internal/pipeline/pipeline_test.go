// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuga-i2/Researchmate/internal/collect"
	"github.com/yuga-i2/Researchmate/internal/embed"
	"github.com/yuga-i2/Researchmate/internal/vectorstore"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

type stubProvider struct {
	name    string
	records []types.PaperRecord
	err     error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Search(ctx context.Context, query string, maxResults int) ([]types.PaperRecord, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

// vectorFor maps each known text to a fixed unit-ish vector so tests can
// predict distances.
type stubEmbedProvider struct {
	vectors map[string][]float32
	err     error
}

func (p *stubEmbedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	if v, ok := p.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (p *stubEmbedProvider) Dimension() int { return 3 }

func (p *stubEmbedProvider) ModelName() string { return "stub-embed" }

// captureStore records upsert batches and serves canned neighbors.
type captureStore struct {
	ids        []string
	docs       []string
	embeddings [][]float32
	metas      []types.DocumentMeta
	upserts    int

	upsertErr error
	queryErr  error
	neighbors vectorstore.Neighbors
}

func (s *captureStore) Upsert(ctx context.Context, ids, docs []string, embeddings [][]float32, metas []types.DocumentMeta) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserts++
	s.ids = append(s.ids, ids...)
	s.docs = append(s.docs, docs...)
	s.embeddings = append(s.embeddings, embeddings...)
	s.metas = append(s.metas, metas...)
	return nil
}

func (s *captureStore) NearestNeighbors(ctx context.Context, query []float32, k int) (vectorstore.Neighbors, error) {
	if s.queryErr != nil {
		return vectorstore.Neighbors{}, s.queryErr
	}
	return s.neighbors, nil
}

func newTestEmbedder(p embed.Provider, w *bytes.Buffer) *embed.Embedder {
	return embed.New(p, w)
}

func TestIngestAssignsPositionalIDs(t *testing.T) {
	provider := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "2401.0001", Title: "First", Abstract: types.FieldValue{"alpha abstract"}},
		{ID: "2401.0002", Title: "Second", Abstract: types.FieldValue{"beta abstract"}},
		{ID: "2401.0003", Title: "Third", Abstract: types.FieldValue{"gamma abstract"}},
	}}
	store := &captureStore{}
	var buf bytes.Buffer
	p := New([]collect.Provider{provider}, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	summary := p.Ingest(context.Background(), []string{"transformers"}, 5)

	require.Equal(t, 1, summary.Ingested)
	assert.Equal(t, 3, summary.Documents)
	assert.Equal(t, []string{"transformers_0", "transformers_1", "transformers_2"}, store.ids)
	assert.Equal(t, "alpha abstract", store.docs[0])
	assert.Equal(t, "First", store.metas[0].Title)
}

func TestIngestDropsRecordsWithoutText(t *testing.T) {
	arxiv := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "2401.0001", Title: "Attention Is All You Need", Abstract: types.FieldValue{"the transformer"}},
		{ID: "2401.0002"},
	}}
	semantic := &stubProvider{name: "semanticscholar", err: errors.New("503 upstream")}
	store := &captureStore{}
	var buf bytes.Buffer
	p := New([]collect.Provider{arxiv, semantic}, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	summary := p.Ingest(context.Background(), []string{"transformers"}, 5)

	require.Equal(t, 1, summary.Ingested)
	assert.Equal(t, 1, summary.Documents)
	assert.Equal(t, 1, summary.Dropped)
	assert.Equal(t, []string{"transformers_0"}, store.ids)
	assert.Contains(t, buf.String(), "semanticscholar")
}

func TestIngestSkipsQueryWithNoValidPapers(t *testing.T) {
	provider := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "x1"},
		{ID: "x2"},
	}}
	store := &captureStore{}
	var buf bytes.Buffer
	p := New([]collect.Provider{provider}, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	summary := p.Ingest(context.Background(), []string{"empty topic"}, 5)

	assert.Equal(t, 0, summary.Ingested)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Dropped)
	assert.Equal(t, 0, store.upserts)
	assert.Contains(t, buf.String(), "no valid papers")
}

func TestIngestStoreFailureAbandonsOnlyThatQuery(t *testing.T) {
	provider := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "a", Title: "A", Abstract: types.FieldValue{"text a"}},
	}}
	store := &captureStore{upsertErr: errors.New("disk full")}
	var buf bytes.Buffer
	p := New([]collect.Provider{provider}, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	summary := p.Ingest(context.Background(), []string{"first", "second"}, 5)

	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Ingested)
	assert.True(t, summary.HasFailures())
	assert.Contains(t, buf.String(), "abandoning query")
}

func TestIngestCountsDegradedEmbeddings(t *testing.T) {
	provider := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "a", Abstract: types.FieldValue{"good text"}},
		{ID: "b", Abstract: types.FieldValue{"broken text"}},
	}}
	ep := &stubEmbedProvider{vectors: map[string][]float32{
		"good text": {1, 0, 0},
	}}
	// Wrong-length vector for the second document forces the zero
	// vector fallback.
	ep.vectors["broken text"] = []float32{1, 0}
	store := &captureStore{}
	var buf bytes.Buffer
	p := New([]collect.Provider{provider}, newTestEmbedder(ep, &buf), store, &buf)

	summary := p.Ingest(context.Background(), []string{"q"}, 5)

	require.Equal(t, 1, summary.Ingested)
	assert.Equal(t, 1, summary.Degraded)
	require.Len(t, store.embeddings, 2)
	assert.Equal(t, []float32{0, 0, 0}, store.embeddings[1])
}

func TestIngestReingestOverwrites(t *testing.T) {
	store, err := vectorstore.Open(types.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	provider := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "a", Title: "Old Title", Abstract: types.FieldValue{"old text"}},
	}}
	var buf bytes.Buffer
	p := New([]collect.Provider{provider}, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	p.Ingest(context.Background(), []string{"q"}, 5)
	provider.records = []types.PaperRecord{
		{ID: "a", Title: "New Title", Abstract: types.FieldValue{"new text"}},
	}
	p.Ingest(context.Background(), []string{"q"}, 5)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	n, err := store.NearestNeighbors(context.Background(), []float32{0, 0, 1}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "new text", n.Documents[0])
	assert.Equal(t, "New Title", n.Metadatas[0].Title)
}

func TestIngestSmallerReingestLeavesStaleIDs(t *testing.T) {
	store, err := vectorstore.Open(types.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	ep := &stubEmbedProvider{vectors: map[string][]float32{
		"first text":       {1, 0, 0},
		"second text":      {0, 1, 0},
		"replacement text": {0, 0, 1},
	}}
	provider := &stubProvider{name: "arxiv", records: []types.PaperRecord{
		{ID: "a", Title: "First", Abstract: types.FieldValue{"first text"}},
		{ID: "b", Title: "Second", Abstract: types.FieldValue{"second text"}},
	}}
	var buf bytes.Buffer
	p := New([]collect.Provider{provider}, newTestEmbedder(ep, &buf), store, &buf)

	p.Ingest(context.Background(), []string{"q"}, 5)

	// A smaller second run overwrites q_0 only; q_1 survives from the
	// first run, not deleted.
	provider.records = []types.PaperRecord{
		{ID: "c", Title: "Replacement", Abstract: types.FieldValue{"replacement text"}},
	}
	p.Ingest(context.Background(), []string{"q"}, 5)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	n, err := store.NearestNeighbors(context.Background(), []float32{0, 0, 1}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "q_0", n.IDs[0])
	assert.Equal(t, "replacement text", n.Documents[0])

	n, err = store.NearestNeighbors(context.Background(), []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n.Len())
	assert.Equal(t, "q_1", n.IDs[0])
	assert.Equal(t, "second text", n.Documents[0])
	assert.Equal(t, "Second", n.Metadatas[0].Title)
}

func TestSearchRanksByDistance(t *testing.T) {
	store, err := vectorstore.Open(types.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	ep := &stubEmbedProvider{vectors: map[string][]float32{
		"near":  {0, 0, 1},
		"far":   {1, 0, 0},
		"query": {0, 0, 1},
	}}
	require.NoError(t, store.Upsert(context.Background(),
		[]string{"q_0", "q_1"},
		[]string{"far", "near"},
		[][]float32{{1, 0, 0}, {0, 0, 1}},
		[]types.DocumentMeta{{Title: "Far", URL: "No URL"}, {Title: "Near", URL: "No URL"}}))

	var buf bytes.Buffer
	p := New(nil, newTestEmbedder(ep, &buf), store, &buf)

	out := p.Search(context.Background(), "query", 3)
	require.Len(t, out.Hits, 2)
	assert.False(t, out.Degraded)
	assert.Equal(t, "near", out.Hits[0].Document)
	assert.Equal(t, "far", out.Hits[1].Document)
	assert.Less(t, out.Hits[0].Distance, out.Hits[1].Distance)
}

func TestSearchEmptyStoreReturnsNoHits(t *testing.T) {
	store, err := vectorstore.Open(types.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	var buf bytes.Buffer
	p := New(nil, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	out := p.Search(context.Background(), "anything", 3)
	assert.Empty(t, out.Hits)
	assert.False(t, out.Degraded)
}

func TestSearchStoreErrorAbsorbed(t *testing.T) {
	store := &captureStore{queryErr: errors.New("database locked")}
	var buf bytes.Buffer
	p := New(nil, newTestEmbedder(&stubEmbedProvider{}, &buf), store, &buf)

	out := p.Search(context.Background(), "anything", 3)
	assert.Empty(t, out.Hits)
	assert.True(t, out.Degraded)
	assert.Contains(t, buf.String(), "vector store query failed")
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity(0), 1e-9)
	assert.InDelta(t, 0.5, Similarity(1), 1e-9)
	assert.Greater(t, Similarity(0.2), Similarity(0.8))
}
