// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates collection, normalization, embedding,
// and storage. Per-item and per-provider failures are absorbed locally
// with a log line; only configuration errors surface to the caller.
package pipeline

import (
	"context"
	"io"

	"github.com/yuga-i2/Researchmate/internal/collect"
	"github.com/yuga-i2/Researchmate/internal/embed"
	"github.com/yuga-i2/Researchmate/internal/papers"
	"github.com/yuga-i2/Researchmate/internal/vectorstore"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

// Store is the persistence capability the pipeline writes to and queries.
// *vectorstore.Store satisfies it; tests substitute failing fakes.
type Store interface {
	Upsert(ctx context.Context, ids, docs []string, embeddings [][]float32, metas []types.DocumentMeta) error
	NearestNeighbors(ctx context.Context, query []float32, k int) (vectorstore.Neighbors, error)
}

// Pipeline wires the ingestion and query flows. All collaborators are
// constructed by the caller and passed in; the pipeline holds no ambient
// state and owns none of their lifetimes.
type Pipeline struct {
	providers []collect.Provider
	embedder  *embed.Embedder
	store     Store
	fetcher   *papers.Fetcher
	w         io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFetcher enables full-text PDF enrichment during ingestion.
func WithFetcher(f *papers.Fetcher) Option {
	return func(p *Pipeline) {
		p.fetcher = f
	}
}

// New builds a Pipeline that logs progress to w.
func New(providers []collect.Provider, embedder *embed.Embedder, store Store, w io.Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		providers: providers,
		embedder:  embedder,
		store:     store,
		w:         w,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
