// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed turns text into fixed-length vectors. Provider failures
// never surface as errors: a failed or empty embedding degrades to a
// zero vector of the expected dimensionality so batch alignment with ids
// and metadata is preserved downstream.
package embed

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Provider is an external embedding capability.
type Provider interface {
	// Embed returns a fixed-length vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding vector length.
	Dimension() int

	// ModelName returns the embedding model identifier.
	ModelName() string
}

// Result is one embedding outcome. Degraded marks a zero-vector fallback
// (empty input, provider failure, or a wrong-length vector) so callers
// can tell a real embedding from a placeholder without an error path.
type Result struct {
	Vector   []float32
	Degraded bool
}

// Embedder wraps a Provider with the zero-vector fallback contract.
type Embedder struct {
	provider Provider
	w        io.Writer
}

// New builds an Embedder that logs degradation warnings to w.
func New(provider Provider, w io.Writer) *Embedder {
	return &Embedder{provider: provider, w: w}
}

// Dimension returns the provider's vector length.
func (e *Embedder) Dimension() int { return e.provider.Dimension() }

// Embed returns the embedding for text, or a zero-vector Result when the
// text is blank or the provider fails. The failure is logged, not returned.
func (e *Embedder) Embed(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return e.fallback("empty input")
	}

	vec, err := e.provider.Embed(ctx, text)
	if err != nil {
		return e.fallback(err.Error())
	}
	if len(vec) != e.provider.Dimension() {
		return e.fallback(fmt.Sprintf("vector length %d, expected %d", len(vec), e.provider.Dimension()))
	}
	return Result{Vector: vec}
}

// EmbedAll embeds each text in order. The i-th result always corresponds
// to the i-th input; degraded results occupy their slot rather than being
// skipped, keeping positional alignment intact.
func (e *Embedder) EmbedAll(ctx context.Context, texts []string) []Result {
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = e.Embed(ctx, text)
	}
	return results
}

func (e *Embedder) fallback(reason string) Result {
	fmt.Fprintf(e.w, "warning: embedding degraded to zero vector (%s): %s\n", e.provider.ModelName(), reason)
	return Result{
		Vector:   make([]float32, e.provider.Dimension()),
		Degraded: true,
	}
}
