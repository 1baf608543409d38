// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

// QueryOutput holds ranked hits plus a degradation marker so callers can
// tell a legitimately empty result from one produced after a store or
// embedding failure.
type QueryOutput struct {
	Hits     []types.SearchHit
	Degraded bool
}

// Search embeds the query text and returns up to topK nearest stored
// documents, best match first. Store failures and malformed responses
// are logged and yield an empty result, never an error: only the
// configuration layer above raises.
func (p *Pipeline) Search(ctx context.Context, text string, topK int) QueryOutput {
	res := p.embedder.Embed(ctx, text)

	neighbors, err := p.store.NearestNeighbors(ctx, res.Vector, topK)
	if err != nil {
		fmt.Fprintf(p.w, "warning: vector store query failed: %v\n", err)
		return QueryOutput{Degraded: true}
	}

	// A malformed response with misaligned columns is treated the same
	// as an empty one.
	n := neighbors.Len()
	if len(neighbors.Metadatas) != n || len(neighbors.Distances) != n {
		fmt.Fprintf(p.w, "warning: vector store returned misaligned result columns\n")
		return QueryOutput{Degraded: true}
	}

	hits := make([]types.SearchHit, 0, n)
	for i := 0; i < n; i++ {
		hits = append(hits, types.SearchHit{
			Document: neighbors.Documents[i],
			Meta:     neighbors.Metadatas[i],
			Distance: neighbors.Distances[i],
		})
	}
	return QueryOutput{Hits: hits, Degraded: res.Degraded}
}

// Similarity converts a raw distance to a bounded score in (0, 1] via
// 1/(1+distance). The transform is monotonic decreasing, so it never
// changes ranking order; it exists for display only.
func Similarity(distance float64) float64 {
	return 1.0 / (1.0 + distance)
}
