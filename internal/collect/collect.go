// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect queries academic search providers and merges candidate
// papers into one list. Each provider failure is absorbed at the provider
// boundary: the failing provider contributes an empty list and a logged
// warning, never an error to the caller.
package collect

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

// Provider searches a single academic API. Each provider (arXiv,
// Semantic Scholar) implements this interface per the Strategy pattern.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]types.PaperRecord, error)
}

// Output holds the merged candidate list and per-provider failure notes.
// ProviderErrors lets callers distinguish a legitimately empty result
// from a degraded one without the errors ever propagating.
type Output struct {
	Records        []types.PaperRecord
	ProviderErrors []string
}

// Degraded reports whether at least one provider failed.
func (o Output) Degraded() bool {
	return len(o.ProviderErrors) > 0
}

// Collect fans the query out to all providers concurrently and merges
// results in fixed provider order: all of the first provider's records,
// then all of the second's, regardless of completion order. No
// deduplication is performed across providers; downstream consumers must
// tolerate duplicate titles and content.
func Collect(ctx context.Context, query string, maxResults int, providers []Provider, w io.Writer) Output {
	// Indexed slots keep the merge order independent of goroutine
	// completion order.
	perProvider := make([][]types.PaperRecord, len(providers))
	perError := make([]error, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			perProvider[i], perError[i] = p.Search(ctx, query, maxResults)
		}(i, p)
	}
	wg.Wait()

	var out Output
	for i, p := range providers {
		if err := perError[i]; err != nil {
			msg := fmt.Sprintf("%s: %v", p.Name(), err)
			out.ProviderErrors = append(out.ProviderErrors, msg)
			fmt.Fprintf(w, "warning: provider %s failed: %v\n", p.Name(), err)
			continue
		}
		out.Records = append(out.Records, perProvider[i]...)
	}
	return out
}
