// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/yuga-i2/Researchmate/internal/collect"
	"github.com/yuga-i2/Researchmate/internal/normalize"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

// IngestSummary holds counts from an ingestion run.
type IngestSummary struct {
	// Ingested counts queries whose batch reached the store.
	Ingested int

	// Skipped counts queries with zero valid documents.
	Skipped int

	// Failed counts queries abandoned on a store error. Partial writes
	// from earlier queries persist; there is no rollback.
	Failed int

	// Documents is the total number of documents written.
	Documents int

	// Dropped counts records filtered out for having no usable text.
	Dropped int

	// Degraded counts documents stored with a zero-vector embedding.
	Degraded int
}

// HasFailures reports whether any query was abandoned.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest processes each query independently, in input order: collect
// candidates, normalize, embed, and upsert one positionally aligned
// batch per query. The i-th surviving document of query q gets id
// "q_i"; re-ingesting a query overwrites those ids. A failure for one
// query never aborts the rest of the run.
func (p *Pipeline) Ingest(ctx context.Context, queries []string, maxPapers int) IngestSummary {
	var summary IngestSummary

	for _, query := range queries {
		fmt.Fprintf(p.w, "ingesting %q\n", query)

		out := collect.Collect(ctx, query, maxPapers, p.providers, p.w)
		fmt.Fprintf(p.w, "  collected %d candidates\n", len(out.Records))

		if p.fetcher != nil {
			p.enrich(ctx, out)
		}

		docs, dropped := normalize.NormalizeAll(out.Records)
		summary.Dropped += dropped
		if len(docs) == 0 {
			fmt.Fprintf(p.w, "  no valid papers to embed, skipping\n")
			summary.Skipped++
			continue
		}

		ids := make([]string, len(docs))
		texts := make([]string, len(docs))
		metas := make([]types.DocumentMeta, len(docs))
		for i, doc := range docs {
			ids[i] = fmt.Sprintf("%s_%d", query, i)
			texts[i] = doc.TextToEmbed
			metas[i] = doc.Meta
		}

		results := p.embedder.EmbedAll(ctx, texts)
		embeddings := make([][]float32, len(results))
		for i, res := range results {
			embeddings[i] = res.Vector
			if res.Degraded {
				summary.Degraded++
			}
		}

		if err := p.store.Upsert(ctx, ids, texts, embeddings, metas); err != nil {
			fmt.Fprintf(p.w, "  warning: store write failed, abandoning query: %v\n", err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(p.w, "  ingested %d documents\n", len(docs))
		summary.Ingested++
		summary.Documents += len(docs)
	}

	fmt.Fprintf(p.w, "\ningested: %d, skipped: %d, failed: %d (documents: %d, dropped: %d, degraded: %d)\n",
		summary.Ingested, summary.Skipped, summary.Failed,
		summary.Documents, summary.Dropped, summary.Degraded)
	return summary
}

// enrich replaces each record's text with extracted PDF text where a PDF
// is available. Fetch failures leave the record as collected.
func (p *Pipeline) enrich(ctx context.Context, out collect.Output) {
	for i := range out.Records {
		rec := &out.Records[i]
		if rec.PDFURL == "" {
			continue
		}
		if err := p.fetcher.Fetch(ctx, rec); err != nil {
			fmt.Fprintf(p.w, "  warning: full text unavailable for %s: %v\n", rec.ID, err)
		}
	}
}
