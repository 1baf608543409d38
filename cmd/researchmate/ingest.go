// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuga-i2/Researchmate/internal/collect"
	"github.com/yuga-i2/Researchmate/internal/embed"
	"github.com/yuga-i2/Researchmate/internal/papers"
	"github.com/yuga-i2/Researchmate/internal/pipeline"
	"github.com/yuga-i2/Researchmate/internal/vectorstore"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [topics...]",
	Short: "Fetch, embed, and index papers for research topics",
	Long: `Ingest queries arXiv and Semantic Scholar for each topic, embeds the
papers' text, and stores the vectors. Re-ingesting a topic overwrites
its previous documents. With --fetch-pdfs, open-access PDFs are
downloaded and their full text embedded instead of the abstract.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().Int("max", 0, "maximum papers per provider per topic (default 5)")
	ingestCmd.Flags().Bool("fetch-pdfs", false, "download open-access PDFs and embed full text")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more research topics")
	}

	ctx := context.Background()
	cfg := pipelineConfig()

	if maxFlag, _ := cmd.Flags().GetInt("max"); maxFlag > 0 {
		cfg.Collect.MaxResults = maxFlag
	}

	provider, err := embed.NewGeminiProvider(ctx, cfg.Embedding)
	if err != nil {
		return err
	}
	embedder := embed.New(provider, os.Stdout)

	store, err := vectorstore.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	providers := []collect.Provider{
		collect.NewArxivProvider(cfg.Collect),
		collect.NewSemanticScholarProvider(cfg.Collect),
	}

	var opts []pipeline.Option
	if fetchPDFs, _ := cmd.Flags().GetBool("fetch-pdfs"); fetchPDFs {
		opts = append(opts, pipeline.WithFetcher(papers.NewFetcher(cfg.Papers)))
	}

	p := pipeline.New(providers, embedder, store, os.Stdout, opts...)

	summary := p.Ingest(ctx, args, cfg.Collect.MaxResults)
	if summary.HasFailures() {
		return fmt.Errorf("%d topic(s) failed ingestion", summary.Failed)
	}
	return nil
}
