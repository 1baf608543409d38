// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuga-i2/Researchmate/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [question]",
	Short: "Synthesize an answer from the closest stored papers",
	Long: `Summarize retrieves the nearest stored papers for a question and asks
a generative model to synthesize an answer from their excerpts, with key
insights attributed to sources and suggested future directions.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().Int("top-k", 3, "number of papers to synthesize from")
	summarizeCmd.Flags().String("model", "", "generative model identifier")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a question to answer")
	}
	question := strings.Join(args, " ")
	topK, _ := cmd.Flags().GetInt("top-k")

	ctx := context.Background()

	out, err := searchStored(ctx, question, topK)
	if err != nil {
		return err
	}
	if len(out.Hits) == 0 {
		return fmt.Errorf("no stored papers match the question: run ingest first")
	}

	cfg := pipelineConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Summary.Model = model
	}

	backend, err := summarize.NewGeminiBackend(ctx, cfg.Summary)
	if err != nil {
		return err
	}

	answer, err := summarize.Summarize(ctx, backend, question, out.Hits, cfg.Summary.MaxRetries)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
