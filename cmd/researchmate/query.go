// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yuga-i2/Researchmate/internal/embed"
	"github.com/yuga-i2/Researchmate/internal/pipeline"
	"github.com/yuga-i2/Researchmate/internal/vectorstore"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Retrieve the stored papers closest to a question",
	Long: `Query embeds the question and returns the nearest stored papers by
vector distance, best match first. Similarity scores are derived from
distance and shown for readability only.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Int("top-k", 3, "number of results to return")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a question to search for")
	}
	question := strings.Join(args, " ")
	topK, _ := cmd.Flags().GetInt("top-k")

	ctx := context.Background()

	out, err := searchStored(ctx, question, topK)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(out.Hits, jsonOutput)
}

// searchStored runs the shared embed-and-retrieve flow used by the query
// and summarize commands.
func searchStored(ctx context.Context, question string, topK int) (pipeline.QueryOutput, error) {
	cfg := pipelineConfig()

	provider, err := embed.NewGeminiProvider(ctx, cfg.Embedding)
	if err != nil {
		return pipeline.QueryOutput{}, err
	}
	embedder := embed.New(provider, os.Stderr)

	store, err := vectorstore.Open(cfg.Store)
	if err != nil {
		return pipeline.QueryOutput{}, err
	}
	defer store.Close()

	p := pipeline.New(nil, embedder, store, os.Stderr)
	return p.Search(ctx, question, topK), nil
}

// queryResult is the JSON output shape for a single hit.
type queryResult struct {
	Rank       int     `json:"rank"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
	Excerpt    string  `json:"excerpt"`
}

func formatQueryOutput(hits []types.SearchHit, jsonOutput bool) error {
	results := make([]queryResult, len(hits))
	for i, hit := range hits {
		excerpt := truncateRunes(hit.Document, 197)
		results[i] = queryResult{
			Rank:       i + 1,
			Title:      hit.Meta.Title,
			URL:        hit.Meta.URL,
			Distance:   hit.Distance,
			Similarity: pipeline.Similarity(hit.Distance),
			Excerpt:    excerpt,
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	printQueryResults(results)
	return nil
}

// truncateRunes bounds s to at most n bytes without splitting a rune,
// appending an ellipsis when anything was cut.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func printQueryResults(results []queryResult) {
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%d. %s (similarity %.3f)\n", r.Rank, r.Title, r.Similarity)
		fmt.Fprintf(os.Stdout, "   %s\n", r.URL)
		fmt.Fprintf(os.Stdout, "   %s\n\n", r.Excerpt)
	}

	fmt.Fprintf(os.Stdout, "%d results\n", len(results))
}
