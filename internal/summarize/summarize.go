// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns ranked search hits into a synthesized research
// answer via a generative model. The model backend is an interface so
// tests can supply a mock.
package summarize

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/yuga-i2/Researchmate/internal/httputil"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

// Generator abstracts the generative model API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// maxExcerptLen bounds how much of each document goes into the prompt so
// a handful of full papers cannot blow the context window.
const maxExcerptLen = 1500

// synthesisPromptTmpl instructs the model to answer from the retrieved
// papers only, with a fixed output shape.
var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(`You are a research assistant. Answer the question below using only the retrieved paper excerpts. Do not invent sources.

Structure your answer as:
1. A synthesis of 3 to 5 sentences directly answering the question.
2. Five bullet-point key insights, each attributed to its source by number.
3. Three suggested future research directions.

If the excerpts disagree with each other, say so explicitly and present both sides.

Question: {{.Question}}

Retrieved papers:
{{range .Sources}}
[{{.Index}}] {{.Title}} ({{.URL}})
{{.Excerpt}}
{{end}}`))

// promptSource is one numbered source block in the synthesis prompt.
type promptSource struct {
	Index   int
	Title   string
	URL     string
	Excerpt string
}

// BuildPrompt renders the synthesis prompt for a question and its hits.
// Hits are numbered in the order given, which callers keep as the
// ranking order.
func BuildPrompt(question string, hits []types.SearchHit) (string, error) {
	sources := make([]promptSource, len(hits))
	for i, hit := range hits {
		excerpt := truncateExcerpt(hit.Document, maxExcerptLen)
		sources[i] = promptSource{
			Index:   i + 1,
			Title:   hit.Meta.Title,
			URL:     hit.Meta.URL,
			Excerpt: strings.TrimSpace(excerpt),
		}
	}

	var buf bytes.Buffer
	err := synthesisPromptTmpl.Execute(&buf, struct {
		Question string
		Sources  []promptSource
	}{Question: question, Sources: sources})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// truncateExcerpt bounds s to at most n bytes without splitting a rune,
// appending an ellipsis when anything was cut.
func truncateExcerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// retryDelay is the wait between generate attempts. Tests override this
// to avoid real sleeps.
var retryDelay = 2 * time.Second

// Summarize renders the synthesis prompt and calls the generator,
// retrying transient failures with a fixed delay between attempts.
func Summarize(ctx context.Context, gen Generator, question string, hits []types.SearchHit, maxRetries int) (string, error) {
	if len(hits) == 0 {
		return "", fmt.Errorf("no retrieved papers to summarize")
	}

	prompt, err := BuildPrompt(question, hits)
	if err != nil {
		return "", err
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}

	var answer string
	err = httputil.Retry(ctx, maxRetries, retryDelay, func() error {
		var genErr error
		answer, genErr = gen.Generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}
