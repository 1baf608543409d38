// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yuga-i2/Researchmate/internal/httputil"
	"github.com/yuga-i2/Researchmate/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const (
	semanticFields         = "title,abstract,authors,url,isOpenAccess,openAccessPdf"
	defaultSemanticTimeout = 15 * time.Second
)

// SemanticScholarProvider queries the Semantic Scholar graph API.
type SemanticScholarProvider struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// NewSemanticScholarProvider builds a provider with the configured
// request timeout (falling back to the shared HTTP timeout and then the
// default) and optional API key.
func NewSemanticScholarProvider(cfg types.CollectConfig) *SemanticScholarProvider {
	timeout := cfg.SemanticScholarTimeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	if timeout <= 0 {
		timeout = defaultSemanticTimeout
	}
	return &SemanticScholarProvider{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: cfg.UserAgent,
		APIKey:    cfg.SemanticScholarAPIKey,
	}
}

// Name returns the provider identifier.
func (p *SemanticScholarProvider) Name() string { return "semantic_scholar" }

// Search queries the Semantic Scholar API and returns candidate records
// in rank order.
func (p *SemanticScholarProvider) Search(ctx context.Context, query string, maxResults int) ([]types.PaperRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", maxResults)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	if p.APIKey != "" {
		req.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(sr.Data))
	for _, paper := range sr.Data {
		rec := types.PaperRecord{
			ID:      paper.PaperID,
			Title:   strings.TrimSpace(paper.Title),
			Authors: joinSemanticAuthors(paper.Authors),
			URL:     paper.URL,
			Source:  "semantic_scholar",
		}
		if paper.OpenAccessPDF != nil {
			rec.PDFURL = paper.OpenAccessPDF.URL
		}
		if abstract := strings.TrimSpace(paper.Abstract); abstract != "" {
			rec.Abstract = types.FieldValue{abstract}
		}
		records = append(records, rec)
	}
	return records, nil
}

func joinSemanticAuthors(authors []semanticAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string           `json:"paperId"`
	Title         string           `json:"title"`
	Abstract      string           `json:"abstract"`
	URL           string           `json:"url"`
	IsOpenAccess  bool             `json:"isOpenAccess"`
	OpenAccessPDF *semanticPDF     `json:"openAccessPdf"`
	Authors       []semanticAuthor `json:"authors"`
}

type semanticPDF struct {
	URL string `json:"url"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
