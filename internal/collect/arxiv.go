// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const defaultArxivTimeout = 10 * time.Second

// ArxivProvider queries the arXiv Atom API.
type ArxivProvider struct {
	Client    *http.Client
	UserAgent string
}

// NewArxivProvider builds a provider with the configured request
// timeout, falling back to the shared HTTP timeout and then the default.
func NewArxivProvider(cfg types.CollectConfig) *ArxivProvider {
	timeout := cfg.ArxivTimeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	if timeout <= 0 {
		timeout = defaultArxivTimeout
	}
	return &ArxivProvider{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: cfg.UserAgent,
	}
}

// Name returns the provider identifier.
func (p *ArxivProvider) Name() string { return "arxiv" }

// Search queries the arXiv API and returns candidate records in rank order.
func (p *ArxivProvider) Search(ctx context.Context, query string, maxResults int) ([]types.PaperRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	reqURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		rec := types.PaperRecord{
			ID:      extractArxivID(entry.ID),
			Title:   strings.TrimSpace(entry.Title),
			Authors: joinAuthorNames(entry.Authors),
			URL:     strings.TrimSpace(entry.ID),
			PDFURL:  pdfLink(entry.Links),
			Source:  "arxiv",
		}
		if summary := strings.TrimSpace(entry.Summary); summary != "" {
			rec.Abstract = types.FieldValue{summary}
		}
		records = append(records, rec)
	}
	return records, nil
}

// pdfLink applies the PDF selection policy: a link explicitly titled
// "pdf" wins, then the first link with a PDF MIME type, else empty.
func pdfLink(links []arxivLink) string {
	for _, l := range links {
		if l.Title == "pdf" {
			return l.Href
		}
	}
	for _, l := range links {
		if l.Type == "application/pdf" {
			return l.Href
		}
	}
	return ""
}

func joinAuthorNames(authors []arxivAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID      string        `xml:"id"`
	Title   string        `xml:"title"`
	Summary string        `xml:"summary"`
	Authors []arxivAuthor `xml:"author"`
	Links   []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return idURL
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
