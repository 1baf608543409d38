// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

const arxivFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <title>Attention Is All You Need, Revisited</title>
    <summary>  We revisit the transformer architecture.  </summary>
    <author><name>A. Author</name></author>
    <author><name>B. Author</name></author>
    <link href="http://arxiv.org/abs/2301.07041v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2301.07041v2" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.01234v1</id>
    <title>Second Paper</title>
    <summary></summary>
    <author><name>C. Author</name></author>
    <link href="http://arxiv.org/pdf/2302.01234v1" rel="related" type="application/pdf"/>
  </entry>
</feed>`

func arxivTestServer(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	t.Cleanup(func() { arxivAPIBase = old })
	return ts
}

func TestArxivSearchParsesFeed(t *testing.T) {
	arxivTestServer(t, http.StatusOK, arxivFeedXML)

	p := NewArxivProvider(types.CollectConfig{})
	records, err := p.Search(context.Background(), "transformers", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.ID != "2301.07041" {
		t.Errorf("ID = %q, want version-stripped arXiv ID", first.ID)
	}
	if first.Title != "Attention Is All You Need, Revisited" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Authors != "A. Author, B. Author" {
		t.Errorf("Authors = %q, want comma-joined list", first.Authors)
	}
	if first.Abstract.Join() != "We revisit the transformer architecture." {
		t.Errorf("Abstract = %q, want trimmed summary", first.Abstract.Join())
	}
	if first.Source != "arxiv" {
		t.Errorf("Source = %q, want arxiv", first.Source)
	}
}

func TestArxivPDFLinkPolicy(t *testing.T) {
	tests := []struct {
		name  string
		links []arxivLink
		want  string
	}{
		{
			name: "titled pdf link wins over mime type",
			links: []arxivLink{
				{Href: "http://x/mime.pdf", Type: "application/pdf"},
				{Href: "http://x/titled.pdf", Title: "pdf"},
			},
			want: "http://x/titled.pdf",
		},
		{
			name: "mime type fallback",
			links: []arxivLink{
				{Href: "http://x/page", Type: "text/html"},
				{Href: "http://x/doc.pdf", Type: "application/pdf"},
			},
			want: "http://x/doc.pdf",
		},
		{
			name:  "no pdf link",
			links: []arxivLink{{Href: "http://x/page", Type: "text/html"}},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pdfLink(tt.links); got != tt.want {
				t.Errorf("pdfLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArxivSearchHTTPError(t *testing.T) {
	arxivTestServer(t, http.StatusInternalServerError, "boom")

	p := NewArxivProvider(types.CollectConfig{})
	if _, err := p.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("Search() error = nil, want HTTP error")
	}
}

func TestArxivSearchMalformedFeed(t *testing.T) {
	arxivTestServer(t, http.StatusOK, "{not xml}")

	p := NewArxivProvider(types.CollectConfig{})
	if _, err := p.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("Search() error = nil, want parse error")
	}
}

func TestArxivSearchEmptyQuery(t *testing.T) {
	p := NewArxivProvider(types.CollectConfig{})
	if _, err := p.Search(context.Background(), "   ", 5); err == nil {
		t.Fatal("Search() error = nil, want empty-query error")
	}
}

func TestArxivProviderTimeoutFallback(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.CollectConfig
		want time.Duration
	}{
		{
			name: "stage timeout wins",
			cfg: types.CollectConfig{
				HTTPConfig:   types.HTTPConfig{Timeout: 30 * time.Second},
				ArxivTimeout: 5 * time.Second,
			},
			want: 5 * time.Second,
		},
		{
			name: "shared timeout as fallback",
			cfg:  types.CollectConfig{HTTPConfig: types.HTTPConfig{Timeout: 30 * time.Second}},
			want: 30 * time.Second,
		},
		{
			name: "default when nothing configured",
			cfg:  types.CollectConfig{},
			want: defaultArxivTimeout,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArxivProvider(tt.cfg)
			if p.Client.Timeout != tt.want {
				t.Errorf("Client.Timeout = %v, want %v", p.Client.Timeout, tt.want)
			}
		})
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"not-a-url", "not-a-url"},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.in); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
