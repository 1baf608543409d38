// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the Researchmate pipeline.
package types

import (
	"encoding/json"
	"strings"
)

// FieldValue holds a provider field that may arrive as a single string or
// as a list of strings. Providers disagree on the shape; the collector
// normalizes access through Join so downstream code never branches on it.
type FieldValue []string

// UnmarshalJSON accepts both `"text"` and `["a", "b"]` forms.
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = FieldValue{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = FieldValue(many)
	return nil
}

// MarshalJSON emits the single-string form when there is exactly one element.
func (f FieldValue) MarshalJSON() ([]byte, error) {
	if len(f) == 1 {
		return json.Marshal(f[0])
	}
	return json.Marshal([]string(f))
}

// Join flattens the field with single spaces and trims the result.
func (f FieldValue) Join() string {
	return strings.TrimSpace(strings.Join(f, " "))
}

// IsEmpty reports whether the field holds no non-whitespace content.
func (f FieldValue) IsEmpty() bool {
	return f.Join() == ""
}

// PaperRecord is a candidate paper returned by a search provider. IDs are
// provider-assigned and may collide across providers; the pipeline does
// not deduplicate them.
type PaperRecord struct {
	// ID is the provider's identifier for the paper (arXiv ID suffix or
	// Semantic Scholar paper ID).
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Authors is the comma-joined author list.
	Authors string `json:"authors" yaml:"authors"`

	// PDFURL is the open-access PDF location, when the provider exposes one.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// URL is the paper's landing page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Text holds full extracted text, when available.
	Text FieldValue `json:"text,omitempty" yaml:"text,omitempty"`

	// Abstract holds the abstract or summary, when available.
	Abstract FieldValue `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Source identifies which provider produced this record
	// (e.g. "arxiv", "semantic_scholar").
	Source string `json:"source" yaml:"source"`
}

// DocumentMeta is the metadata persisted alongside each stored document.
// Missing values are filled with display-safe defaults at normalization
// time, so the defaults live in the store rather than only at render.
type DocumentMeta struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Document is a normalized record ready for embedding and storage. It is
// created per valid PaperRecord inside one ingestion call, handed to the
// vector store once, and not retained.
type Document struct {
	// TextToEmbed is the non-empty text chosen by the normalizer.
	TextToEmbed string `json:"text_to_embed" yaml:"text_to_embed"`

	// Meta carries the title and URL persisted with the vector.
	Meta DocumentMeta `json:"meta" yaml:"meta"`
}

// SearchHit is one nearest-neighbor result. Distance is the store's raw
// metric distance: lower means more similar, with no fixed upper bound.
type SearchHit struct {
	Document string       `json:"document" yaml:"document"`
	Meta     DocumentMeta `json:"meta" yaml:"meta"`
	Distance float64      `json:"distance" yaml:"distance"`
}
