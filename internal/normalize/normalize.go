// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize selects and cleans the text to embed for each
// collected paper record.
package normalize

import (
	"strings"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

// Display-safe defaults stored with each document when the provider
// omitted the field. They are persisted, not applied at render time.
const (
	DefaultTitle = "No Title"
	DefaultURL   = "No URL"
)

// Normalize picks the canonical text for a record and builds an
// ingestable document. Resolution order is text, then abstract, then
// title; list-valued fields are flattened with single spaces before
// trimming and the first non-empty candidate wins. The second return is
// false when no field yields non-empty text and the record should be
// dropped.
func Normalize(rec types.PaperRecord) (types.Document, bool) {
	text := firstNonEmpty(
		rec.Text.Join(),
		rec.Abstract.Join(),
		strings.TrimSpace(rec.Title),
	)
	if text == "" {
		return types.Document{}, false
	}

	return types.Document{
		TextToEmbed: text,
		Meta:        metaFor(rec),
	}, true
}

// NormalizeAll filters a batch of records, preserving input order among
// the survivors. dropped counts records with no usable text.
func NormalizeAll(records []types.PaperRecord) (docs []types.Document, dropped int) {
	for _, rec := range records {
		doc, ok := Normalize(rec)
		if !ok {
			dropped++
			continue
		}
		docs = append(docs, doc)
	}
	return docs, dropped
}

func metaFor(rec types.PaperRecord) types.DocumentMeta {
	meta := types.DocumentMeta{
		Title: strings.TrimSpace(rec.Title),
		URL:   strings.TrimSpace(rec.URL),
	}
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	if meta.URL == "" {
		if rec.PDFURL != "" {
			meta.URL = rec.PDFURL
		} else {
			meta.URL = DefaultURL
		}
	}
	return meta
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
