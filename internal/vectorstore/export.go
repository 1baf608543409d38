// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

// ExportEntry holds one stored document for export. Embeddings are
// omitted; exports are for human inspection, not for rebuilding the index.
type ExportEntry struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	URL      string `json:"url" yaml:"url"`
	Document string `json:"document" yaml:"document"`
}

// ExportYAML writes the collection's documents to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the collection's documents to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document, title, url FROM documents WHERE collection = ? ORDER BY id`,
		s.collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var e ExportEntry
		var meta types.DocumentMeta
		if err := rows.Scan(&e.ID, &e.Document, &meta.Title, &meta.URL); err != nil {
			return nil, fmt.Errorf("scanning export row: %w", err)
		}
		e.Title = meta.Title
		e.URL = meta.URL
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
