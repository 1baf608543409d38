// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectorstore persists embedded documents in SQLite and serves
// nearest-neighbor queries over them.
package vectorstore

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yuga-i2/Researchmate/pkg/types"
)

const (
	dbFile            = "papers.db"
	defaultCollection = "researchmate_papers"
)

// Store manages a named document collection in a SQLite database rooted
// at a configurable directory. State survives process restarts.
type Store struct {
	db         *sql.DB
	collection string
}

// Open creates or opens the store database at cfg.Dir/papers.db and
// ensures the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "vectorstore"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}

	s := &Store{db: db, collection: collection}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Collection returns the collection name this store reads and writes.
func (s *Store) Collection() string {
	return s.collection
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			document TEXT NOT NULL,
			title TEXT,
			url TEXT,
			embedding BLOB NOT NULL,
			dim INTEGER NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert writes a batch of documents. All four slices are positionally
// aligned and must have equal length. An id collision with an existing
// row overwrites it silently: last write wins, no merge.
func (s *Store) Upsert(ctx context.Context, ids, docs []string, embeddings [][]float32, metas []types.DocumentMeta) error {
	n := len(ids)
	if len(docs) != n || len(embeddings) != n || len(metas) != n {
		return fmt.Errorf("misaligned batch: ids=%d docs=%d embeddings=%d metas=%d",
			len(ids), len(docs), len(embeddings), len(metas))
	}
	if n == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (collection, id, document, title, url, embedding, dim)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET
			document=excluded.document, title=excluded.title,
			url=excluded.url, embedding=excluded.embedding, dim=excluded.dim`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		blob := encodeVector(embeddings[i])
		_, err := stmt.ExecContext(ctx, s.collection, ids[i], docs[i],
			metas[i].Title, metas[i].URL, blob, len(embeddings[i]))
		if err != nil {
			return fmt.Errorf("upserting %s: %w", ids[i], err)
		}
	}

	return tx.Commit()
}

// Neighbors holds aligned nearest-neighbor results in ascending distance
// order.
type Neighbors struct {
	IDs       []string
	Documents []string
	Metadatas []types.DocumentMeta
	Distances []float64
}

// Len returns the number of neighbors returned.
func (n Neighbors) Len() int { return len(n.Documents) }

// NearestNeighbors returns up to k stored documents closest to the query
// vector by Euclidean distance, nearest first. Asking for more neighbors
// than the collection holds returns everything without error. Rows whose
// stored dimensionality does not match the query are skipped.
func (s *Store) NearestNeighbors(ctx context.Context, query []float32, k int) (Neighbors, error) {
	if k <= 0 || len(query) == 0 {
		return Neighbors{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document, title, url, embedding FROM documents WHERE collection = ?`,
		s.collection)
	if err != nil {
		return Neighbors{}, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	type scored struct {
		id       string
		document string
		meta     types.DocumentMeta
		distance float64
	}

	var candidates []scored
	for rows.Next() {
		var sc scored
		var blob []byte
		if err := rows.Scan(&sc.id, &sc.document, &sc.meta.Title, &sc.meta.URL, &blob); err != nil {
			return Neighbors{}, fmt.Errorf("scanning row: %w", err)
		}
		vec := decodeVector(blob)
		if len(vec) != len(query) {
			continue
		}
		sc.distance = euclideanDistance(query, vec)
		candidates = append(candidates, sc)
	}
	if err := rows.Err(); err != nil {
		return Neighbors{}, fmt.Errorf("iterating rows: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	var out Neighbors
	for _, c := range candidates {
		out.IDs = append(out.IDs, c.id)
		out.Documents = append(out.Documents, c.document)
		out.Metadatas = append(out.Metadatas, c.meta)
		out.Distances = append(out.Distances, c.distance)
	}
	return out, nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM documents WHERE collection = ?`, s.collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
