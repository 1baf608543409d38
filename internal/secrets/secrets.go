// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the
// key name and the file contents (trimmed) are the value.
//
// Supported key files: gemini-api-key, semantic-scholar-api-key.
// Environment variables (GEMINI_API_KEY, SEMANTIC_SCHOLAR_API_KEY),
// typically populated from .env, take precedence over key files.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds secrets resolved at startup.
type Store map[string]string

// Load reads all files in dir and returns a Store of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty Store. Unreadable files produce a warning on stderr
// but do not abort.
func Load(dir string) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			store[name] = value
		}
	}

	return store, nil
}

// Get resolves a secret by key-file name, preferring the environment
// variable form (uppercased, dashes to underscores). Returns "" when the
// secret is absent from both sources.
func (s Store) Get(name string) string {
	envName := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return s[name]
}
