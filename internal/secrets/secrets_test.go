// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Store
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "  gm_abc123  \n")
				writeFile(t, dir, "semantic-scholar-api-key", "sk_xyz789")
				return dir
			},
			want: Store{
				"gemini-api-key":           "gm_abc123",
				"semantic-scholar-api-key": "sk_xyz789",
			},
		},
		{
			name: "returns empty store for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Store{},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, ".hidden", "nope")
				return dir
			},
			want: Store{"gemini-api-key": "valid-key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet_EnvOverridesFile(t *testing.T) {
	s := Store{"gemini-api-key": "from-file"}

	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "from-env", s.Get("gemini-api-key"))

	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "from-file", s.Get("gemini-api-key"))
}

func TestGet_MissingSecret(t *testing.T) {
	s := Store{}
	t.Setenv("SEMANTIC_SCHOLAR_API_KEY", "")
	assert.Equal(t, "", s.Get("semantic-scholar-api-key"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
