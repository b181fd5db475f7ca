// Copyright Wilhelm Language Services, 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "neo4j-uri", "  neo4j://localhost:7687  \n")
				writeFile(t, dir, "neo4j-password", "s3cret")
				writeFile(t, dir, "arango-endpoint", "http://localhost:8529\n")
				return dir
			},
			want: map[string]string{
				"neo4j-uri":       "neo4j://localhost:7687",
				"neo4j-password":  "s3cret",
				"arango-endpoint": "http://localhost:8529",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "neo4j-username", "neo4j")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, ".gitignore", "*")
				return dir
			},
			want: map[string]string{"neo4j-username": "neo4j"},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				writeFile(t, dir, "arango-password", "pw")
				return dir
			},
			want: map[string]string{"arango-password": "pw"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	secrets := map[string]string{"neo4j-password": "from-secret"}

	t.Run("explicit value wins", func(t *testing.T) {
		t.Setenv("WILHELM_TEST_PASSWORD", "from-env")
		got := Resolve(secrets, "from-flag", "WILHELM_TEST_PASSWORD", "neo4j-password")
		assert.Equal(t, "from-flag", got)
	})

	t.Run("env beats secret file", func(t *testing.T) {
		t.Setenv("WILHELM_TEST_PASSWORD", "from-env")
		got := Resolve(secrets, "", "WILHELM_TEST_PASSWORD", "neo4j-password")
		assert.Equal(t, "from-env", got)
	})

	t.Run("secret file is the fallback", func(t *testing.T) {
		got := Resolve(secrets, "", "WILHELM_TEST_UNSET", "neo4j-password")
		assert.Equal(t, "from-secret", got)
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		got := Resolve(secrets, "", "WILHELM_TEST_UNSET", "missing")
		assert.Equal(t, "", got)
	})
}
