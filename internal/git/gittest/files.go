package gittest

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateFile writes filename (relative to the repo root) with the given
// contents and returns its absolute path, without staging or committing it.
func CreateFile(t *testing.T, repo *Repo, filename string, body []byte) string {
	t.Helper()
	filepath := path.Join(repo.RepoDir, filename)
	require.NoError(t, os.WriteFile(filepath, body, 0o644), "failed to write file: %s", filename)
	return filepath
}

// AddFile stages filepath.
func AddFile(t *testing.T, repo *Repo, filepath string) {
	t.Helper()
	repo.Git(t, "add", filepath)
}
