package gittest

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

// CommitFile writes filename with the given contents and commits it with a
// generated message.
func CommitFile(t *testing.T, repo *Repo, filename string, body []byte) {
	t.Helper()
	filepath := path.Join(repo.RepoDir, filename)
	require.NoError(t, os.WriteFile(filepath, body, 0o644), "failed to write file: %s", filename)
	repo.Git(t, "add", filepath)
	repo.Git(t, "commit", "-m", fmt.Sprintf("write file %s", filename))
}
