// Package gittest provides helpers for building throwaway git repositories
// (with a bare "remote" counterpart) in tests.
package gittest

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	yggitgit "github.com/d4hines/yggit/internal/git"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// NewTempRepo initializes a local repository with a bare "origin" remote,
// a main branch, and one commit, ready for push-reconciler and
// dag-materializer tests.
func NewTempRepo(t *testing.T) *Repo {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "local")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	remoteDir := filepath.Join(t.TempDir(), "remote")
	require.NoError(t, os.MkdirAll(remoteDir, 0o755))

	runGit(t, dir, "init", "--initial-branch=main")
	runGit(t, remoteDir, "init", "--bare")

	ggRepo, err := gogit.PlainOpen(dir)
	require.NoError(t, err, "failed to open git repository")

	repo := &Repo{RepoDir: dir, GitDir: filepath.Join(dir, ".git"), GoGit: ggRepo}
	repo.Git(t, "config", "user.name", "yggit-test")
	repo.Git(t, "config", "user.email", "yggit-test@nonexistent")
	repo.Git(t, "remote", "add", "origin", remoteDir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Hello\n"), 0o644))
	repo.Git(t, "add", "README.md")
	repo.Git(t, "commit", "-m", "Initial commit")
	repo.Git(t, "push", "origin", "main")
	repo.Git(t, "symbolic-ref", "refs/remotes/origin/HEAD", "refs/remotes/origin/main")

	return repo
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.CommandContext(t.Context(), "git", args...)
	cmd.Dir = dir
	require.NoError(t, cmd.Run(), "git %v failed", args)
}

// Repo is a handle on a test repository, used to drive it through raw git
// commands while assertions use the structured yggit/internal/git API.
type Repo struct {
	RepoDir string
	GitDir  string
	GoGit   *gogit.Repository
}

// AsYggitRepo opens the test repository the same way the yggit binary would.
func (r *Repo) AsYggitRepo() *yggitgit.Repo {
	repo, err := yggitgit.OpenRepo(r.RepoDir, r.GitDir)
	if err != nil {
		panic(err)
	}
	return repo
}

func (r *Repo) Git(t *testing.T, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(t.Context(), "git", args...)
	cmd.Dir = r.RepoDir
	stdout := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stdout
	require.NoError(t, cmd.Run(), "git %v failed: %s", args, stdout.String())
	return stdout.String()
}

func (r *Repo) Head(t *testing.T) plumbing.Hash {
	t.Helper()
	ref, err := r.GoGit.Head()
	require.NoError(t, err, "failed to get HEAD")
	return ref.Hash()
}

func (r *Repo) CommitAtRef(t *testing.T, name plumbing.ReferenceName) plumbing.Hash {
	t.Helper()
	ref, err := r.GoGit.Reference(name, true)
	require.NoError(t, err, "failed to resolve ref %q", name)
	return ref.Hash()
}

func (r *Repo) CheckoutBranch(t *testing.T, branch string) {
	t.Helper()
	wt, err := r.GoGit.Worktree()
	require.NoError(t, err, "failed to get worktree")
	require.NoError(t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	}))
}

func (r *Repo) CommitsBetween(t *testing.T, from, excluding plumbing.ReferenceName) []plumbing.Hash {
	t.Helper()
	fromHash := r.CommitAtRef(t, from)
	excludeHash := r.CommitAtRef(t, excluding)
	commit, err := r.GoGit.CommitObject(fromHash)
	require.NoError(t, err)

	var commits []plumbing.Hash
	iter := object.NewCommitPreorderIter(commit, nil, []plumbing.Hash{excludeHash})
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c.Hash)
		return nil
	}))
	return commits
}
