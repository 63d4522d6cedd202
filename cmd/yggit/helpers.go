package main

import (
	"context"
	"os/exec"
	"strings"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/git"
)

var cachedRepo *git.Repo

// getRepo locates and opens the git repository containing the current (or
// --repo-specified) directory.
func getRepo(ctx context.Context) (*git.Repo, error) {
	if cachedRepo != nil {
		return cachedRepo, nil
	}
	cmd := exec.CommandContext(ctx, "git",
		"rev-parse", "--path-format=absolute", "--show-toplevel", "--git-common-dir")
	if rootFlags.Directory != "" {
		cmd.Dir = rootFlags.Directory
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find git directory (are you running inside a repo?)")
	}
	dir, gitDir, found := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if !found {
		return nil, errors.New("unexpected output from git rev-parse")
	}
	cachedRepo, err = git.OpenRepo(dir, gitDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open git repo")
	}
	return cachedRepo, nil
}
