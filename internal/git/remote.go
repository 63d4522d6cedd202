package git

import (
	"context"
	"net/url"
	"strings"

	"emperror.dev/errors"
	giturls "github.com/chainguard-dev/git-urls"
	"github.com/go-git/go-git/v5/plumbing"
)

func remoteTrackingRef(remote, branch string) plumbing.ReferenceName {
	return plumbing.NewRemoteReferenceName(remote, branch)
}

// Origin describes the repository's origin remote.
type Origin struct {
	URL *url.URL
	// RepoSlug is the URL path with the leading slash and trailing ".git"
	// trimmed off, e.g. github.com/my-org/my-repo becomes my-org/my-repo.
	RepoSlug string
}

// Origin resolves and parses the origin remote's URL.
func (r *Repo) Origin(ctx context.Context) (*Origin, error) {
	// `git remote get-url` applies any `insteadOf` rewrites from config,
	// unlike `git config --get remote.origin.url`.
	output, err := r.Run(ctx, &RunOpts{Args: []string{"remote", "get-url", r.RemoteName()}})
	if err != nil {
		return nil, err
	}
	if output.ExitCode != 0 {
		if strings.Contains(string(output.Stderr), "No such remote") {
			return nil, ErrRemoteNotFound
		}
		return nil, errors.New("cannot get the remote of the repository")
	}
	origin := strings.TrimSpace(string(output.Stdout))
	if origin == "" {
		return nil, errors.New("origin URL is empty")
	}

	u, err := giturls.Parse(origin)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to parse origin url %q", origin)
	}
	repoSlug := strings.TrimSuffix(u.Path, ".git")
	repoSlug = strings.TrimPrefix(repoSlug, "/")
	return &Origin{URL: u, RepoSlug: repoSlug}, nil
}

// LocalRemoteTip returns the last-known tip of branch on the named remote
// (origin if set, else the configured default), as recorded under
// refs/remotes/<remote>/<branch> by the last fetch/push. It returns Missing
// if the remote-tracking ref doesn't exist (e.g., the branch has never been
// pushed).
func (r *Repo) LocalRemoteTip(origin, branch string) string {
	ref, err := r.gitRepo.Reference(
		remoteTrackingRef(r.resolveRemote(origin), branch), true)
	if err != nil {
		return Missing
	}
	return ref.Hash().String()
}

// RemoteTip queries the live remote (via `git ls-remote`) for the current
// tip of branch on the named remote (origin if set, else the configured
// default). It returns Missing if the remote has no such branch.
func (r *Repo) RemoteTip(ctx context.Context, origin, branch string) (string, error) {
	remote := r.resolveRemote(origin)
	out, err := r.Run(ctx, &RunOpts{
		Args:      []string{"ls-remote", "--exit-code", remote, "refs/heads/" + branch},
		ExitError: false,
	})
	if err != nil {
		return "", errors.WrapIff(err, "failed to query remote tip of %s", branch)
	}
	if out.ExitCode == 2 {
		// ls-remote's documented exit code for "no matching refs".
		return Missing, nil
	}
	if out.ExitCode != 0 {
		return "", errors.Errorf("git ls-remote %s %s: %s", remote, branch, out.Stderr)
	}
	lines := out.Lines()
	if len(lines) == 0 {
		return Missing, nil
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return Missing, nil
	}
	return fields[0], nil
}

// PushForce force-pushes id to branch on the named remote (origin if set,
// else the configured default). It is "force" in the sense of overwriting
// whatever the remote branch currently points at; the caller (the Push
// Reconciler) is responsible for having already verified that doing so is
// safe.
func (r *Repo) PushForce(ctx context.Context, origin, branch, id string) error {
	refspec := id + ":refs/heads/" + branch
	_, err := r.Run(ctx, &RunOpts{
		Args:      []string{"push", "--force", r.resolveRemote(origin), refspec},
		ExitError: true,
	})
	if err != nil {
		return errors.WrapIff(err, "failed to push %s to %s", ShortSha(id), branch)
	}
	return nil
}

// DeleteRemoteBranch deletes branch on the named remote (origin if set,
// else the configured default).
func (r *Repo) DeleteRemoteBranch(ctx context.Context, origin, branch string) error {
	_, err := r.Run(ctx, &RunOpts{
		Args:      []string{"push", r.resolveRemote(origin), "--delete", branch},
		ExitError: true,
	})
	return err
}
