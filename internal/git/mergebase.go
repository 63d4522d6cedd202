package git

import (
	"context"

	"emperror.dev/errors"
)

// MergeBase returns the best common ancestor of the given committishes
// (equivalent to `git merge-base`).
func (r *Repo) MergeBase(ctx context.Context, committishes ...string) (string, error) {
	out, err := r.Git(ctx, append([]string{"merge-base"}, committishes...)...)
	if err != nil {
		return "", errors.WrapIff(err, "failed to find merge base of %v", committishes)
	}
	return out, nil
}

func (r *Repo) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	out, err := r.Run(ctx, &RunOpts{
		Args: []string{"merge-base", "--is-ancestor", ancestor, descendant},
	})
	if err != nil {
		return false, err
	}
	if out.ExitCode != 0 && out.ExitCode != 1 {
		return false, err
	}
	return out.ExitCode == 0, nil
}
