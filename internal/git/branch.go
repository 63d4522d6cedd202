package git

import (
	"context"

	"emperror.dev/errors"
	"github.com/go-git/go-git/v5/plumbing"
)

// BranchDelete deletes the given branches (equivalent to `git branch -D`).
func (r *Repo) BranchDelete(ctx context.Context, names ...string) error {
	_, err := r.Run(ctx, &RunOpts{
		Args:      append([]string{"branch", "-D"}, names...),
		ExitError: true,
	})
	return err
}

// HeadOf returns the commit id that the given branch currently points at,
// or the empty string if the branch doesn't exist.
func (r *Repo) HeadOf(branch string) string {
	ref, err := r.gitRepo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}

// SetBranchTip implements the DAG Materializer's "set branch with parent"
// contract (spec §4.4): after this returns without error, branch exists
// locally and its tip equals id. parentBranch is validated two ways: it
// must resolve (catching a typo'd parent, the most common failure mode),
// and id must actually be a descendant of it, catching a plan that declares
// a parent the commit was never built on top of.
func (r *Repo) SetBranchTip(ctx context.Context, branch, id, parentBranch string) error {
	if parentBranch != "" {
		parentHash, err := r.gitRepo.ResolveRevision(plumbing.Revision(parentBranch))
		if err != nil {
			return errors.Errorf("parent branch %q does not resolve: %v", parentBranch, err)
		}
		ok, err := r.IsAncestor(ctx, parentHash.String(), id)
		if err != nil {
			return errors.WrapIff(err, "failed to check whether %s is an ancestor of %s", parentBranch, ShortSha(id))
		}
		if !ok {
			return errors.Errorf("%s is not built on top of parent branch %q", ShortSha(id), parentBranch)
		}
	}
	ref := plumbing.NewBranchReferenceName(branch)
	_, err := r.Git(ctx, "update-ref", string(ref), id)
	if err != nil {
		return errors.WrapIff(err, "failed to set %s to %s", branch, ShortSha(id))
	}
	return nil
}

// DoesBranchExist reports whether the named local branch ref exists.
func (r *Repo) DoesBranchExist(branch string) bool {
	_, err := r.gitRepo.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}
