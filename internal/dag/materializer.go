// Package dag implements the DAG Materializer (spec §4.4): it turns a
// commit list's notes into published branch refs with the declared parent
// relationships.
package dag

import (
	"context"

	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/utils/sliceutils"
	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/sirupsen/logrus"
)

// RepoGateway is the narrow slice of the Repo Gateway the materializer
// needs.
type RepoGateway interface {
	SetBranchTip(ctx context.Context, branch, id, parentBranch string) error
}

// BranchFailure records one branch's materialization failure; materializing
// other branches continues regardless.
type BranchFailure struct {
	Branch string
	Err    error
}

// Materialize sets, for every commit carrying a push target, that branch's
// tip to the commit id with the declared parent. Processing happens in plan
// order (oldest first); a failure on one branch is recorded and logged but
// does not stop subsequent branches from being attempted (spec §4.4, §7
// RepoOp propagation policy).
func Materialize(ctx context.Context, repo RepoGateway, commits []plan.Commit) []BranchFailure {
	var failures []BranchFailure
	var seen []string
	for _, c := range commits {
		if c.Note == nil || c.Note.Push == nil {
			continue
		}
		target := c.Note.Push
		if sliceutils.Contains(seen, target.Branch) {
			logrus.WithField("branch", target.Branch).
				Debug("branch declared on more than one commit; last write wins")
		}
		seen = sliceutils.AppendIfNotContains(seen, target.Branch)
		err := repo.SetBranchTip(ctx, target.Branch, string(c.ID), target.ParentBranch)
		if err != nil {
			wrapped := yggiterrors.New(yggiterrors.KindRepoOp, err)
			logrus.WithError(wrapped).
				WithField("branch", target.Branch).
				WithField("parent", target.ParentBranch).
				Error("failed to set branch tip")
			failures = append(failures, BranchFailure{Branch: target.Branch, Err: wrapped})
		}
	}
	return failures
}
