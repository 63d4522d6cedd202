// Package push implements the Push Reconciler (spec §4.5): for each
// branch, it decides whether a force-push is safe by comparing the local
// tip, the last-known remote tip, and the live remote tip, and aborts the
// entire push phase the moment it observes the remote has moved out from
// under it.
package push

import (
	"context"
	"fmt"

	"github.com/d4hines/yggit/internal/git"
	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// RepoGateway is the narrow slice of the Repo Gateway the reconciler needs.
type RepoGateway interface {
	HeadOf(branch string) string
	LocalRemoteTip(origin, branch string) string
	RemoteTip(ctx context.Context, origin, branch string) (string, error)
	PushForce(ctx context.Context, origin, branch, id string) error
}

// Outcome describes what the reconciler did for one branch.
type Outcome int

const (
	Pushed Outcome = iota
	UpToDate
	Diverged
)

// BranchResult is the per-branch verdict.
type BranchResult struct {
	Branch  string
	Outcome Outcome
}

// Reconcile walks the plan's push targets in order and force-pushes each
// branch that's safe to push. The moment a branch's remote has diverged
// (live remote tip != last-known remote tip), it stops immediately: no
// further branches in this run are pushed, matching the "abort the entire
// push phase" rule in spec §4.5.
func Reconcile(ctx context.Context, repo RepoGateway, commits []plan.Commit) ([]BranchResult, error) {
	var results []BranchResult
	for _, c := range commits {
		if c.Note == nil || c.Note.Push == nil {
			continue
		}
		branch := c.Note.Push.Branch
		origin := c.Note.Push.Origin

		local := repo.HeadOf(branch)
		lastKnownRemote := repo.LocalRemoteTip(origin, branch)
		liveRemote, err := repo.RemoteTip(ctx, origin, branch)
		if err != nil {
			return results, yggiterrors.New(yggiterrors.KindIO, err)
		}

		if lastKnownRemote != liveRemote {
			msg := fmt.Sprintf("cannot push %s", branch)
			color.Red(msg)
			logrus.WithField("branch", branch).
				WithField("last_known_remote", git.ShortSha(lastKnownRemote)).
				WithField("live_remote", git.ShortSha(liveRemote)).
				Error("remote diverged since last sync")
			results = append(results, BranchResult{Branch: branch, Outcome: Diverged})
			return results, yggiterrors.Newf(yggiterrors.KindRemoteDivergence, "cannot push %s: remote has moved", branch)
		}

		if local == liveRemote {
			logrus.WithField("branch", branch).Debug("already up to date")
			results = append(results, BranchResult{Branch: branch, Outcome: UpToDate})
			continue
		}

		if err := repo.PushForce(ctx, origin, branch, local); err != nil {
			return results, yggiterrors.New(yggiterrors.KindIO, err)
		}
		color.Green("pushed %s", branch)
		results = append(results, BranchResult{Branch: branch, Outcome: Pushed})
	}
	return results, nil
}
