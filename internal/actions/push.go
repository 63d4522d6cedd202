// Package actions is the Orchestrator (spec §4.7): it wires the full
// sequence snapshot -> render -> edit -> parse -> save notes -> materialize
// -> push -> synchronize reviews for the one `push` operation the CLI
// exposes.
package actions

import (
	"context"
	"os"
	"path/filepath"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/dag"
	"github.com/d4hines/yggit/internal/editor"
	"github.com/d4hines/yggit/internal/git"
	"github.com/d4hines/yggit/internal/notes"
	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/push"
	"github.com/d4hines/yggit/internal/review"
	"github.com/d4hines/yggit/internal/utils/cleanup"
	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/sirupsen/logrus"
)

// PushOpts configures one run of the push orchestration.
type PushOpts struct {
	// NoReview skips the Review Synchronizer phase (the CLI's --no-pr
	// flag, spec §6.2).
	NoReview bool
	// EditorCommand overrides the editor invoked (mainly for tests; empty
	// uses the repository's configured editor).
	EditorCommand string
}

// PushResult summarizes what happened, for the CLI to report to the user.
type PushResult struct {
	BranchFailures []dag.BranchFailure
	PushResults    []push.BranchResult
	ReviewSkipped  bool
}

// Push runs the full orchestration described in spec §4.7.
func Push(ctx context.Context, repo *git.Repo, reviewGateway review.Gateway, opts PushOpts) (*PushResult, error) {
	mainBranch := repo.MainBranchName(ctx)
	notesStore := notes.New(repo)

	// 1-2. Snapshot the linear commit list and derive the pre-edit state.
	rawCommits, err := repo.ListCommits(ctx, mainBranch)
	if err != nil {
		return nil, yggiterrors.New(yggiterrors.KindIO, err)
	}
	beforeCommits, err := notesStore.ReadAll(ctx, toPlanCommits(rawCommits))
	if err != nil {
		return nil, yggiterrors.New(yggiterrors.KindIO, err)
	}
	beforeState := plan.StatesFromCommits(beforeCommits, mainBranch)

	// 3. Render plan; write to a temp file; invoke editor; read back.
	text := plan.Render(beforeCommits)
	planPath := filepath.Join(repo.YggitDir(), "plan")
	var cu cleanup.Cleanup
	cu.Add(func() {
		if err := os.Remove(planPath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Debug("failed to remove temporary plan file")
		}
	})
	defer cu.Cleanup()

	edited, err := editor.EditFile(ctx, repo, planPath, text, editor.Config{Command: opts.EditorCommand})
	if err != nil {
		return nil, err
	}

	// 4. Parse the edited content. On parse-none, fail.
	afterCommits, ok := plan.Parse(edited, mainBranch)
	if !ok {
		return nil, yggiterrors.New(yggiterrors.KindParse, yggiterrors.ErrNoValidPlan)
	}

	// 5. Derive the post-edit state.
	afterState := plan.StatesFromCommits(afterCommits, mainBranch)

	// 6. Save notes.
	if err := notesStore.SaveAll(ctx, afterCommits); err != nil {
		logrus.WithError(err).Warn("failed to save one or more notes")
	}

	// 7. Run DAG Materializer.
	branchFailures := dag.Materialize(ctx, repo, afterCommits)

	// 8. Run Push Reconciler.
	pushResults, err := push.Reconcile(ctx, repo, afterCommits)
	result := &PushResult{BranchFailures: branchFailures, PushResults: pushResults}
	if err != nil {
		// Steps 6-7 have already taken effect regardless of this error; on
		// divergence that's the expected, safe abort described in spec
		// §4.5 and §7 (notes/refs are left in place for the next
		// invocation to re-reconcile).
		return result, err
	}

	// 9. If not no_review, run Review Synchronizer.
	if opts.NoReview || reviewGateway == nil {
		result.ReviewSkipped = true
		return result, nil
	}
	if err := review.Sync(ctx, reviewGateway, beforeState, afterState, mainBranch); err != nil {
		if !yggiterrors.Is(err, yggiterrors.KindReviewUnavailable) {
			return result, errors.WithStack(err)
		}
		result.ReviewSkipped = true
	}
	return result, nil
}

func toPlanCommits(commits []*git.CommitInfo) []plan.Commit {
	out := make([]plan.Commit, len(commits))
	for i, c := range commits {
		out[i] = plan.Commit{
			ID:          plan.CommitID(c.Hash),
			Title:       c.Subject,
			Description: c.Description,
		}
	}
	return out
}
