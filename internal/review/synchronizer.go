// Package review implements the Review Synchronizer (spec §4.6): it diffs
// the pre-edit and post-edit branch-state snapshots and issues create or
// retarget calls against a Review Gateway.
package review

import (
	"context"
	"strings"
	"text/template"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/utils/sliceutils"
	"github.com/d4hines/yggit/internal/utils/templateutils"
	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/sirupsen/logrus"
)

// Trailer is appended to every review body yggit creates, identifying the
// tool that opened it.
const Trailer = "\n\nCreated by yggit."

var bodyTemplate = template.Must(template.New("reviewBody").Parse(
	"{{.Description}}{{.Trailer}}",
))

type bodyTemplateData struct {
	Description string
	Trailer     string
}

// Gateway is the narrow capability set the synchronizer consumes (spec
// §6.4). It is vendor-agnostic: ghreview.Client implements it against
// GitHub, and reviewtest.Fake implements it in-memory for tests.
type Gateway interface {
	Available(ctx context.Context) bool
	Exists(ctx context.Context, branch string) (bool, error)
	Create(ctx context.Context, branch, base, title, body string) error
	Retarget(ctx context.Context, branch, newBase string) error
}

// ErrAlreadyExists and ErrNotFound are the two sentinel failure modes the
// synchronizer treats specially (spec §6.4, §4.6).
var (
	ErrAlreadyExists = errors.Sentinel("already exists")
	ErrNotFound      = errors.Sentinel("not found")
)

// Sync runs the create/retarget diff described in spec §4.6. If the gateway
// reports itself unavailable, Sync makes no calls and returns a
// Kind=ReviewUnavailable error. Per-branch gateway failures are logged as
// Kind=ReviewOp (spec §7) and never returned, so otherwise Sync returns nil.
func Sync(ctx context.Context, gw Gateway, before, after map[string]plan.BranchState, mainBranch string) error {
	if !gw.Available(ctx) {
		logrus.Info("review service unavailable; skipping review synchronization")
		return yggiterrors.Newf(yggiterrors.KindReviewUnavailable, "review gateway unavailable")
	}

	for branch, afterState := range after {
		beforeState, existedBefore := before[branch]
		switch {
		case !existedBefore:
			createForBranch(ctx, gw, afterState, afterState)
		case beforeState.TargetBranch != afterState.TargetBranch:
			if err := gw.Retarget(ctx, branch, afterState.TargetBranch); err != nil {
				if errors.Is(err, ErrNotFound) || isNotFound(err) {
					createForBranch(ctx, gw, afterState, afterState)
					continue
				}
				logReviewOpFailure(branch, "retarget", err)
			}
		default:
			exists, err := gw.Exists(ctx, branch)
			if err != nil {
				logReviewOpFailure(branch, "check existence of", err)
				continue
			}
			if !exists {
				createForBranch(ctx, gw, beforeState, afterState)
			}
		}
	}

	removed := sliceutils.Subtract(keysOf(before), keysOf(after))
	if len(removed) > 0 {
		logrus.WithField("branches", removed).Info("branches removed from plan; reviews left open")
	}
	return nil
}

func keysOf(states map[string]plan.BranchState) []string {
	keys := make([]string, 0, len(states))
	for k := range states {
		keys = append(keys, k)
	}
	return keys
}

func createForBranch(ctx context.Context, gw Gateway, metadataSource, targetState plan.BranchState) {
	title := metadataSource.CommitTitle
	if title == "" {
		title = targetState.Branch
	}
	body := templateutils.MustString(bodyTemplate, bodyTemplateData{
		Description: metadataSource.CommitDescription,
		Trailer:     Trailer,
	})

	err := gw.Create(ctx, targetState.Branch, targetState.TargetBranch, title, body)
	if err != nil && !isAlreadyExists(err) {
		logReviewOpFailure(targetState.Branch, "create", err)
	}
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists) || strings.Contains(err.Error(), "already exists")
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "not found")
}

func logReviewOpFailure(branch, verb string, err error) {
	wrapped := yggiterrors.New(yggiterrors.KindReviewOp, err)
	logrus.WithError(wrapped).WithField("branch", branch).Errorf("failed to %s review", verb)
}
