// Package yggiterrors defines the error kinds used throughout yggit so the
// orchestrator can decide, by kind, whether a failure is fatal or merely
// logged (spec §7).
package yggiterrors

import (
	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/utils/errutils"
)

// Kind classifies an error for the orchestrator's propagation policy.
type Kind string

const (
	KindIO                Kind = "io"
	KindParse             Kind = "parse"
	KindRepoOp            Kind = "repo_op"
	KindRemoteDivergence  Kind = "remote_divergence"
	KindReviewOp          Kind = "review_op"
	KindReviewUnavailable Kind = "review_unavailable"
	KindEditorAborted     Kind = "editor_aborted"
)

// Error wraps an underlying error with a Kind the orchestrator switches on.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := errutils.As[*Error](err)
	if !ok {
		return false
	}
	return e.Kind == kind
}

// ErrEditorAborted is returned by the Editor Gateway when the user's editor
// exits non-zero (spec §5 Cancellation).
var ErrEditorAborted = errors.Sentinel("editor exited without saving; aborting")

// ErrNoValidPlan is returned by the orchestrator when the Plan Parser finds
// no valid commit headers at all in the edited document (spec §4.2 "return
// none").
var ErrNoValidPlan = errors.Sentinel("no valid commit headers found in plan")
