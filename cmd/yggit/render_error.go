package main

import (
	"fmt"

	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/fatih/color"
)

// renderError produces the one-line, phase-identifying message required by
// spec §7 ("user-visible failure behavior is a nonzero exit and a one-line
// message identifying the phase").
func renderError(err error) string {
	phase := "unknown"
	for _, k := range []yggiterrors.Kind{
		yggiterrors.KindEditorAborted,
		yggiterrors.KindParse,
		yggiterrors.KindIO,
		yggiterrors.KindRemoteDivergence,
		yggiterrors.KindRepoOp,
		yggiterrors.KindReviewOp,
		yggiterrors.KindReviewUnavailable,
	} {
		if yggiterrors.Is(err, k) {
			phase = string(k)
			break
		}
	}
	return fmt.Sprintf("%s error: %s\n", color.RedString(phase), err)
}
