package plan

import (
	"fmt"
	"strings"
)

// helpBlock is appended to every rendered plan. It is a block of comment
// lines (ignored by the parser per the grammar) explaining the syntax to
// the person about to edit the file, adapted from yggit's original
// COMMENTS block.
const helpBlock = `
# Here is how to use yggit
#
# Commands:
# -> <branch>                    add a branch to the above commit
# -> <origin>:<branch>           add a branch to the above commit with custom origin
# -> <branch> => <parent_branch> add a branch that branches from <parent_branch>
#
# DAG Examples:
# -> feature-1            (branches from previous branch or main if first)
# -> feature-2 => main    (branches from main)
# -> feature-3            (branches from feature-2, the previous branch)
#
# What happens next?
#  - All branches are pushed to their origin, except when you specify a custom origin
#  - Branches with the => syntax get the recorded parent relationship
#
# It's not a rebase: you can't edit commits or reorder them.
`

// Render serializes the commit list into the editable textual plan
// document: a "<id> <title>" header per commit, followed by a target line
// and a blank line for commits with a push target, then the help block.
// Parsing the output of Render with the same main-branch name reproduces
// the same commit ids, titles and push targets whenever every target has
// its ParentBranch set; commit descriptions are not rendered, so they do
// not survive the round trip.
func Render(commits []Commit) string {
	var b strings.Builder
	for _, c := range commits {
		fmt.Fprintf(&b, "%s %s\n", c.ID, c.Title)
		if c.Note != nil && c.Note.Push != nil {
			b.WriteString(renderTargetLine(c.Note.Push))
			b.WriteString("\n")
			b.WriteString("\n")
		}
	}
	b.WriteString(helpBlock)
	return b.String()
}

func renderTargetLine(t *PushTarget) string {
	branch := t.Branch
	if t.Origin != "" {
		branch = t.Origin + ":" + branch
	}
	if t.ParentBranch != "" {
		return fmt.Sprintf("-> %s => %s", branch, t.ParentBranch)
	}
	return fmt.Sprintf("-> %s", branch)
}
