package plan

import (
	"regexp"
	"strings"

	"github.com/d4hines/yggit/internal/utils/stringutils"
)

var (
	headerRe = regexp.MustCompile(`^(?P<hash>[0-9a-fA-F]{40})\s+(?P<title>.+)$`)
	targetRe = regexp.MustCompile(`^->\s*(?P<rest>.+)$`)
)

// Parse parses the edited plan text into an ordered list of commits,
// applying implicit-parent inference. Blank lines and "#" comment lines are
// dropped first, so a target line attaches to the header before it even
// with comments in between. A target line that omits "=> parent" takes the
// branch of the previous target line as its parent, or mainBranch when it
// is the first target line in the plan.
//
// Parse returns (nil, false) if the document contains no valid commit
// headers at all. Otherwise it returns the accumulated list, even if some
// would-be target lines were malformed (they are simply dropped, leaving
// that commit with no note).
func Parse(text string, mainBranch string) ([]Commit, bool) {
	var lines []string
	for _, line := range stringutils.SplitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	var commits []Commit
	lastBranch := ""
	haveLastBranch := false

	i := 0
	for i < len(lines) {
		line := lines[i]
		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		hash := m[1]
		title := m[2]
		commit := Commit{ID: CommitID(hash), Title: title}

		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "->") {
			if target, ok := parseTargetLine(lines[i+1]); ok {
				if target.ParentBranch == "" {
					if haveLastBranch {
						target.ParentBranch = lastBranch
					} else {
						target.ParentBranch = mainBranch
					}
				}
				lastBranch = target.Branch
				haveLastBranch = true
				commit.Note = &Note{Push: &target}
			}
			i++
		}

		commits = append(commits, commit)
		i++
	}

	if len(commits) == 0 {
		return nil, false
	}
	return commits, true
}

// parseTargetLine parses a single "-> ..." line (without inference) into a
// PushTarget. ParentBranch is left empty when omitted from the source line;
// the caller applies implicit-parent inference afterward.
func parseTargetLine(line string) (PushTarget, bool) {
	m := targetRe.FindStringSubmatch(line)
	if m == nil {
		return PushTarget{}, false
	}
	rest := strings.TrimSpace(m[1])

	var parent string
	if idx := strings.Index(rest, "=>"); idx >= 0 {
		parent = strings.TrimSpace(rest[idx+2:])
		rest = strings.TrimSpace(rest[:idx])
	}

	var origin, branch string
	if idx := strings.Index(rest, ":"); idx >= 0 {
		origin = strings.TrimSpace(rest[:idx])
		branch = strings.TrimSpace(rest[idx+1:])
	} else {
		branch = rest
	}

	if branch == "" {
		// Per spec: a blank branch after trimming is treated as "no
		// target" and dropped silently, rather than a parse error.
		return PushTarget{}, false
	}

	return PushTarget{Origin: origin, Branch: branch, ParentBranch: parent}, true
}
