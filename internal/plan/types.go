// Package plan implements the editable textual plan that turns a linear
// chain of commits into a set of published branches: rendering the current
// commit/note state to text, and parsing an edited copy back into commit
// records with implicit-parent inference applied.
package plan

// CommitID is an opaque 40-hex commit identifier.
type CommitID string

// PushTarget is the user's declaration that a commit should become (or
// update) a published branch.
type PushTarget struct {
	// Origin is the remote to push to. Empty means the configured default
	// remote applies.
	Origin string
	// Branch is the published branch name this commit should become the tip
	// of. Always non-empty once parsed.
	Branch string
	// ParentBranch is the branch (or the main branch) this one is based on.
	// Never empty after parsing: it is either user-specified or inferred.
	ParentBranch string
}

// Note is the per-commit persisted record of the push decision.
type Note struct {
	Push *PushTarget
}

// Commit is a single entry in the linear commit list, in memory.
type Commit struct {
	ID          CommitID
	Title       string
	Description string
	Note        *Note
}

// BranchState is derived, in-memory state used only by the review
// synchronizer. It is constructed once from the pre-edit notes (the
// "before" snapshot) and once from the post-edit parsed plan (the "after"
// snapshot).
type BranchState struct {
	Branch             string
	TargetBranch       string
	Origin             string
	CommitTitle        string
	CommitDescription  string
}

// StatesFromCommits builds the branch-state map used by the review
// synchronizer from a list of commits, each optionally carrying a Note with
// a PushTarget. When two commits declare the same branch, the later one's
// state is kept.
func StatesFromCommits(commits []Commit, mainBranch string) map[string]BranchState {
	states := make(map[string]BranchState)
	for _, c := range commits {
		if c.Note == nil || c.Note.Push == nil {
			continue
		}
		push := c.Note.Push
		target := push.ParentBranch
		if target == "" {
			target = mainBranch
		}
		states[push.Branch] = BranchState{
			Branch:            push.Branch,
			TargetBranch:      target,
			Origin:            push.Origin,
			CommitTitle:       c.Title,
			CommitDescription: c.Description,
		}
	}
	return states
}
