package git

// Missing is a sentinel zero-value for object id (aka sha). Git treats this
// value as "this thing doesn't exist": when updating a ref, passing Missing
// as the old value tells Git to only create the ref if it didn't already
// exist.
const Missing = "0000000000000000000000000000000000000000"

// NotesRef is the git-notes namespace yggit uses to store per-commit push
// decisions, so they don't collide with any other tool's notes.
const NotesRef = "refs/notes/yggit"

// UpstreamStatus is the status of a git ref (usually a branch) relative to
// its upstream, as reported by `%(upstream:trackshort)`.
type UpstreamStatus = string

const (
	Ahead     UpstreamStatus = ">"
	Behind    UpstreamStatus = "<"
	Divergent UpstreamStatus = "<>"
	InSync    UpstreamStatus = "="
)
