// Package notes is the Notes Store: it persists the per-commit push
// decision (a plan.Note) as JSON in the repository's git-notes namespace
// (internal/git.NotesRef). Notes are keyed by commit id, so a note stays
// with its commit only while that id is unchanged, and can be viewed with
// `git log --notes=yggit`.
package notes

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/git"
	"github.com/d4hines/yggit/internal/plan"
	"github.com/sirupsen/logrus"
)

// Store reads and writes plan.Note records via the repository's notes
// mechanism.
type Store struct {
	repo *git.Repo
}

func New(repo *git.Repo) *Store {
	return &Store{repo: repo}
}

// noteWireFormat is the on-disk JSON shape of a plan.Note. It's kept
// separate from plan.Note so the plan package's in-memory model can evolve
// without changing the wire format (and vice versa).
type noteWireFormat struct {
	Push *pushTargetWireFormat `json:"push,omitempty"`
}

type pushTargetWireFormat struct {
	Origin       string `json:"origin,omitempty"`
	Branch       string `json:"branch"`
	ParentBranch string `json:"parent_branch,omitempty"`
}

// Read returns the note attached to commit id, or nil if none is attached.
func (s *Store) Read(ctx context.Context, id plan.CommitID) (*plan.Note, error) {
	raw, err := s.repo.ReadNote(ctx, string(id))
	if err != nil {
		if errors.Is(err, git.ErrNoteNotFound) {
			return nil, nil
		}
		return nil, errors.WrapIff(err, "failed to read note on %s", id)
	}
	var wire noteWireFormat
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, errors.WrapIff(err, "failed to parse note on %s", id)
	}
	if wire.Push == nil {
		return &plan.Note{}, nil
	}
	return &plan.Note{
		Push: &plan.PushTarget{
			Origin:       wire.Push.Origin,
			Branch:       wire.Push.Branch,
			ParentBranch: wire.Push.ParentBranch,
		},
	}, nil
}

// ReadAll attaches each commit's persisted note (if any) to it, returning a
// new slice (commits is left unmodified).
func (s *Store) ReadAll(ctx context.Context, commits []plan.Commit) ([]plan.Commit, error) {
	out := make([]plan.Commit, len(commits))
	for i, c := range commits {
		note, err := s.Read(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Note = note
		out[i] = c
	}
	return out, nil
}

// Write persists note on commit id. Writing is idempotent: writing the same
// note twice produces the same stored JSON both times (map keys are fixed
// struct fields, not map iteration, so there's no ordering nondeterminism).
func (s *Store) Write(ctx context.Context, id plan.CommitID, note *plan.Note) error {
	if note == nil || note.Push == nil {
		return s.Delete(ctx, id)
	}
	wire := noteWireFormat{Push: &pushTargetWireFormat{
		Origin:       note.Push.Origin,
		Branch:       note.Push.Branch,
		ParentBranch: note.Push.ParentBranch,
	}}
	data, err := json.Marshal(wire)
	if err != nil {
		return errors.WrapIff(err, "failed to encode note for %s", id)
	}
	if err := s.repo.WriteNote(ctx, string(id), string(data)); err != nil {
		return errors.WrapIff(err, "failed to write note on %s", id)
	}
	return nil
}

// Delete removes any note attached to commit id.
func (s *Store) Delete(ctx context.Context, id plan.CommitID) error {
	if err := s.repo.RemoveNote(ctx, string(id)); err != nil {
		return errors.WrapIff(err, "failed to delete note on %s", id)
	}
	return nil
}

// SaveAll writes (or deletes) every commit's note in plan order, continuing
// past individual failures and logging them, so one unreachable commit
// doesn't stop the rest of the plan from being saved.
func (s *Store) SaveAll(ctx context.Context, commits []plan.Commit) error {
	var firstErr error
	for _, c := range commits {
		if err := s.Write(ctx, c.ID, c.Note); err != nil {
			logrus.WithError(err).WithField("commit", c.ID).Error("failed to save note")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
