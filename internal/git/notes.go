package git

import (
	"bytes"
	"context"
	"strings"

	"emperror.dev/errors"
)

// ErrNoteNotFound is returned by ReadNote when the given commit has no note
// attached under NotesRef.
var ErrNoteNotFound = errors.Sentinel("no note attached to commit")

// ReadNote returns the raw contents of the note attached to id under
// NotesRef, or ErrNoteNotFound if none exists.
func (r *Repo) ReadNote(ctx context.Context, id string) (string, error) {
	out, err := r.Run(ctx, &RunOpts{Args: []string{"notes", "--ref", NotesRef, "show", id}})
	if err != nil {
		return "", err
	}
	if out.ExitCode != 0 {
		if strings.Contains(string(out.Stderr), "no note found") {
			return "", ErrNoteNotFound
		}
		return "", errors.Errorf("git notes show %s: %s", ShortSha(id), out.Stderr)
	}
	return string(out.Stdout), nil
}

// WriteNote attaches contents as the note on id under NotesRef, replacing
// any note already there.
func (r *Repo) WriteNote(ctx context.Context, id string, contents string) error {
	_, err := r.Run(ctx, &RunOpts{
		Args:      []string{"notes", "--ref", NotesRef, "add", "-f", "-F", "-", id},
		Stdin:     bytes.NewBufferString(contents),
		ExitError: true,
	})
	if err != nil {
		return errors.WrapIff(err, "failed to write note on %s", ShortSha(id))
	}
	return nil
}

// RemoveNote removes the note (if any) attached to id under NotesRef. It is
// not an error for id to have no note.
func (r *Repo) RemoveNote(ctx context.Context, id string) error {
	out, err := r.Run(ctx, &RunOpts{Args: []string{"notes", "--ref", NotesRef, "remove", "--ignore-missing", id}})
	if err != nil {
		return err
	}
	if out.ExitCode != 0 {
		return errors.Errorf("git notes remove %s: %s", ShortSha(id), out.Stderr)
	}
	return nil
}
