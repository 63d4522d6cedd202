// Package reviewtest provides an in-memory Review Gateway fake for tests,
// grounded on the reference implementation's MockGitHubCli.
package reviewtest

import (
	"context"

	"github.com/d4hines/yggit/internal/review"
	"github.com/d4hines/yggit/internal/utils/maputils"
)

// Call records one gateway invocation, for assertions.
type Call struct {
	Verb               string // "create" or "retarget"
	Branch, Base       string
	Title, Body        string
}

// Fake is an in-memory Review Gateway. Reviews is pre-seeded with any
// reviews that should already "exist" before the run.
type Fake struct {
	Unavailable bool
	Reviews     map[string]string // branch -> base
	Calls       []Call

	// FailCreateWith, if set, is returned (instead of nil) from Create for
	// the named branch.
	FailCreateWith map[string]error
	// FailRetargetWith, if set, is returned (instead of nil) from Retarget
	// for the named branch.
	FailRetargetWith map[string]error
}

func New() *Fake {
	return &Fake{Reviews: map[string]string{}}
}

// Snapshot returns a copy of the fake's review state (branch -> base), safe
// for a test to hold onto across further calls into the fake.
func (f *Fake) Snapshot() map[string]string {
	return maputils.Copy(f.Reviews)
}

func (f *Fake) Available(ctx context.Context) bool { return !f.Unavailable }

func (f *Fake) Exists(ctx context.Context, branch string) (bool, error) {
	_, ok := f.Reviews[branch]
	return ok, nil
}

func (f *Fake) Create(ctx context.Context, branch, base, title, body string) error {
	f.Calls = append(f.Calls, Call{Verb: "create", Branch: branch, Base: base, Title: title, Body: body})
	if err, ok := f.FailCreateWith[branch]; ok {
		return err
	}
	if _, exists := f.Reviews[branch]; exists {
		return review.ErrAlreadyExists
	}
	f.Reviews[branch] = base
	return nil
}

func (f *Fake) Retarget(ctx context.Context, branch, newBase string) error {
	f.Calls = append(f.Calls, Call{Verb: "retarget", Branch: branch, Base: newBase})
	if err, ok := f.FailRetargetWith[branch]; ok {
		return err
	}
	if _, exists := f.Reviews[branch]; !exists {
		return review.ErrNotFound
	}
	f.Reviews[branch] = newBase
	return nil
}
