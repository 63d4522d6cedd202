// Package git is the Repo Gateway: a narrow wrapper around the local Git
// repository that the rest of yggit consumes for reading the commit graph
// and writing refs, notes, and remotes.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/config"
	"github.com/d4hines/yggit/internal/utils/errutils"
	"github.com/d4hines/yggit/internal/utils/executils"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sirupsen/logrus"
)

// ErrRemoteNotFound is returned by Origin when the configured remote does
// not exist in the repository.
var ErrRemoteNotFound = errors.Sentinel("this repository doesn't have a remote named origin")

// DefaultRemoteName is the remote used when no origin is configured.
const DefaultRemoteName = "origin"

// Repo is a handle on a local Git working copy.
type Repo struct {
	repoDir string
	gitDir  string
	gitRepo *gogit.Repository
	log     logrus.FieldLogger
}

// OpenRepo opens the Git repository rooted at repoDir (with its associated
// gitDir, usually repoDir/.git).
func OpenRepo(repoDir, gitDir string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(repoDir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, errors.Errorf("failed to open git repo: %v", err)
	}
	return &Repo{
		repoDir: repoDir,
		gitDir:  gitDir,
		gitRepo: repo,
		log:     logrus.WithField("repo", filepath.Base(repoDir)),
	}, nil
}

func (r *Repo) Dir() string    { return r.repoDir }
func (r *Repo) GitDir() string { return r.gitDir }

// YggitDir is the repository-local scratch directory (for the plan temp
// file and repo-local config).
func (r *Repo) YggitDir() string {
	dir := filepath.Join(r.GitDir(), "yggit")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

func (r *Repo) GoGitRepo() *gogit.Repository { return r.gitRepo }

// MainBranchName returns the name of the repository's primary branch,
// falling back to "main" when it cannot be resolved (e.g., no remote, or
// the remote HEAD was never recorded locally).
func (r *Repo) MainBranchName(ctx context.Context) string {
	remote := r.RemoteName()
	ref, err := r.gitRepo.Reference(plumbing.NewRemoteHEADReferenceName(remote), false)
	if err != nil {
		r.log.WithError(err).Debug("failed to determine remote HEAD, falling back to \"main\"")
		return "main"
	}
	return strings.TrimPrefix(ref.Target().String(), fmt.Sprintf("refs/remotes/%s/", remote))
}

// RemoteName returns the configured remote name, defaulting to "origin".
func (r *Repo) RemoteName() string {
	if config.Yggit.Push.DefaultRemote != "" {
		return config.Yggit.Push.DefaultRemote
	}
	return DefaultRemoteName
}

// resolveRemote returns origin if set, else the configured default remote
// (spec §3 PushTarget.origin: "the remote chosen is push.origin if set, else
// a configured default upstream").
func (r *Repo) resolveRemote(origin string) string {
	if origin != "" {
		return origin
	}
	return r.RemoteName()
}

// CurrentBranchName returns the short name of the checked-out branch. It
// errors if the repository is in detached-HEAD state.
func (r *Repo) CurrentBranchName() (string, error) {
	ref, err := r.gitRepo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", errors.Wrap(err, "failed to determine current branch")
	}
	if ref.Type() != plumbing.SymbolicReference {
		return "", errors.New("repository is in detached HEAD state")
	}
	return ref.Target().Short(), nil
}

// Git runs a git subcommand and returns its trimmed stdout.
func (r *Repo) Git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.repoDir
	out, err := cmd.Output()
	if err != nil {
		stderr := "<no output>"
		if exitErr, ok := errutils.As[*exec.ExitError](err); ok {
			stderr = string(exitErr.Stderr)
		}
		r.log.Debugf("git %s failed: %s: %s", executils.FormatCommandLine(args), err, stderr)
		return strings.TrimSpace(string(out)), errors.Wrapf(err, "git %s", args[0])
	}
	r.log.Debugf("git %s", executils.FormatCommandLine(args))
	return strings.TrimSpace(string(out)), nil
}

// RunOpts describes a git invocation that wants more control over
// stdin/exit-code handling than Git provides.
type RunOpts struct {
	Args      []string
	Stdin     *bytes.Buffer
	ExitError bool
}

// Output is the captured result of a Run invocation.
type Output struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (o Output) Lines() []string {
	s := strings.TrimSpace(string(o.Stdout))
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Run executes git with full control over stdio.
func (r *Repo) Run(ctx context.Context, opts *RunOpts) (*Output, error) {
	cmd := exec.CommandContext(ctx, "git", opts.Args...)
	cmd.Dir = r.repoDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}
	r.log.Debugf("git %s", executils.FormatCommandLine(opts.Args))
	err := cmd.Run()
	exitErr, isExitErr := errutils.As[*exec.ExitError](err)
	if err != nil && !isExitErr {
		return nil, errors.Wrapf(err, "git %s", opts.Args)
	}
	out := &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if exitErr != nil {
		out.ExitCode = exitErr.ExitCode()
	}
	if err != nil && opts.ExitError {
		return out, errors.WrapIff(err, "git %s (%s)", opts.Args, stderr.String())
	}
	return out, nil
}
