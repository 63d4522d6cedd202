package git

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
)

// CommitInfo is the information about a single commit that the rest of
// yggit needs: its id, its title (the first line of the message), and its
// description (the remainder).
type CommitInfo struct {
	Hash        string
	ShortHash   string
	Subject     string
	Description string
	AuthorDate  time.Time
}

type LogOpts struct {
	// RevisionRange is the range of commits specified in the format
	// described in git-log(1).
	RevisionRange []string
	// Reverse displays the commits oldest-first.
	Reverse bool
}

// Log returns the commits specified by the range.
func (r *Repo) Log(ctx context.Context, opts LogOpts) ([]*CommitInfo, error) {
	args := []string{"log", "--format=%H%x00%h%x00%aI%x00%s%x00%b%x00"}
	if opts.Reverse {
		args = append(args, "--reverse")
	}
	args = append(args, opts.RevisionRange...)
	args = append(args, "--")
	res, err := r.Run(ctx, &RunOpts{Args: args, ExitError: true})
	if err != nil {
		return nil, err
	}
	logrus.WithField("range", opts.RevisionRange).Debug("got git-log")

	rd := bufio.NewReader(bytes.NewBuffer(res.Stdout))
	var ret []*CommitInfo
	for {
		ci, err := readLogEntry(rd)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		ret = append(ret, ci)
	}
	return ret, nil
}

// ListCommits returns the linear log of the current branch, oldest-first,
// back to (but not including) the merge base with the remote-tracking copy
// of mainBranch (refs/remotes/<remote>/<mainBranch>), or with the local
// mainBranch when no remote-tracking copy exists. This is the commit
// sequence presented to the user by the Plan Renderer.
func (r *Repo) ListCommits(ctx context.Context, mainBranch string) ([]*CommitInfo, error) {
	baseRef := mainBranch
	ref := remoteTrackingRef(r.RemoteName(), mainBranch)
	if _, err := r.gitRepo.Reference(ref, true); err == nil {
		baseRef = string(ref)
	}
	base, err := r.MergeBase(ctx, "HEAD", baseRef)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to find merge base with %q", mainBranch)
	}
	return r.Log(ctx, LogOpts{
		RevisionRange: []string{base + "..HEAD"},
		Reverse:       true,
	})
}

func readLogEntry(rd *bufio.Reader) (*CommitInfo, error) {
	commitHash, err := rd.ReadString('\x00')
	if err != nil {
		return nil, err
	}
	abbrevHash, err := rd.ReadString('\x00')
	if err != nil {
		return nil, err
	}
	authorDate, err := rd.ReadString('\x00')
	if err != nil {
		return nil, err
	}
	subject, err := rd.ReadString('\x00')
	if err != nil {
		return nil, err
	}
	body, err := rd.ReadString('\x00')
	if err != nil {
		return nil, err
	}
	parsedDate, _ := time.Parse(time.RFC3339, strings.TrimSpace(trimNUL(authorDate)))
	return &CommitInfo{
		Hash:        strings.TrimSpace(trimNUL(commitHash)),
		ShortHash:   strings.TrimSpace(trimNUL(abbrevHash)),
		AuthorDate:  parsedDate,
		Subject:     trimNUL(subject),
		Description: strings.TrimSpace(trimNUL(body)),
	}, nil
}

func trimNUL(s string) string {
	return strings.Trim(s, "\x00")
}
