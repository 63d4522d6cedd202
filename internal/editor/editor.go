// Package editor is the Editor Gateway: it writes a file, invokes the
// user's editor on it, and returns the edited contents (or reports that the
// user aborted by exiting the editor non-zero).
package editor

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/git"
	"github.com/d4hines/yggit/internal/utils/errutils"
	"github.com/d4hines/yggit/internal/utils/stringutils"
	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
)

// Config controls how the edited file is read back.
type Config struct {
	// CommentPrefix marks whole-line comments to be dropped when reading
	// the file back (the plan file's "#" convention, spec §6.1).
	CommentPrefix string
	// Command overrides the editor command. If empty, the repository's
	// configured GIT_EDITOR is used.
	Command string
}

// CommandNoOp mirrors git's special ":" editor command: no editor is
// launched and the file is returned unedited.
const CommandNoOp = ":"

// EditFile writes text to path, launches the user's editor on it, and
// returns the edited contents. If the editor exits non-zero, it returns
// yggiterrors.ErrEditorAborted (wrapped as KindEditorAborted) and the
// orchestrator must not apply any mutation (spec §5 Cancellation).
func EditFile(ctx context.Context, repo *git.Repo, path string, text string, config Config) (string, error) {
	if config.Command == "" {
		config.Command = defaultCommand(ctx, repo)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", yggiterrors.New(yggiterrors.KindIO, errors.WrapIff(err, "failed to write plan file %s", path))
	}

	if config.Command == CommandNoOp {
		return text, nil
	}

	// Run through a shell so $EDITOR-style values with arguments (e.g.
	// "code --wait") and quoting work the same way git's editor invocation
	// does.
	shellCmd := config.Command + " " + shellquote.Join(path)
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", shellCmd)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	stderr := bytes.NewBuffer(nil)
	cmd.Stderr = stderr
	logrus.WithField("cmd", cmd.String()).Debug("launching editor")
	if err := cmd.Run(); err != nil {
		if _, ok := errutils.As[*exec.ExitError](err); ok {
			return "", yggiterrors.New(yggiterrors.KindEditorAborted,
				errors.WrapIff(yggiterrors.ErrEditorAborted, "command %q failed: %s", config.Command, stderr.String()))
		}
		return "", yggiterrors.New(yggiterrors.KindIO, errors.WrapIff(err, "failed to launch editor command %q", config.Command))
	}

	return readBack(path, config)
}

func defaultCommand(ctx context.Context, repo *git.Repo) string {
	editor, err := repo.Git(ctx, "var", "GIT_EDITOR")
	if err != nil {
		logrus.WithError(err).Warn("failed to determine editor from git config, falling back to vi")
		return "vi"
	}
	return editor
}

func readBack(path string, config Config) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", yggiterrors.New(yggiterrors.KindIO, err)
	}
	if config.CommentPrefix == "" {
		return string(raw), nil
	}
	return stringutils.RemoveLines(string(raw), config.CommentPrefix), nil
}
