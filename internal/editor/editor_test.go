package editor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditFile_NoOpReturnsTextUnedited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan")
	text := "Hello world!\n\n# a comment\n"
	res, err := EditFile(context.Background(), nil, path, text, Config{Command: CommandNoOp})
	require.NoError(t, err)
	assert.Equal(t, text, res)
}

func TestEditFile_StripsWholeLineComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan")
	text := "Hello world!\n\nBonjour le monde!\n; This is a comment\n"
	res, err := EditFile(context.Background(), nil, path, text, Config{
		CommentPrefix: ";",
		Command:       "true",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world!\n\nBonjour le monde!\n", res)
}

func TestEditFile_NonZeroExitReturnsAborted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan")
	_, err := EditFile(context.Background(), nil, path, "text\n", Config{Command: "false"})
	require.Error(t, err)
	assert.True(t, yggiterrors.Is(err, yggiterrors.KindEditorAborted))
}
