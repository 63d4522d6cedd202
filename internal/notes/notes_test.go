package notes_test

import (
	"context"
	"testing"

	"github.com/d4hines/yggit/internal/git/gittest"
	"github.com/d4hines/yggit/internal/notes"
	"github.com/d4hines/yggit/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadDelete(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()
	store := notes.New(repo)

	head := testRepo.Head(t)
	id := plan.CommitID(head.String())

	note, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, note)

	target := &plan.Note{Push: &plan.PushTarget{Branch: "feature-1", ParentBranch: "main"}}
	require.NoError(t, store.Write(ctx, id, target))

	got, err := store.Read(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Push)
	assert.Equal(t, *target.Push, *got.Push)

	require.NoError(t, store.Delete(ctx, id))
	got, err = store.Read(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()
	store := notes.New(repo)
	head := testRepo.Head(t)
	id := plan.CommitID(head.String())

	target := &plan.Note{Push: &plan.PushTarget{Branch: "feature-1"}}
	require.NoError(t, store.Write(ctx, id, target))
	require.NoError(t, store.Write(ctx, id, target))

	got, err := store.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "feature-1", got.Push.Branch)
}

func TestReadAllAttachesNotes(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()
	store := notes.New(repo)
	head := testRepo.Head(t)
	id := plan.CommitID(head.String())
	require.NoError(t, store.Write(ctx, id, &plan.Note{Push: &plan.PushTarget{Branch: "feature-1"}}))

	commits := []plan.Commit{{ID: id, Title: "Initial commit"}}
	out, err := store.ReadAll(ctx, commits)
	require.NoError(t, err)
	require.NotNil(t, out[0].Note)
	assert.Equal(t, "feature-1", out[0].Note.Push.Branch)
}
