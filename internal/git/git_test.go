package git_test

import (
	"context"
	"testing"

	"github.com/d4hines/yggit/internal/git"
	"github.com/d4hines/yggit/internal/git/gittest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

func TestOpenRepoAndMainBranchName(t *testing.T) {
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()

	ctx := context.Background()
	assert.Equal(t, "main", repo.MainBranchName(ctx))
	assert.Equal(t, "origin", repo.RemoteName())

	branch, err := repo.CurrentBranchName()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestSetBranchTipAndListCommits(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()

	gittest.CommitFile(t, testRepo, "a.txt", []byte("a"))
	gittest.CommitFile(t, testRepo, "b.txt", []byte("b"))

	commits, err := repo.ListCommits(ctx, "main")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "write file a.txt", commits[0].Subject)
	assert.Equal(t, "write file b.txt", commits[1].Subject)

	head := testRepo.Head(t)
	require.NoError(t, repo.SetBranchTip(ctx, "feature-1", head.String(), ""))
	assert.True(t, repo.DoesBranchExist("feature-1"))
	assert.Equal(t, head.String(), repo.HeadOf("feature-1"))
}

func TestSetBranchTipRejectsUnresolvableParent(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()
	head := testRepo.Head(t)

	err := repo.SetBranchTip(ctx, "feature-1", head.String(), "does-not-exist")
	require.Error(t, err)
}

func TestSetBranchTipAcceptsParentThatIsAncestor(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()

	gittest.CommitFile(t, testRepo, "a.txt", []byte("a"))
	require.NoError(t, repo.SetBranchTip(ctx, "base", testRepo.Head(t).String(), ""))

	gittest.CommitFile(t, testRepo, "b.txt", []byte("b"))
	require.NoError(t, repo.SetBranchTip(ctx, "feature-1", testRepo.Head(t).String(), "base"))
	assert.True(t, repo.DoesBranchExist("feature-1"))
}

func TestSetBranchTipRejectsParentThatIsNotAncestor(t *testing.T) {
	ctx := context.Background()
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()

	// "base" advances past the initial commit.
	gittest.CommitFile(t, testRepo, "a.txt", []byte("a"))
	require.NoError(t, repo.SetBranchTip(ctx, "base", testRepo.Head(t).String(), ""))

	// "other" diverges from the initial commit, never passing through "base".
	testRepo.Git(t, "checkout", "-b", "other", "main~1")
	gittest.CommitFile(t, testRepo, "b.txt", []byte("b"))
	other := testRepo.Head(t)

	err := repo.SetBranchTip(ctx, "feature-1", other.String(), "base")
	require.Error(t, err)
}

func TestDoesBranchExist(t *testing.T) {
	testRepo := gittest.NewTempRepo(t)
	repo := testRepo.AsYggitRepo()
	assert.True(t, repo.DoesBranchExist("main"))
	assert.False(t, repo.DoesBranchExist(git.DefaultRemoteName))
}
