package plan_test

import (
	"testing"

	"github.com/d4hines/yggit/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hash1 = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
const hash2 = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
const hash3 = "cccccccccccccccccccccccccccccccccccccccc"
const hash4 = "dddddddddddddddddddddddddddddddddddddddd"

func TestParse_LinearChainImplicitParents(t *testing.T) {
	input := hash1 + " First commit\n-> feature-1\n\n" +
		hash2 + " Second commit\n-> feature-2\n\n" +
		hash3 + " Third commit\n-> feature-3\n"

	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 3)

	assert.Equal(t, "main", commits[0].Note.Push.ParentBranch)
	assert.Equal(t, "feature-1", commits[1].Note.Push.ParentBranch)
	assert.Equal(t, "feature-2", commits[2].Note.Push.ParentBranch)
}

func TestParse_MixedExplicitAndImplicit(t *testing.T) {
	input := hash1 + " First\n-> foo => bar\n\n" +
		hash2 + " Second\n-> baz => bar\n\n" +
		hash3 + " Third\n-> bam\n"

	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 3)

	assert.Equal(t, "bar", commits[0].Note.Push.ParentBranch)
	assert.Equal(t, "bar", commits[1].Note.Push.ParentBranch)
	assert.Equal(t, "baz", commits[2].Note.Push.ParentBranch)
}

func TestParse_OriginOverrideWithParent(t *testing.T) {
	input := hash1 + " Some commit\n-> upstream:feature => develop\n"

	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 1)

	push := commits[0].Note.Push
	assert.Equal(t, "upstream", push.Origin)
	assert.Equal(t, "feature", push.Branch)
	assert.Equal(t, "develop", push.ParentBranch)
}

func TestParse_FourTargetChain(t *testing.T) {
	// alpha: implicit parent = main (first)
	// beta: explicit parent = main
	// gamma: implicit parent = beta (from previous)
	// delta: explicit parent = alpha
	input := hash1 + " First\n-> alpha\n\n" +
		hash2 + " Second\n-> beta => main\n\n" +
		hash3 + " Third\n-> gamma\n\n" +
		hash4 + " Fourth\n-> delta => alpha\n"

	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 4)

	assert.Equal(t, "main", commits[0].Note.Push.ParentBranch)
	assert.Equal(t, "main", commits[1].Note.Push.ParentBranch)
	assert.Equal(t, "beta", commits[2].Note.Push.ParentBranch)
	assert.Equal(t, "alpha", commits[3].Note.Push.ParentBranch)
}

func TestParse_CommitWithoutTarget(t *testing.T) {
	input := hash1 + " Some commit without target\n"
	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 1)
	assert.Nil(t, commits[0].Note)
}

func TestParse_NoValidHeaders(t *testing.T) {
	commits, ok := plan.Parse("# just a comment\n\n", "main")
	assert.False(t, ok)
	assert.Nil(t, commits)
}

func TestParse_BlankBranchAfterTrimDropsTarget(t *testing.T) {
	input := hash1 + " Some commit\n->   \n"
	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 1)
	assert.Nil(t, commits[0].Note)
}

func TestParse_CommentsAndBlankLinesIgnored(t *testing.T) {
	input := "# comment\n\n" + hash1 + " Title here\n# inline comment, not a target\n-> branchy\n\n# trailing\n"
	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 1)
	require.NotNil(t, commits[0].Note)
	assert.Equal(t, "branchy", commits[0].Note.Push.Branch)
}

func TestParse_DuplicateBranchLastWins(t *testing.T) {
	input := hash1 + " First\n-> dup\n\n" +
		hash2 + " Second\n-> dup => main\n"
	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 2)
	assert.Equal(t, "dup", commits[0].Note.Push.Branch)
	assert.Equal(t, "dup", commits[1].Note.Push.Branch)

	states := plan.StatesFromCommits(commits, "main")
	require.Len(t, states, 1)
	assert.Equal(t, "Second", states["dup"].CommitTitle)
}

// Implicit-parent law: for target lines with an omitted parent at
// positions i1<i2<...<ik, the parent of target ij equals the branch of
// target ij-1, or mainBranch when j=1 -- regardless of how many headers
// without targets are interleaved.
func TestParse_ImplicitParentLawWithInterleavedPlainCommits(t *testing.T) {
	input := hash1 + " no target here\n\n" +
		hash2 + " First target\n-> one\n\n" +
		hash3 + " no target either\n\n" +
		hash4 + " Second target\n-> two\n"

	commits, ok := plan.Parse(input, "main")
	require.True(t, ok)
	require.Len(t, commits, 4)
	assert.Nil(t, commits[0].Note)
	assert.Equal(t, "main", commits[1].Note.Push.ParentBranch)
	assert.Nil(t, commits[2].Note)
	assert.Equal(t, "one", commits[3].Note.Push.ParentBranch)
}
