package review_test

import (
	"context"
	"testing"

	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/review"
	"github.com/d4hines/yggit/internal/review/reviewtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_NewBranchCreatesReview(t *testing.T) {
	gw := reviewtest.New()
	before := map[string]plan.BranchState{}
	after := map[string]plan.BranchState{
		"feature-1": {Branch: "feature-1", TargetBranch: "main", CommitTitle: "Add feature", CommitDescription: "details"},
	}
	require.NoError(t, review.Sync(context.Background(), gw, before, after, "main"))

	require.Len(t, gw.Calls, 1)
	assert.Equal(t, "create", gw.Calls[0].Verb)
	assert.Equal(t, "feature-1", gw.Calls[0].Branch)
	assert.Equal(t, "main", gw.Calls[0].Base)
	assert.Equal(t, "Add feature", gw.Calls[0].Title)
	assert.Contains(t, gw.Calls[0].Body, "details")
	assert.Contains(t, gw.Calls[0].Body, review.Trailer)
}

func TestSync_RetargetOnChangedBase(t *testing.T) {
	gw := reviewtest.New()
	gw.Reviews["feature-1"] = "main"
	before := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "main"}}
	after := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "develop"}}

	require.NoError(t, review.Sync(context.Background(), gw, before, after, "main"))
	require.Len(t, gw.Calls, 1)
	assert.Equal(t, "retarget", gw.Calls[0].Verb)
	assert.Equal(t, "develop", gw.Calls[0].Base)
}

func TestSync_RetargetNotFoundFallsBackToCreate(t *testing.T) {
	gw := reviewtest.New()
	before := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "main"}}
	after := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "develop", CommitTitle: "t"}}

	require.NoError(t, review.Sync(context.Background(), gw, before, after, "main"))
	require.Len(t, gw.Calls, 2)
	assert.Equal(t, "retarget", gw.Calls[0].Verb)
	assert.Equal(t, "create", gw.Calls[1].Verb)
}

func TestSync_RemovedBranchProducesNoCalls(t *testing.T) {
	gw := reviewtest.New()
	gw.Reviews["feature-1"] = "main"
	before := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "main"}}
	after := map[string]plan.BranchState{}

	require.NoError(t, review.Sync(context.Background(), gw, before, after, "main"))
	assert.Empty(t, gw.Calls)
}

func TestSync_UnavailableGatewayIsNoop(t *testing.T) {
	gw := reviewtest.New()
	gw.Unavailable = true
	after := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "main"}}

	err := review.Sync(context.Background(), gw, nil, after, "main")
	require.Error(t, err)
	assert.Empty(t, gw.Calls)
}

func TestSync_UnchangedTargetButMissingReviewCreatesFromBeforeState(t *testing.T) {
	gw := reviewtest.New()
	before := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "main", CommitTitle: "Original title"}}
	after := map[string]plan.BranchState{"feature-1": {Branch: "feature-1", TargetBranch: "main", CommitTitle: "Edited title"}}

	require.NoError(t, review.Sync(context.Background(), gw, before, after, "main"))
	require.Len(t, gw.Calls, 1)
	assert.Equal(t, "create", gw.Calls[0].Verb)
	assert.Equal(t, "Original title", gw.Calls[0].Title)
}
