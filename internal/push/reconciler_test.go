package push_test

import (
	"context"
	"testing"

	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/push"
	"github.com/d4hines/yggit/internal/yggiterrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	heads        map[string]string
	lastKnown    map[string]string
	live         map[string]string
	pushed       []string
	pushedOrigin map[string]string
	pushFailFrom string
}

func (f *fakeRepo) HeadOf(branch string) string                 { return f.heads[branch] }
func (f *fakeRepo) LocalRemoteTip(origin, branch string) string  { return f.lastKnown[branch] }
func (f *fakeRepo) RemoteTip(ctx context.Context, origin, branch string) (string, error) {
	return f.live[branch], nil
}
func (f *fakeRepo) PushForce(ctx context.Context, origin, branch, id string) error {
	f.pushed = append(f.pushed, branch)
	if f.pushedOrigin == nil {
		f.pushedOrigin = make(map[string]string)
	}
	f.pushedOrigin[branch] = origin
	return nil
}

func commitsFor(branches ...string) []plan.Commit {
	var commits []plan.Commit
	for i, b := range branches {
		commits = append(commits, plan.Commit{
			ID:   plan.CommitID(string(rune('a' + i))),
			Note: &plan.Note{Push: &plan.PushTarget{Branch: b}},
		})
	}
	return commits
}

func TestReconcile_ThreadsPushTargetOrigin(t *testing.T) {
	repo := &fakeRepo{
		heads:     map[string]string{"feature-1": "new"},
		lastKnown: map[string]string{"feature-1": "old"},
		live:      map[string]string{"feature-1": "old"},
	}
	commits := []plan.Commit{{
		ID:   "a",
		Note: &plan.Note{Push: &plan.PushTarget{Origin: "upstream", Branch: "feature-1"}},
	}}
	results, err := push.Reconcile(context.Background(), repo, commits)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "upstream", repo.pushedOrigin["feature-1"])
}

func TestReconcile_PushesWhenSafe(t *testing.T) {
	repo := &fakeRepo{
		heads:     map[string]string{"feature-1": "new"},
		lastKnown: map[string]string{"feature-1": "old"},
		live:      map[string]string{"feature-1": "old"},
	}
	results, err := push.Reconcile(context.Background(), repo, commitsFor("feature-1"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, push.Pushed, results[0].Outcome)
	assert.Equal(t, []string{"feature-1"}, repo.pushed)
}

func TestReconcile_SkipsWhenUpToDate(t *testing.T) {
	repo := &fakeRepo{
		heads:     map[string]string{"feature-1": "same"},
		lastKnown: map[string]string{"feature-1": "same"},
		live:      map[string]string{"feature-1": "same"},
	}
	results, err := push.Reconcile(context.Background(), repo, commitsFor("feature-1"))
	require.NoError(t, err)
	assert.Equal(t, push.UpToDate, results[0].Outcome)
	assert.Empty(t, repo.pushed)
}

func TestReconcile_AbortsEntirePhaseOnDivergence(t *testing.T) {
	repo := &fakeRepo{
		heads:     map[string]string{"feature-1": "new1", "feature-2": "new2"},
		lastKnown: map[string]string{"feature-1": "old1", "feature-2": "old2"},
		live:      map[string]string{"feature-1": "someone-elses-commit", "feature-2": "old2"},
	}
	results, err := push.Reconcile(context.Background(), repo, commitsFor("feature-1", "feature-2"))
	require.Error(t, err)
	assert.True(t, yggiterrors.Is(err, yggiterrors.KindRemoteDivergence))
	require.Len(t, results, 1)
	assert.Equal(t, push.Diverged, results[0].Outcome)
	assert.Empty(t, repo.pushed, "no push_force call may be issued after divergence is detected")
}
