// Package ghreview is the concrete Review Gateway adapter backed by
// GitHub's GraphQL API. It implements review.Gateway.
package ghreview

import (
	"context"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/config"
	"github.com/d4hines/yggit/internal/utils/logutils"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client is a Review Gateway backed by the GitHub GraphQL API.
type Client struct {
	gh         *githubv4.Client
	owner, repo string
	repositoryID string
}

// New builds a Client for the given owner/repo slug, authenticated with
// token. The repository's GraphQL node id is resolved lazily on first use
// (so constructing a Client never makes a network call, which keeps
// Available() cheap to call speculatively).
func New(token, owner, repo string) (*Client, error) {
	if token == "" {
		return nil, errors.New("no GitHub token configured")
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	return &Client{gh: githubv4.NewClient(httpClient), owner: owner, repo: repo}, nil
}

func (c *Client) query(ctx context.Context, query any, variables map[string]any) (reterr error) {
	log := logrus.WithField("variables", logutils.Format("%#+v", variables))
	start := time.Now()
	defer func() {
		log := log.WithField("elapsed", time.Since(start))
		if reterr != nil {
			log.WithError(reterr).Debug("GitHub GraphQL query failed")
		} else {
			log.Debug("GitHub GraphQL query succeeded")
		}
	}()
	return c.gh.Query(ctx, query, variables)
}

func (c *Client) mutate(ctx context.Context, mutation any, input githubv4.Input, variables map[string]any) (reterr error) {
	log := logrus.WithField("input", logutils.Format("%#+v", input))
	start := time.Now()
	defer func() {
		log := log.WithField("elapsed", time.Since(start))
		if reterr != nil {
			log.WithError(reterr).Debug("GitHub GraphQL mutation failed")
		} else {
			log.Debug("GitHub GraphQL mutation succeeded")
		}
	}()
	return c.gh.Mutate(ctx, mutation, input, variables)
}

func (c *Client) resolveRepositoryID(ctx context.Context) (string, error) {
	if c.repositoryID != "" {
		return c.repositoryID, nil
	}
	var query struct {
		Repository struct {
			ID string
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	if err := c.query(ctx, &query, map[string]any{
		"owner": githubv4.String(c.owner),
		"name":  githubv4.String(c.repo),
	}); err != nil {
		return "", errors.WrapIff(err, "failed to resolve repository %s/%s", c.owner, c.repo)
	}
	c.repositoryID = query.Repository.ID
	return c.repositoryID, nil
}

// Available reports whether the GitHub API is reachable and the repository
// resolves. It never returns an error: per spec §4.6, unavailability just
// downgrades the synchronizer to a no-op.
func (c *Client) Available(ctx context.Context) bool {
	_, err := c.resolveRepositoryID(ctx)
	return err == nil
}

func (c *Client) pullRequestNumber(ctx context.Context, branch string) (int64, bool, error) {
	var query struct {
		Repository struct {
			PullRequests struct {
				Nodes []struct {
					Number int64
				}
			} `graphql:"pullRequests(headRefName: $branch, states: OPEN, first: 1)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	if err := c.query(ctx, &query, map[string]any{
		"owner":  githubv4.String(c.owner),
		"name":   githubv4.String(c.repo),
		"branch": githubv4.String(branch),
	}); err != nil {
		return 0, false, errors.WrapIff(err, "failed to look up pull request for %s", branch)
	}
	nodes := query.Repository.PullRequests.Nodes
	if len(nodes) == 0 {
		return 0, false, nil
	}
	return nodes[0].Number, true, nil
}

// Exists reports whether an open pull request already exists with branch as
// its head.
func (c *Client) Exists(ctx context.Context, branch string) (bool, error) {
	_, ok, err := c.pullRequestNumber(ctx, branch)
	return ok, err
}

// Create opens a new pull request with branch as head and base as base.
func (c *Client) Create(ctx context.Context, branch, base, title, body string) error {
	repoID, err := c.resolveRepositoryID(ctx)
	if err != nil {
		return err
	}
	var mutation struct {
		CreatePullRequest struct {
			PullRequest struct{ Number int64 }
		} `graphql:"createPullRequest(input: $input)"`
	}
	input := githubv4.CreatePullRequestInput{
		RepositoryID: repoID,
		BaseRefName:  githubv4.String(base),
		HeadRefName:  githubv4.String(branch),
		Title:        githubv4.String(title),
		Body:         githubv4.NewString(githubv4.String(body)),
		Draft:        githubv4.NewBoolean(githubv4.Boolean(config.Yggit.PullRequest.Draft)),
	}
	if err := c.mutate(ctx, &mutation, input, nil); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return errors.New("already exists")
		}
		return errors.WrapIff(err, "failed to create pull request for %s", branch)
	}
	return nil
}

// Retarget changes the base branch of branch's open pull request.
func (c *Client) Retarget(ctx context.Context, branch, newBase string) error {
	number, ok, err := c.pullRequestNumber(ctx, branch)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("not found")
	}
	var query struct {
		Repository struct {
			PullRequest struct{ ID string } `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	if err := c.query(ctx, &query, map[string]any{
		"owner":  githubv4.String(c.owner),
		"name":   githubv4.String(c.repo),
		"number": githubv4.Int(number),
	}); err != nil {
		return errors.WrapIff(err, "failed to resolve pull request id for %s", branch)
	}

	var mutation struct {
		UpdatePullRequest struct {
			PullRequest struct{ Number int64 }
		} `graphql:"updatePullRequest(input: $input)"`
	}
	input := githubv4.UpdatePullRequestInput{
		PullRequestID: query.Repository.PullRequest.ID,
		BaseRefName:   githubv4.NewString(githubv4.String(newBase)),
	}
	if err := c.mutate(ctx, &mutation, input, nil); err != nil {
		return errors.WrapIff(err, "failed to retarget pull request for %s", branch)
	}
	return nil
}
