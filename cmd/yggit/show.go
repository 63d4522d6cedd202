package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/d4hines/yggit/internal/git"
	"github.com/d4hines/yggit/internal/notes"
	"github.com/d4hines/yggit/internal/plan"
	"github.com/d4hines/yggit/internal/utils/colors"
	"github.com/d4hines/yggit/internal/utils/timeutils"
	"github.com/spf13/cobra"
)

// printBranchStatus prints each plan branch's sync status relative to its
// upstream, read-only (it never pushes or fetches).
func printBranchStatus(ctx context.Context, repo *git.Repo, commits []plan.Commit) {
	var patterns []string
	for _, c := range commits {
		if c.Note != nil && c.Note.Push != nil {
			patterns = append(patterns, "refs/heads/"+c.Note.Push.Branch)
		}
	}
	if len(patterns) == 0 {
		return
	}
	refs, err := repo.ListRefs(ctx, &git.ListRefs{Patterns: patterns})
	if err != nil {
		return
	}
	for _, ref := range refs {
		name := strings.TrimPrefix(ref.Name, "refs/heads/")
		switch ref.UpstreamStatus {
		case git.Ahead:
			fmt.Printf("# %s: %s\n", name, colors.Success("ahead of remote"))
		case git.Behind:
			fmt.Printf("# %s: %s\n", name, colors.Failure("behind remote"))
		case git.Divergent:
			fmt.Printf("# %s: %s\n", name, colors.Failure("diverged from remote"))
		case git.InSync:
			fmt.Printf("# %s: %s\n", name, colors.Faint("in sync"))
		default:
			fmt.Printf("# %s: %s\n", name, colors.Troubleshooting("no upstream"))
		}
	}
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "render the current plan to stdout without editing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := getRepo(cmd.Context())
		if err != nil {
			return err
		}
		mainBranch := repo.MainBranchName(cmd.Context())

		rawCommits, err := repo.ListCommits(cmd.Context(), mainBranch)
		if err != nil {
			return err
		}
		commits := make([]plan.Commit, len(rawCommits))
		for i, c := range rawCommits {
			commits[i] = plan.Commit{ID: plan.CommitID(c.Hash), Title: c.Subject, Description: c.Description}
		}
		commits, err = notes.New(repo).ReadAll(cmd.Context(), commits)
		if err != nil {
			return err
		}

		if len(rawCommits) > 0 {
			newest := rawCommits[len(rawCommits)-1]
			fmt.Printf("# last commit: %s\n", timeutils.FormatLocal(newest.AuthorDate))
		}
		printBranchStatus(cmd.Context(), repo, commits)
		fmt.Print(plan.Render(commits))
		return nil
	},
}
