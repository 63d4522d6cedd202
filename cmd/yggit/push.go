package main

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/actions"
	"github.com/d4hines/yggit/internal/config"
	"github.com/d4hines/yggit/internal/push"
	"github.com/d4hines/yggit/internal/review"
	"github.com/d4hines/yggit/internal/review/ghreview"
	"github.com/d4hines/yggit/internal/utils/colors"
	"github.com/d4hines/yggit/internal/utils/stringutils"
	"github.com/spf13/cobra"
)

var pushFlags struct {
	NoPR bool
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "open your editor on the stack plan and publish the resulting branches",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := getRepo(cmd.Context())
		if err != nil {
			return err
		}

		var gateway review.Gateway
		if !pushFlags.NoPR {
			origin, err := repo.Origin(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "failed to determine repository origin")
			}
			owner, name, ok := strings.Cut(origin.RepoSlug, "/")
			if !ok {
				return errors.Errorf("unable to parse repository slug %q", origin.RepoSlug)
			}
			gateway, err = ghreview.New(config.Yggit.GitHub.Token, owner, name)
			if err != nil {
				return errors.Wrap(err, "failed to construct review gateway")
			}
		}

		result, err := actions.Push(cmd.Context(), repo, gateway, actions.PushOpts{NoReview: pushFlags.NoPR})
		if result != nil {
			for _, r := range result.PushResults {
				switch r.Outcome {
				case push.Pushed:
					fmt.Printf("  %s %s\n", colors.Success("pushed"), colors.UserInput(r.Branch))
				case push.UpToDate:
					fmt.Printf("  %s %s\n", colors.Faint("up to date"), colors.UserInput(r.Branch))
				case push.Diverged:
					fmt.Printf("  %s %s\n", colors.Failure("diverged"), colors.UserInput(r.Branch))
				}
			}
			for _, f := range result.BranchFailures {
				msg := fmt.Sprintf("failed to update %s:\n%s", f.Branch, stringutils.Indent(f.Err.Error(), "    "))
				fmt.Println(colors.Failure(msg))
			}
			if result.ReviewSkipped && !pushFlags.NoPR {
				fmt.Println(colors.Troubleshooting("review synchronization skipped (review service unavailable)"))
			}
		}
		return err
	},
}

func init() {
	pushCmd.Flags().BoolVar(&pushFlags.NoPR, "no-pr", false, "skip creating or updating review requests")
}
