package main

import (
	"fmt"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/d4hines/yggit/internal/config"
	"github.com/fatih/color"
	"github.com/kr/text"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var rootFlags struct {
	Debug     bool
	Directory string
}

var rootCmd = &cobra.Command{
	Use: "yggit",

	// We handle error/usage printing ourselves so messages stay one line
	// per spec §7.
	SilenceErrors: true,
	SilenceUsage:  true,

	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootFlags.Debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.WithField("yggit_version", config.Version).Debug("enabled debug logging")
		}

		repoConfigDir := ""
		if repo, err := getRepo(cmd.Context()); err != nil {
			logrus.WithError(err).Debug("unable to load git repo (probably not inside a repo)")
		} else {
			repoConfigDir = repo.YggitDir()
		}

		if _, err := config.Load([]string{repoConfigDir}); err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if err := config.LoadUserState(); err != nil {
			return errors.Wrap(err, "failed to load the user state")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false, "enable verbose debug logging",
	)
	rootCmd.PersistentFlags().StringVarP(
		&rootFlags.Directory, "repo", "C", "", "directory to use for git repository",
	)
	rootCmd.AddCommand(
		pushCmd,
		showCmd,
		initCmd,
		versionCmd,
	)
}

func main() {
	startTime := time.Now()
	err := rootCmd.Execute()
	logrus.WithField("duration", time.Since(startTime)).Debug("command exited")
	checkCliVersion()
	if err != nil {
		if rootFlags.Debug {
			fmt.Fprintf(os.Stderr, "error: %s\n%s\n", err, text.Indent(fmt.Sprintf("%+v", err), "\t"))
		} else {
			fmt.Fprint(os.Stderr, renderError(err))
		}
		os.Exit(1)
	}
}

func checkCliVersion() {
	if config.Version == config.VersionDev {
		logrus.Debug("skipping version check (development build)")
		return
	}
	latest, err := config.FetchLatestVersion()
	if err != nil {
		logrus.WithError(err).Debug("failed to determine latest released version of yggit")
		return
	}
	if semver.Compare(config.Version, latest) < 0 && config.UserState.LastVersionCheckNotified != latest {
		c := color.New(color.Faint, color.Bold)
		fmt.Fprint(os.Stderr,
			c.Sprint(">> A new version of yggit is available: "),
			color.RedString(config.Version), c.Sprint(" => "), color.GreenString(latest), "\n",
		)
		config.UserState.LastVersionCheckNotified = latest
		if err := config.SaveUserState(); err != nil {
			logrus.WithError(err).Debug("failed to save the user state")
		}
	}
}
