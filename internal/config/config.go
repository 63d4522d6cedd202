// Package config loads yggit's ambient configuration (review-service
// credentials, default remote, pull-request defaults) from the usual set
// of XDG config locations plus environment variables.
package config

import (
	"os"

	"emperror.dev/errors"
	"github.com/spf13/viper"
)

type GitHub struct {
	Token   string
	BaseUrl string
}

type PullRequest struct {
	Draft bool
}

type Push struct {
	// DefaultRemote is the remote used when a push target doesn't specify
	// one (spec §3 PushTarget.origin).
	DefaultRemote string
}

// Yggit holds the loaded configuration. It starts out with the same
// defaults the application would have with no config file at all.
var Yggit = struct {
	PullRequest PullRequest
	GitHub      GitHub
	Push        Push
}{
	GitHub: GitHub{BaseUrl: "https://github.com"},
	Push:   Push{DefaultRemote: "origin"},
}

// Load initializes Yggit from the first config file found among the usual
// locations plus any additional paths (typically the repository's
// .git/yggit directory). It returns whether a config file was found.
func Load(paths []string) (bool, error) {
	loaded, err := loadFromFile(paths)
	loadFromEnv()
	return loaded, err
}

func loadFromFile(paths []string) (bool, error) {
	v := viper.New()
	v.SetConfigName("config")

	v.AddConfigPath("$XDG_CONFIG_HOME/yggit")
	v.AddConfigPath("$HOME/.config/yggit")
	v.AddConfigPath("$HOME/.yggit")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, err
	}
	if err := v.Unmarshal(&Yggit); err != nil {
		return true, errors.Wrap(err, "failed to read yggit config")
	}
	return true, nil
}

func loadFromEnv() {
	if token := os.Getenv("YGGIT_GITHUB_TOKEN"); token != "" {
		Yggit.GitHub.Token = token
	} else if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		Yggit.GitHub.Token = token
	}
	if remote := os.Getenv("YGGIT_DEFAULT_REMOTE"); remote != "" {
		Yggit.Push.DefaultRemote = remote
	}
}
