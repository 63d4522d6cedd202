package config

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const VersionDev = "<dev>"

// Version is the version of the yggit binary. Set automatically on release
// builds.
var Version = VersionDev

// FetchLatestVersion checks GitHub for the latest released version, caching
// the result for 24 hours so the update check that runs after every yggit
// command doesn't make a network call on every invocation.
func FetchLatestVersion() (string, error) {
	cacheFile, err := xdg.CacheFile(filepath.Join("yggit", "version-check"))
	if err != nil {
		return "", err
	}
	stat, _ := os.Stat(cacheFile)

	if stat != nil && time.Since(stat.ModTime()) <= (24*time.Hour) {
		data, err := os.ReadFile(cacheFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx, "GET", "https://api.github.com/repos/d4hines/yggit/releases/latest", nil,
	)
	if err != nil {
		return "", err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var data struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", err
	}

	if err := os.WriteFile(cacheFile, []byte(data.Name), os.ModePerm); err != nil {
		return "", err
	}
	return data.Name, nil
}
