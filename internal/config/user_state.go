package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// UserState is per-user state saved to XDG_STATE_HOME across invocations.
var UserState struct {
	// LastVersionCheckNotified records the latest version yggit has already
	// told the user about, so the upgrade notice isn't repeated every run.
	LastVersionCheckNotified string
}

// LoadUserState loads UserState, leaving it at its zero value if no state
// file exists yet.
func LoadUserState() error {
	pth, err := xdg.SearchStateFile(filepath.Join("yggit", "user-state.json"))
	if err != nil {
		return nil
	}
	bs, err := os.ReadFile(pth)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, &UserState)
}

// SaveUserState persists UserState.
func SaveUserState() error {
	bs, err := json.Marshal(UserState)
	if err != nil {
		return err
	}
	pth, err := xdg.StateFile(filepath.Join("yggit", "user-state.json"))
	if err != nil {
		return err
	}
	return os.WriteFile(pth, bs, 0o644)
}
