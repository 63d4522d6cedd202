package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "prepare the repository for use with yggit",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := getRepo(cmd.Context())
		if err != nil {
			return err
		}
		// YggitDir() creates .git/yggit on first call; nothing else needs
		// provisioning since all durable state lives in git notes.
		_ = repo.YggitDir()
		fmt.Println("yggit is ready to use in this repository.")
		return nil
	},
}
