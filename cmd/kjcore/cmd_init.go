package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyelljensen/kjcore/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a workspace directory tree and default config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := workdir
		if dir == "" {
			dir = config.DefaultWorkingDirectory()
		}

		cfg, err := config.New(dir)
		if err != nil {
			return err
		}

		path := configPath(cfg.WorkingDirectory)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("config.yaml already exists, leaving it untouched"))
		} else {
			if err := cfg.Save(path); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("workspace ready"))
		fmt.Fprintln(cmd.OutOrStdout(), pathStyle.Render(cfg.WorkingDirectory))
		return nil
	},
}
