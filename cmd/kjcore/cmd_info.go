package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyelljensen/kjcore"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the workspace configuration and directory status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("kjcore "+kjcore.Version))
		fmt.Fprint(out, cfg.String())

		for _, dir := range []string{
			cfg.PlotDirectory,
			cfg.DataDirectory,
			cfg.DatabaseDirectory,
			cfg.LogDirectory,
			cfg.LatexDirectory,
		} {
			status := "ok"
			if _, err := os.Stat(dir); err != nil {
				status = "missing"
			}
			fmt.Fprintf(out, "  %-8s %s\n", status, pathStyle.Render(dir))
		}
		return nil
	},
}
