package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyelljensen/kjcore/database"
)

var (
	scaffoldDB  string
	scaffoldDir string
	scaffoldPkg string
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Generate Go model stubs from the tables of a project database",
	Long: `Reads the table names of a workspace database and writes one Go stub
file per table, snake_cased, into the target directory. Existing files are
never overwritten.

Example:
  kjcore scaffold --db trees --out ./models --pkg models`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, err := database.Open(cfg, scaffoldDB)
		if err != nil {
			return err
		}
		defer m.Close()

		tables, err := m.Tables(cmd.Context())
		if err != nil {
			return err
		}
		if len(tables) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("database has no tables"))
			return nil
		}

		written, err := m.ScaffoldFiles(tables, scaffoldDir, scaffoldPkg)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("%d of %d stubs written", len(written), len(tables))))
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), pathStyle.Render(path))
		}
		return nil
	},
}

func init() {
	scaffoldCmd.Flags().StringVar(&scaffoldDB, "db", "", "database name inside the workspace (default: kjcore)")
	scaffoldCmd.Flags().StringVar(&scaffoldDir, "out", "models", "output directory for the stub files")
	scaffoldCmd.Flags().StringVar(&scaffoldPkg, "pkg", "models", "package name for the stub files")
}
