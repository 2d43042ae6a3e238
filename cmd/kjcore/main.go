// Command kjcore is a small front-end for kjcore workspaces: it creates
// them, inspects their configuration and scaffolds model files from the
// project database.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kyelljensen/kjcore/config"
	"github.com/kyelljensen/kjcore/logging"
)

var (
	workdir string
	verbose bool

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var rootCmd = &cobra.Command{
	Use:   "kjcore",
	Short: "Manage kjcore research workspaces",
	Long: `kjcore manages the working directory tree used by the kjcore library:
plots, data, databases, logs and LaTeX exports under one root.

Run "kjcore init" to create a workspace, "kjcore info" to inspect it and
"kjcore scaffold" to generate Go model stubs from the project database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		return logging.Configure(cfg)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// loadConfig resolves the workspace config: an explicit config.yaml in the
// working directory wins, otherwise defaults apply.
func loadConfig() (*config.Config, error) {
	dir := workdir
	if dir == "" {
		dir = config.DefaultWorkingDirectory()
	}

	path := configPath(dir)
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}

	return config.New(dir)
}

func configPath(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workdir, "workdir", "w", "", "workspace root (default: ~/kjcore_workspace)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(scaffoldCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render(err.Error()))
		os.Exit(1)
	}
}
