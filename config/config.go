// Package config holds the core configuration shared by every kjcore
// manager. A Config is created once by the caller, handed to the manager
// constructors and never mutated by them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kyelljensen/kjcore/pathutil"
)

// PackageName identifies this package in log files and directory defaults.
const PackageName = "kjcore"

// Config holds the working directory tree and runtime settings.
type Config struct {
	// WorkingDirectory is the root under which all output lives.
	WorkingDirectory string `yaml:"working_directory"`

	// Derived directories. Filled in by New/Load relative to the working
	// directory unless set explicitly.
	PlotDirectory     string `yaml:"plot_directory,omitempty"`
	DataDirectory     string `yaml:"data_directory,omitempty"`
	DatabaseDirectory string `yaml:"database_directory,omitempty"`
	LogDirectory      string `yaml:"log_directory,omitempty"`
	LatexDirectory    string `yaml:"latex_directory,omitempty"`

	// Logging
	LogLevel       string `yaml:"log_level"`        // debug, info, warn, error
	SaveLogsToFile bool   `yaml:"save_logs_to_file"` // tee logs into LogDirectory
}

// DefaultWorkingDirectory returns the fallback working directory under the
// user home (or the current directory when the home cannot be resolved).
func DefaultWorkingDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", PackageName+"_workspace")
	}
	return filepath.Join(home, PackageName+"_workspace")
}

// New builds a Config rooted at workingDir and creates the full directory
// tree. An empty workingDir falls back to DefaultWorkingDirectory.
func New(workingDir string) (*Config, error) {
	if workingDir == "" {
		workingDir = DefaultWorkingDirectory()
	}

	cfg := &Config{
		WorkingDirectory: workingDir,
		LogLevel:         "info",
	}
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills derived directories that were not set explicitly.
func (c *Config) applyDefaults() {
	if c.WorkingDirectory == "" {
		c.WorkingDirectory = DefaultWorkingDirectory()
	}
	c.WorkingDirectory = filepath.Clean(c.WorkingDirectory)
	if c.PlotDirectory == "" {
		c.PlotDirectory = filepath.Join(c.WorkingDirectory, "plots")
	}
	if c.DataDirectory == "" {
		c.DataDirectory = filepath.Join(c.WorkingDirectory, "data")
	}
	if c.DatabaseDirectory == "" {
		c.DatabaseDirectory = filepath.Join(c.WorkingDirectory, "databases")
	}
	if c.LogDirectory == "" {
		c.LogDirectory = filepath.Join(c.WorkingDirectory, "logs")
	}
	if c.LatexDirectory == "" {
		c.LatexDirectory = filepath.Join(c.WorkingDirectory, "latex")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// applyEnv overrides settings from KJCORE_* environment variables. Env wins
// over both file values and defaults.
func (c *Config) applyEnv() {
	if v := os.Getenv("KJCORE_WORKING_DIR"); v != "" {
		c.WorkingDirectory = filepath.Clean(v)
		c.PlotDirectory = filepath.Join(c.WorkingDirectory, "plots")
		c.DataDirectory = filepath.Join(c.WorkingDirectory, "data")
		c.DatabaseDirectory = filepath.Join(c.WorkingDirectory, "databases")
		c.LogDirectory = filepath.Join(c.WorkingDirectory, "logs")
		c.LatexDirectory = filepath.Join(c.WorkingDirectory, "latex")
	}
	if v := os.Getenv("KJCORE_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("KJCORE_LOG_TO_FILE"); v != "" {
		c.SaveLogsToFile = v == "1" || strings.EqualFold(v, "true")
	}
}

// EnsureDirectories creates the working directory tree. Existing directories
// are left untouched.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.WorkingDirectory,
		c.PlotDirectory,
		c.DataDirectory,
		c.DatabaseDirectory,
		c.LogDirectory,
		c.LatexDirectory,
	} {
		if _, err := pathutil.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// DatabasePath returns the path of a database file inside the database
// directory. The .db extension is appended when missing.
func (c *Config) DatabasePath(name string) string {
	if name == "" {
		name = PackageName
	}
	if filepath.Ext(name) == "" {
		name += ".db"
	}
	return filepath.Join(c.DatabaseDirectory, name)
}

// Load reads a Config from a YAML file, fills derived defaults and applies
// environment overrides. The directory tree is created before returning.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config as YAML.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// String renders a multi-line summary of the configuration.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<Config>\n")
	fmt.Fprintf(&b, "  Package:            %s\n", PackageName)
	fmt.Fprintf(&b, "  Working Directory:  %s\n", c.WorkingDirectory)
	fmt.Fprintf(&b, "  Plot Directory:     %s\n", c.PlotDirectory)
	fmt.Fprintf(&b, "  Data Directory:     %s\n", c.DataDirectory)
	fmt.Fprintf(&b, "  Database Directory: %s\n", c.DatabaseDirectory)
	fmt.Fprintf(&b, "  Log Directory:      %s\n", c.LogDirectory)
	fmt.Fprintf(&b, "  LaTeX Directory:    %s\n", c.LatexDirectory)
	fmt.Fprintf(&b, "  Log Level:          %s\n", c.LogLevel)
	fmt.Fprintf(&b, "  Logs To File:       %t\n", c.SaveLogsToFile)
	return b.String()
}
