// Package kjcore bundles the shared tooling used across measurement
// analysis projects: a common configuration, a SQLite database manager, a
// data directory manager and a plot manager, plus helpers for paths, LaTeX
// table export and runtime timing.
//
// The usual entry point is Setup, which builds the working directory tree,
// configures logging and wires all managers to one Config:
//
//	core, err := kjcore.Setup("/path/to/project")
//	if err != nil {
//		...
//	}
//	defer core.Close()
//
//	f, err := core.Data.Load("TMS_001")
package kjcore

import (
	"errors"

	"github.com/kyelljensen/kjcore/config"
	"github.com/kyelljensen/kjcore/database"
	"github.com/kyelljensen/kjcore/datastore"
	"github.com/kyelljensen/kjcore/logging"
	"github.com/kyelljensen/kjcore/plotting"
)

// Version of the kjcore package.
const Version = "1.0.0"

// Core holds the configuration and the managers built from it. The managers
// share the Config but never mutate it.
type Core struct {
	Config   *config.Config
	Data     *datastore.Manager
	Database *database.Manager
	Plot     *plotting.Manager
}

// Setup initializes the package: it creates the working directory tree
// under workingDir (empty means the default workspace), configures logging
// and constructs all managers. The project database is opened as
// databases/kjcore.db.
func Setup(workingDir string) (*Core, error) {
	cfg, err := config.New(workingDir)
	if err != nil {
		return nil, err
	}
	if err := logging.Configure(cfg); err != nil {
		return nil, err
	}

	log := logging.Named("setup")
	log.Info("kjcore initialized")

	data, err := datastore.New(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg, "")
	if err != nil {
		data.Close()
		return nil, err
	}

	plot, err := plotting.New(cfg)
	if err != nil {
		data.Close()
		db.Close()
		return nil, err
	}

	return &Core{
		Config:   cfg,
		Data:     data,
		Database: db,
		Plot:     plot,
	}, nil
}

// Close tears down the managers and flushes logs.
func (c *Core) Close() error {
	var errs []error
	if c.Database != nil {
		errs = append(errs, c.Database.Close())
	}
	if c.Data != nil {
		errs = append(errs, c.Data.Close())
	}
	logging.Sync()
	return errors.Join(errs...)
}

// Help returns a short usage summary for interactive sessions.
func Help() string {
	return `kjcore ` + Version + ` - shared research tooling

Components (all built by kjcore.Setup):
  Config    working/plot/data/database/log/latex directories, YAML + env
  Data      CSV frames in the data directory, cached, change-aware
  Database  SQLite sessions, migrations and table scaffolding
  Plot      static images (png/svg/pdf) and interactive HTML charts

Helper packages:
  pathutil     directory creation, file discovery, sensor IDs
  timeseries   sample rate, time cuts, timestamp normalization
  latexexport  LaTeX tables with captions, labels and grouped stats
  metrics      Pearson r / p-value / RMSE / MAE between two series
  logging      shared zap logger and runtime timers
`
}
