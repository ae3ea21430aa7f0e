// Command permlattice is a small operator CLI over the resolution
// core: set/unset nodes on a holder, ask what a holder can do, and
// inspect the audit trail. It is built from one-shot cobra commands
// rather than a long-running listener.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/permlattice/permlattice/internal/audit"
	"github.com/permlattice/permlattice/internal/config"
	"github.com/permlattice/permlattice/internal/directory"
	"github.com/permlattice/permlattice/internal/eventbus"
	"github.com/permlattice/permlattice/internal/permission"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "permlattice",
		Short:   "Permission lattice resolution toolkit",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "data directory path")
	rootCmd.PersistentFlags().StringP("log-level", "", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("apply-wildcards", true, "expand wildcard permissions on export")
	rootCmd.PersistentFlags().Bool("apply-shorthand", true, "expand shorthand groups on export")
	rootCmd.PersistentFlags().Bool("applying-regex", false, "allow R= regex server/world fields")
	rootCmd.PersistentFlags().Bool("include-global", true, "include server/world-unscoped nodes")

	rootCmd.AddCommand(
		newSetCommand(),
		newUnsetCommand(),
		newHasCommand(),
		newResolveCommand(),
		newAuditCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// environment bundles the services a command needs: the loaded
// configuration, the holder directory (whose event sink is the
// dispatcher feeding the audit store), and the audit store itself
// (for the audit command's own queries).
type environment struct {
	cfg   *config.Config
	dir   *directory.BadgerDirectory
	audit *audit.SQLiteStore
}

func newEnvironment(cmd *cobra.Command) (*environment, func(), error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, nil, err
	}
	setupLogging(cfg.LogLevel)

	dispatcher := eventbus.NewDispatcher()
	dispatcher.Register(eventbus.NewLogOutput(nil))

	var store *audit.SQLiteStore
	if cfg.Audit.Enable {
		dbPath := cfg.DataDir + string(os.PathSeparator) + cfg.Audit.DBFile
		store, err = audit.NewSQLiteStore(dbPath, logrus.StandardLogger())
		if err != nil {
			return nil, nil, fmt.Errorf("open audit store: %w", err)
		}
		dispatcher.Register(auditOutput{store: store})
	}

	if cfg.Webhook.Enable {
		dispatcher.Register(eventbus.NewHTTPOutput(
			cfg.Webhook.URL, cfg.Webhook.AuthToken,
			cfg.Webhook.BatchSize, time.Duration(cfg.Webhook.FlushInterval)*time.Second,
		))
	}

	dir, err := directory.NewBadgerDirectory(directory.Options{
		DataDir:    cfg.DataDir,
		SyncWrites: cfg.Directory.SyncWrites,
		Logger:     logrus.StandardLogger(),
		Sink:       dispatcher,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open directory: %w", err)
	}

	env := &environment{cfg: cfg, dir: dir, audit: store}
	cleanup := func() {
		_ = dir.Close()
		_ = dispatcher.CloseAll()
		if store != nil {
			_ = store.Close()
		}
	}
	return env, cleanup, nil
}

// auditOutput adapts audit.Store's LogEvent to eventbus.Output.
type auditOutput struct{ store *audit.SQLiteStore }

func (a auditOutput) Write(e *permission.Event) error { a.store.Emit(*e); return nil }
func (a auditOutput) Close() error                    { return nil }

func resolutionContext(cmd *cobra.Command, cfg *config.Config, server, world string) permission.Context {
	ctx := cfg.Resolution.BaseContext()
	if server != "" {
		ctx = ctx.WithServer(server)
	}
	if world != "" {
		ctx = ctx.WithWorld(world)
	}
	return ctx
}
