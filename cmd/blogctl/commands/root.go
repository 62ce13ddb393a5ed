// Package commands implements blogctl, the management CLI for Blogicum.
package commands

import (
	"fmt"
	"os"

	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type options struct {
	dbURL   string
	verbose bool
}

// NewRootCmd builds the command tree. Settings default to the same
// environment the server reads.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Blogicum management commands",
		Long: `blogctl manages a Blogicum database: it applies the schema, creates
accounts and maintains the categories and locations authors can choose from.

Examples:
  blogctl migrate
  blogctl createuser --username alice --password s3cret-pass
  blogctl category add --title Travel --slug travel`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dbURL, "db", cfg.DatabaseURL, "Database URL (postgres DSN or sqlite:<path>)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newMigrateCmd(opts),
		newCreateUserCmd(opts),
		newCategoryCmd(opts),
		newLocationCmd(opts),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open connects to the database. Callers defer the returned close func.
func (o *options) open() (*gorm.DB, func(), error) {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	l := logger.Setup(level, true)

	conn, err := db.Open(o.dbURL, nil, l)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeFn := func() {
		sqlDB, err := conn.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			l.Warn().Err(err).Msg("close database")
		}
	}
	return conn, closeFn, nil
}
