package commands

import (
	"fmt"

	"blogicum/internal/db"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, closeDB, err := opts.open()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := db.Migrate(conn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if seed {
				if err := db.Seed(conn, log.Logger); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "Create the default category and location on an empty database")
	return cmd
}
